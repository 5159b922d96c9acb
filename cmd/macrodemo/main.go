// Command macrodemo records a small macro and replays it several times
// into a PNG.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"math"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/macro"
	"github.com/gogpu/macro/backend"
	_ "github.com/gogpu/macro/backend/raster"
	"github.com/gogpu/macro/queue"
	"github.com/gogpu/macro/sink"
)

// pngWriter is implemented by devices that can save their target.
type pngWriter interface {
	SavePNG(path string) error
}

func main() {
	var (
		width   = flag.Int("width", 640, "image width")
		height  = flag.Int("height", 480, "image height")
		output  = flag.String("output", "macro.png", "output file")
		name    = flag.String("backend", "raster", "device backend")
		shared  = flag.Bool("shared", false, "deduplicate transforms inside the macro")
		verbose = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		macro.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	dev, err := backend.New(*name, *width, *height)
	if err != nil {
		log.Fatalf("Failed to create device: %v (available: %v)", err, backend.Available())
	}

	opts := []macro.Option{macro.WithName("tile")}
	if *shared {
		opts = append(opts, macro.WithSharedTransforms())
	}

	s := sink.New()
	m, err := queue.Record(s, 64, 64, drawTile, opts...)
	if err != nil {
		log.Fatalf("Failed to record: %v", err)
	}

	// Background at the back, then a row of tiles growing in size.
	bg := macro.Rect(0, 0, float64(*width), float64(*height))
	if err := m.Draw(bg, -1, macro.AlphaModeDefault); err != nil {
		log.Fatalf("Failed to draw background: %v", err)
	}
	x := 16.0
	for i := 1; i <= 4; i++ {
		scale := float64(i) * 0.75
		if err := m.DrawScaled(x, 16, scale, scale, macro.ZPos(i)); err != nil {
			log.Fatalf("Failed to draw tile %d: %v", i, err)
		}
		x += 64*scale + 16
	}
	// Mirrored copy.
	if err := m.DrawScaled(float64(*width)-16, float64(*height)-16, -2, -2, 10); err != nil {
		log.Fatalf("Failed to draw mirrored tile: %v", err)
	}

	// Macros cannot be rotated.
	rotated := macro.Rect(0, 0, 64, 64)
	for i := range rotated {
		rotated[i].X, rotated[i].Y = macro.Rotate(math.Pi/6).Apply(rotated[i].X, rotated[i].Y)
	}
	if err := m.Draw(rotated, 0, macro.AlphaModeDefault); errors.Is(err, macro.ErrUnsupportedTransform) {
		log.Printf("Rotated draw rejected: %v", err)
	}

	n := s.Flush(dev)

	w, ok := dev.(pngWriter)
	if !ok {
		log.Fatalf("Backend %q cannot write PNG files", *name)
	}
	if err := w.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	p := message.NewPrinter(language.English)
	log.Print(p.Sprintf("Replayed %d draws (%d quads each) to %s (%dx%d)", n, m.QuadCount(), *output, *width, *height))
}

// drawTile records a 64x64 tile: a dark frame, a colored center crossed by
// two lines, and an additive glow in the corner.
func drawTile(q *queue.Queue) error {
	frame := macro.Rect(0, 0, 64, 64)
	for i := range frame {
		frame[i].Color = macro.ARGB(255, 30, 40, 60)
	}
	if err := q.DrawQuad(frame, 0, macro.AlphaModeDefault); err != nil {
		return err
	}

	q.PushTransform(macro.Translate(8, 8))
	center := macro.Rect(0, 0, 48, 48)
	center[0].Color = macro.Red
	center[1].Color = macro.Green
	center[2].Color = macro.Blue
	if err := q.DrawQuad(center, 1, macro.AlphaModeDefault); err != nil {
		return err
	}
	white := func(x, y float64) macro.Corner { return macro.Corner{X: x, Y: y, Color: macro.White} }
	if err := q.DrawLine(white(0, 0), white(48, 48), 2, macro.AlphaModeDefault); err != nil {
		return err
	}
	if err := q.DrawLine(white(48, 0), white(0, 48), 2, macro.AlphaModeDefault); err != nil {
		return err
	}
	if err := q.PopTransform(); err != nil {
		return err
	}

	glow := macro.Corner{X: 64, Y: 0, Color: macro.ARGB(160, 255, 200, 40)}
	return q.DrawTriangle(glow, white(40, 0), white(64, 24), 3, macro.AlphaModeAdditive)
}
