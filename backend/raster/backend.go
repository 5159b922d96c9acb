// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/macro"
	"github.com/gogpu/macro/backend"
)

func init() {
	backend.Register("raster", func(width, height int) (macro.Device, error) {
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("%w: got %dx%d", macro.ErrInvalidSize, width, height)
		}
		return New(width, height), nil
	})
}

// state is the part of the device saved by Save.
type state struct {
	transform macro.Transform
	mode      macro.AlphaMode
	texture   image.Image
}

// Device renders quads into an *image.RGBA. It is not safe for
// concurrent use.
type Device struct {
	img   *image.RGBA
	cur   state
	stack []state

	interp xdraw.Interpolator
}

var _ macro.Device = (*Device)(nil)

// Option configures a Device.
type Option func(*Device)

// WithInterpolator sets the filter used to sample textures.
// The default is draw.ApproxBiLinear.
func WithInterpolator(i xdraw.Interpolator) Option {
	return func(d *Device) {
		if i != nil {
			d.interp = i
		}
	}
}

// New creates a transparent device of the given size.
func New(width, height int, opts ...Option) *Device {
	d := &Device{
		img:    image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		cur:    state{transform: macro.Identity()},
		interp: xdraw.ApproxBiLinear,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Save pushes the current transform, alpha mode and texture.
func (d *Device) Save() {
	d.stack = append(d.stack, d.cur)
}

// Restore pops the state pushed by the matching Save. An unbalanced
// Restore is logged and ignored.
func (d *Device) Restore() {
	n := len(d.stack)
	if n == 0 {
		macro.Logger().Warn("raster: Restore without matching Save")
		return
	}
	d.cur = d.stack[n-1]
	d.stack = d.stack[:n-1]
}

// Depth returns the number of unmatched Save calls.
func (d *Device) Depth() int {
	return len(d.stack)
}

// Transform concatenates t onto the current transform.
func (d *Device) Transform(t macro.Transform) {
	d.cur.transform = d.cur.transform.Mul(t)
}

// CurrentTransform returns the current transform.
func (d *Device) CurrentTransform() macro.Transform {
	return d.cur.transform
}

// SetAlphaMode sets the blend mode for subsequent draws.
func (d *Device) SetAlphaMode(mode macro.AlphaMode) {
	d.cur.mode = mode
}

// SetTexture sets the texture for subsequent draws.
func (d *Device) SetTexture(tex image.Image) {
	d.cur.texture = tex
}

// DrawQuads draws vertices as consecutive quads in perimeter order.
// A trailing partial quad is ignored.
func (d *Device) DrawQuads(vertices []macro.Vertex) {
	for i := 0; i+macro.VerticesPerQuad <= len(vertices); i += macro.VerticesPerQuad {
		d.drawQuad(vertices[i : i+macro.VerticesPerQuad])
	}
}

// Image returns the render target.
func (d *Device) Image() *image.RGBA {
	return d.img
}

// Width returns the device width in pixels.
func (d *Device) Width() int {
	return d.img.Rect.Dx()
}

// Height returns the device height in pixels.
func (d *Device) Height() int {
	return d.img.Rect.Dy()
}

// Clear fills the whole target with c, ignoring the alpha mode.
func (d *Device) Clear(c macro.Color) {
	xdraw.Draw(d.img, d.img.Rect, image.NewUniform(c), image.Point{}, xdraw.Src)
}

// EncodePNG writes the target as PNG to w.
func (d *Device) EncodePNG(w io.Writer) error {
	return png.Encode(w, d.img)
}

// SavePNG writes the target as PNG to a file.
func (d *Device) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := d.EncodePNG(bw); err != nil {
		_ = f.Close()
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
