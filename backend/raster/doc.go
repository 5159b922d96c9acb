// Package raster provides a software macro.Device that renders into an
// *image.RGBA.
//
// It is the reference device for replaying macros: quads are rasterized
// with golang.org/x/image/vector, textures are mapped with
// golang.org/x/image/draw, and all three alpha modes are composited in
// premultiplied space.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/macro/backend/raster"
//
//	// Create via registry
//	dev, _ := backend.New("raster", 320, 240)
//
//	// Or create directly
//	dev := raster.New(320, 240)
//
//	s.Flush(dev)
//	_ = dev.SavePNG("out.png")
//
// Vertex colors are interpolated across each quad, split along the diagonal
// from its first to its third perimeter corner.
package raster
