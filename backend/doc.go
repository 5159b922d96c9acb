// Package backend keeps a registry of macro.Device implementations.
//
// Backends register a factory from an init function, following the
// database/sql driver pattern, and are created by name:
//
//	import _ "github.com/gogpu/macro/backend/raster"
//
//	dev, err := backend.New("raster", 800, 600)
//	if err != nil {
//	    return err
//	}
//	s.Flush(dev)
//
// The built-in "raster" backend renders into an *image.RGBA. Package
// backend/gpu prepares batches for GPU upload and has no device of its own.
package backend
