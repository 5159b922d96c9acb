// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package macro

import "errors"

// Errors returned by Macro. All of them are caller contract violations
// detected before any work is scheduled; none are transient.
var (
	// ErrUnsupportedTransform is returned by Draw when the destination quad
	// is not an axis-aligned rectangle.
	ErrUnsupportedTransform = errors.New("macro: macros cannot be rotated or skewed")

	// ErrUnsupportedTint is returned by Draw when any corner color is not
	// opaque white.
	ErrUnsupportedTint = errors.New("macro: macros cannot be tinted with colors")

	// ErrNotRasterizable is returned by ToBitmap.
	ErrNotRasterizable = errors.New("macro: macros cannot be rendered as a bitmap")

	// ErrNotMutable is returned by Insert.
	ErrNotMutable = errors.New("macro: macros cannot be updated with a bitmap")

	// ErrInvalidAlphaMode is returned for alpha modes outside the known set.
	ErrInvalidAlphaMode = errors.New("macro: invalid alpha mode")

	// ErrInvalidSize is returned by New for a non-positive width or height.
	ErrInvalidSize = errors.New("macro: width and height must be positive")

	// ErrNilScheduler is returned by New when no scheduler is given.
	ErrNilScheduler = errors.New("macro: scheduler must not be nil")

	// ErrNilCompiler is returned by New when no compiler is given.
	ErrNilCompiler = errors.New("macro: compiler must not be nil")

	// ErrMalformedBatch is returned by New when the compiler produced a
	// batch that is not a whole number of quads.
	ErrMalformedBatch = errors.New("macro: malformed vertex batch")
)
