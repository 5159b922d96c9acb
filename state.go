// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package macro

import (
	"fmt"
	"image"
)

// AlphaMode selects how source pixels are combined with the destination.
type AlphaMode uint8

const (
	// AlphaModeDefault is ordinary source-over blending.
	AlphaModeDefault AlphaMode = iota
	// AlphaModeAdditive adds the source (weighted by its alpha) to the
	// destination.
	AlphaModeAdditive
	// AlphaModeMultiply multiplies the destination by the source.
	AlphaModeMultiply

	alphaModeCount
)

var alphaModeNames = [...]string{
	AlphaModeDefault:  "Default",
	AlphaModeAdditive: "Additive",
	AlphaModeMultiply: "Multiply",
}

// String returns the name of the mode.
func (m AlphaMode) String() string {
	if m.Valid() {
		return alphaModeNames[m]
	}
	return fmt.Sprintf("AlphaMode(%d)", uint8(m))
}

// Valid reports whether m is one of the defined modes.
func (m AlphaMode) Valid() bool {
	return m < alphaModeCount
}

// RenderState describes how one run of vertices is drawn.
//
// Transform is a reference the state does not own. States produced while
// recording point at transforms whose owner may recycle or discard them;
// a Macro re-points every state it keeps at its own copy.
type RenderState struct {
	Mode AlphaMode

	// Texture sampled with the vertices' texture coordinates, or nil for
	// flat vertex colors. Texture values must be comparable (pointer
	// image types such as *image.RGBA are).
	Texture image.Image

	// Transform applied to the vertices, nil meaning identity.
	Transform *Transform
}

// Equal reports whether s and other draw identically. Transforms are
// compared by value, so two states referencing different but equal
// transforms are equal.
func (s RenderState) Equal(other RenderState) bool {
	if s.Mode != other.Mode || s.Texture != other.Texture {
		return false
	}
	if s.Transform == other.Transform {
		return true
	}
	return resolve(s.Transform) == resolve(other.Transform)
}

// Apply configures d for drawing with s. It does not open a scope; callers
// bracket it with Save and Restore.
func (s RenderState) Apply(d Device) {
	if s.Transform != nil {
		d.Transform(*s.Transform)
	}
	d.SetAlphaMode(s.Mode)
	d.SetTexture(s.Texture)
}
