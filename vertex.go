// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package macro

import "fmt"

// VerticesPerQuad is the number of vertices making up one quad.
const VerticesPerQuad = 4

// Vertex is one corner of a quad as submitted to the device.
// Z is always 0 for 2D drawing.
type Vertex struct {
	X, Y, Z float32
	U, V    float32
	Color   Color
}

// VertexBatch is a contiguous run of quads sharing one render state.
// Vertices holds whole quads, four vertices each, in perimeter order.
type VertexBatch struct {
	State    RenderState
	Vertices []Vertex
}

// QuadCount returns the number of quads in the batch.
func (b VertexBatch) QuadCount() int {
	return len(b.Vertices) / VerticesPerQuad
}

func (b VertexBatch) validate() error {
	if len(b.Vertices)%VerticesPerQuad != 0 {
		return fmt.Errorf("%w: %d vertices is not a multiple of %d",
			ErrMalformedBatch, len(b.Vertices), VerticesPerQuad)
	}
	if !b.State.Mode.Valid() {
		return fmt.Errorf("%w: %w %v", ErrMalformedBatch, ErrInvalidAlphaMode, b.State.Mode)
	}
	return nil
}

// Corner is one corner of a destination quad.
type Corner struct {
	X, Y  float64
	Color Color
}

// Quad is a destination quad. The corners are ordered top-left,
// top-right, bottom-left, bottom-right for an unrotated rectangle.
type Quad [4]Corner

// Rect returns the white quad covering (x, y)-(x+w, y+h).
func Rect(x, y, w, h float64) Quad {
	return Quad{
		{X: x, Y: y, Color: White},
		{X: x + w, Y: y, Color: White},
		{X: x, Y: y + h, Color: White},
		{X: x + w, Y: y + h, Color: White},
	}
}

// IsAxisAligned reports whether q is an unrotated, unskewed rectangle.
func (q Quad) IsAxisAligned() bool {
	return q[0].X == q[2].X && q[1].X == q[3].X &&
		q[0].Y == q[1].Y && q[2].Y == q[3].Y
}

// IsWhite reports whether every corner is opaque white.
func (q Quad) IsWhite() bool {
	for _, c := range q {
		if c.Color != White {
			return false
		}
	}
	return true
}
