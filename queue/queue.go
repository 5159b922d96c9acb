// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package queue records draw operations and compiles them into vertex
// batches for package macro.
//
// A Queue mirrors an immediate-mode drawing API: each call appends one
// operation carrying the current render state. Compile sorts operations by
// depth and groups runs that share a render state:
//
//	q := queue.New()
//	q.PushTransform(macro.Translate(16, 16))
//	_ = q.DrawQuad(macro.Rect(0, 0, 8, 8), 0, macro.AlphaModeDefault)
//	_ = q.PopTransform()
//	batches := q.Compile()
//
// The render states handed out by a Queue refer to entries of its transform
// stack. Those entries are recycled after Reset, so batches obtained from
// Compile are only valid until the queue is reset. macro.New takes care of
// copying what it keeps.
//
// A Queue is not safe for concurrent use.
package queue

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/gogpu/macro"
)

var (
	// ErrTransformUnderflow is returned by PopTransform on an empty stack.
	ErrTransformUnderflow = errors.New("queue: transform stack underflow")

	// ErrNilTexture is returned by DrawImage when no texture is given.
	ErrNilTexture = errors.New("queue: texture must not be nil")
)

// op is one recorded draw operation. Operations with fewer than four
// vertices (lines, triangles) are padded when compiled.
type op struct {
	state    macro.RenderState
	z        macro.ZPos
	vertices [macro.VerticesPerQuad]macro.Vertex
	count    int
}

// quad returns the operation as exactly four vertices, repeating the last
// vertex when the operation has fewer.
func (o *op) quad() []macro.Vertex {
	v := make([]macro.Vertex, macro.VerticesPerQuad)
	copy(v, o.vertices[:o.count])
	for i := o.count; i < macro.VerticesPerQuad; i++ {
		v[i] = o.vertices[o.count-1]
	}
	return v
}

// Queue records draw operations.
type Queue struct {
	ops []op

	// stack holds the composed transform for every push depth; stack[0]
	// is the identity. Each push takes a distinct entry, so operations
	// recorded earlier keep theirs.
	stack []*macro.Transform

	// used lists the entries handed out since the last Reset; Reset moves
	// them to free, and later pushes overwrite them.
	used []*macro.Transform
	free []*macro.Transform
}

// New creates an empty queue with an identity transform.
func New() *Queue {
	root := macro.Identity()
	return &Queue{
		ops:   make([]op, 0, 64),
		stack: []*macro.Transform{&root},
	}
}

// Len returns the number of recorded operations.
func (q *Queue) Len() int {
	return len(q.ops)
}

// Depth returns the number of transforms currently pushed.
func (q *Queue) Depth() int {
	return len(q.stack) - 1
}

// Transform returns the current composed transform.
func (q *Queue) Transform() macro.Transform {
	return *q.top()
}

func (q *Queue) top() *macro.Transform {
	return q.stack[len(q.stack)-1]
}

// PushTransform makes t the innermost transform: subsequent operations go
// through t first, then through the transforms already pushed.
func (q *Queue) PushTransform(t macro.Transform) {
	next := q.top().Mul(t)

	var e *macro.Transform
	if n := len(q.free); n > 0 {
		e, q.free = q.free[n-1], q.free[:n-1]
	} else {
		e = new(macro.Transform)
	}
	*e = next
	q.used = append(q.used, e)
	q.stack = append(q.stack, e)
}

// PopTransform removes the innermost transform. Operations recorded under
// it keep referring to it until the next Reset.
func (q *Queue) PopTransform() error {
	if len(q.stack) == 1 {
		return ErrTransformUnderflow
	}
	q.stack = q.stack[:len(q.stack)-1]
	return nil
}

// Reset drops all operations and pushed transforms. Transform entries
// handed out so far are recycled: later pushes overwrite them.
func (q *Queue) Reset() {
	q.ops = q.ops[:0]
	q.stack = q.stack[:1]
	q.free = append(q.free, q.used...)
	q.used = q.used[:0]
}

func (q *Queue) state(mode macro.AlphaMode, tex image.Image) (macro.RenderState, error) {
	if !mode.Valid() {
		return macro.RenderState{}, fmt.Errorf("%w: %v", macro.ErrInvalidAlphaMode, mode)
	}
	return macro.RenderState{
		Mode:      mode,
		Texture:   tex,
		Transform: q.top(),
	}, nil
}

// DrawQuad records an untextured quad. Corners follow macro.Quad order
// (top-left, top-right, bottom-left, bottom-right) and may be rotated.
func (q *Queue) DrawQuad(quad macro.Quad, z macro.ZPos, mode macro.AlphaMode) error {
	return q.drawQuad(nil, quad, z, mode)
}

// DrawImage records quad textured with the whole of tex.
func (q *Queue) DrawImage(tex image.Image, quad macro.Quad, z macro.ZPos, mode macro.AlphaMode) error {
	if tex == nil {
		return ErrNilTexture
	}
	return q.drawQuad(tex, quad, z, mode)
}

func (q *Queue) drawQuad(tex image.Image, quad macro.Quad, z macro.ZPos, mode macro.AlphaMode) error {
	st, err := q.state(mode, tex)
	if err != nil {
		return err
	}
	// Corners are stored in perimeter order.
	o := op{state: st, z: z, count: 4}
	o.vertices[0] = vertex(quad[0], 0, 0)
	o.vertices[1] = vertex(quad[1], 1, 0)
	o.vertices[2] = vertex(quad[3], 1, 1)
	o.vertices[3] = vertex(quad[2], 0, 1)
	q.ops = append(q.ops, o)
	return nil
}

// DrawTriangle records an untextured triangle.
func (q *Queue) DrawTriangle(a, b, c macro.Corner, z macro.ZPos, mode macro.AlphaMode) error {
	st, err := q.state(mode, nil)
	if err != nil {
		return err
	}
	o := op{state: st, z: z, count: 3}
	o.vertices[0] = vertex(a, 0, 0)
	o.vertices[1] = vertex(b, 0, 0)
	o.vertices[2] = vertex(c, 0, 0)
	q.ops = append(q.ops, o)
	return nil
}

// DrawLine records a line one unit wide from a to b.
func (q *Queue) DrawLine(a, b macro.Corner, z macro.ZPos, mode macro.AlphaMode) error {
	st, err := q.state(mode, nil)
	if err != nil {
		return err
	}
	nx, ny := halfNormal(a, b)
	o := op{state: st, z: z, count: 4}
	o.vertices[0] = vertex(macro.Corner{X: a.X + nx, Y: a.Y + ny, Color: a.Color}, 0, 0)
	o.vertices[1] = vertex(macro.Corner{X: b.X + nx, Y: b.Y + ny, Color: b.Color}, 0, 0)
	o.vertices[2] = vertex(macro.Corner{X: b.X - nx, Y: b.Y - ny, Color: b.Color}, 0, 0)
	o.vertices[3] = vertex(macro.Corner{X: a.X - nx, Y: a.Y - ny, Color: a.Color}, 0, 0)
	q.ops = append(q.ops, o)
	return nil
}

// Compile returns the recorded operations as vertex batches. Operations are
// ordered by z, keeping recording order for equal z, and a new batch starts
// whenever the render state differs from the previous operation's. Batches
// with equal states that are separated by another state are never merged.
func (q *Queue) Compile() []macro.VertexBatch {
	ops := slices.Clone(q.ops)
	slices.SortStableFunc(ops, func(a, b op) int {
		return cmp.Compare(a.z, b.z)
	})

	var batches []macro.VertexBatch
	for i := range ops {
		o := &ops[i]
		if n := len(batches); n > 0 && batches[n-1].State.Equal(o.state) {
			batches[n-1].Vertices = append(batches[n-1].Vertices, o.quad()...)
			continue
		}
		batches = append(batches, macro.VertexBatch{State: o.state, Vertices: o.quad()})
	}

	macro.Logger().Debug("queue compiled", "ops", len(ops), "batches", len(batches))
	return batches
}

// Record runs fn against a fresh queue and compiles the result into a
// macro of the given size. The queue is reset before Record returns.
func Record(s macro.Scheduler, width, height int, fn func(q *Queue) error, opts ...macro.Option) (*macro.Macro, error) {
	q := New()
	defer q.Reset()

	if err := fn(q); err != nil {
		return nil, fmt.Errorf("queue: recording: %w", err)
	}
	return macro.New(s, q, width, height, opts...)
}

func vertex(c macro.Corner, u, v float32) macro.Vertex {
	return macro.Vertex{X: float32(c.X), Y: float32(c.Y), U: u, V: v, Color: c.Color}
}

// halfNormal returns the vector of length 0.5 perpendicular to a->b.
func halfNormal(a, b macro.Corner) (float64, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0.5
	}
	return -dy / l * 0.5, dx / l * 0.5
}
