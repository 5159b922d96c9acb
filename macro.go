// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package macro

import (
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/gpucontext"
)

// Macro is an immutable, replayable batch of compiled draw operations.
//
// A Macro owns everything it replays: the vertex batches and a private copy
// of every transform their render states referenced. It stays valid after
// the queue, recorder and transforms used to build it are gone or reused.
//
// Macro is safe for concurrent use once New has returned.
type Macro struct {
	name          string
	scheduler     Scheduler
	width, height int
	batches       []VertexBatch

	// transforms is allocated once with its final length; batch states
	// point into it, so it is never appended to.
	transforms []Transform
}

// New compiles the operations held by c into a Macro of the given logical
// size. Draw requests are scheduled on s.
//
// The width and height are stored as given; they are not derived from the
// vertex bounds.
func New(s Scheduler, c Compiler, width, height int, opts ...Option) (*Macro, error) {
	if s == nil {
		return nil, ErrNilScheduler
	}
	if c == nil {
		return nil, ErrNilCompiler
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	compiled := c.Compile()
	batches := make([]VertexBatch, len(compiled))
	for i, b := range compiled {
		if err := b.validate(); err != nil {
			return nil, fmt.Errorf("batch %d: %w", i, err)
		}
		batches[i] = VertexBatch{State: b.State, Vertices: slices.Clone(b.Vertices)}
	}

	m := &Macro{
		name:      o.name,
		scheduler: s,
		width:     width,
		height:    height,
		batches:   batches,
	}
	if o.sharedTransforms {
		m.embedSharedTransforms()
	} else {
		m.embedTransforms()
	}

	Logger().Debug("macro compiled",
		"name", m.name,
		"batches", len(m.batches),
		"quads", m.QuadCount(),
		"transforms", len(m.transforms),
		"width", width,
		"height", height)
	return m, nil
}

// embedTransforms gives every batch its own copy of its transform.
func (m *Macro) embedTransforms() {
	m.transforms = make([]Transform, len(m.batches))
	for i := range m.batches {
		m.transforms[i] = resolve(m.batches[i].State.Transform)
		m.batches[i].State.Transform = &m.transforms[i]
	}
}

// embedSharedTransforms keeps one copy per distinct transform value.
// Distinct values are counted first so the storage is sized before any
// reference into it is taken. A transform holding NaN never equals itself
// and keeps a copy of its own.
func (m *Macro) embedSharedTransforms() {
	index := make(map[Transform]int)
	order := make([]Transform, 0, len(m.batches))
	slot := make([]int, len(m.batches))
	for i := range m.batches {
		t := resolve(m.batches[i].State.Transform)
		n, ok := index[t]
		if !ok {
			n = len(order)
			index[t] = n
			order = append(order, t)
		}
		slot[i] = n
	}

	m.transforms = make([]Transform, len(order))
	copy(m.transforms, order)
	for i := range m.batches {
		m.batches[i].State.Transform = &m.transforms[slot[i]]
	}
}

// Name returns the label given with WithName.
func (m *Macro) Name() string {
	return m.name
}

// Width returns the logical width given to New.
func (m *Macro) Width() int {
	return m.width
}

// Height returns the logical height given to New.
func (m *Macro) Height() int {
	return m.height
}

// Batches returns the compiled batches in replay order. The returned
// slice is a copy, but the vertices and transforms are shared with the
// Macro and must not be modified.
func (m *Macro) Batches() []VertexBatch {
	return slices.Clone(m.batches)
}

// OwnedTransforms returns the number of transform copies the Macro holds.
func (m *Macro) OwnedTransforms() int {
	return len(m.transforms)
}

// QuadCount returns the total number of quads across all batches.
func (m *Macro) QuadCount() int {
	n := 0
	for _, b := range m.batches {
		n += b.QuadCount()
	}
	return n
}

// Draw schedules a replay of the macro stretched over q at depth z.
//
// q must be an axis-aligned rectangle and every corner must be White;
// otherwise Draw returns ErrUnsupportedTransform or ErrUnsupportedTint and
// schedules nothing. mode must be valid, but batches are always drawn with
// the alpha mode they were recorded with.
//
// No drawing happens during the call: the replay runs when the scheduler
// flushes.
func (m *Macro) Draw(q Quad, z ZPos, mode AlphaMode) error {
	if !q.IsAxisAligned() {
		return fmt.Errorf("%w: corners (%g,%g) (%g,%g) (%g,%g) (%g,%g)",
			ErrUnsupportedTransform,
			q[0].X, q[0].Y, q[1].X, q[1].Y, q[2].X, q[2].Y, q[3].X, q[3].Y)
	}
	if !q.IsWhite() {
		return fmt.Errorf("%w: corner colors %08x %08x %08x %08x",
			ErrUnsupportedTint, uint32(q[0].Color), uint32(q[1].Color), uint32(q[2].Color), uint32(q[3].Color))
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidAlphaMode, mode)
	}

	dest := m.destination(q)
	if dest.Determinant() == 0 {
		Logger().Debug("macro degenerate destination", "name", m.name,
			"width", q[1].X-q[0].X, "height", q[2].Y-q[0].Y)
	}
	batches := m.batches
	m.scheduler.Schedule(func(d Device) {
		replay(d, batches, dest)
	}, z)
	return nil
}

// DrawAt draws the macro at its natural size with its top-left corner at
// (x, y).
func (m *Macro) DrawAt(x, y float64, z ZPos) error {
	return m.DrawScaled(x, y, 1, 1, z)
}

// DrawScaled draws the macro with its top-left corner at (x, y), scaled
// by (scaleX, scaleY). Negative factors mirror it.
func (m *Macro) DrawScaled(x, y, scaleX, scaleY float64, z ZPos) error {
	w := float64(m.width) * scaleX
	h := float64(m.height) * scaleY
	return m.Draw(Rect(x, y, w, h), z, AlphaModeDefault)
}

// destination maps the logical width×height box onto the rectangle q.
func (m *Macro) destination(q Quad) Transform {
	sx := (q[1].X - q[0].X) / float64(m.width)
	sy := (q[2].Y - q[0].Y) / float64(m.height)
	return Translate(q[0].X, q[0].Y).Mul(Scale(sx, sy))
}

func replay(d Device, batches []VertexBatch, dest Transform) {
	for _, b := range batches {
		replayBatch(d, b, dest)
	}
}

func replayBatch(d Device, b VertexBatch, dest Transform) {
	if len(b.Vertices) == 0 {
		return
	}
	d.Save()
	defer d.Restore()

	b.State.Apply(d)
	d.Transform(dest)
	d.DrawQuads(b.Vertices)
}

// ToBitmap always fails with ErrNotRasterizable: a macro is a vertex
// batch, not a pixel buffer.
func (m *Macro) ToBitmap() (image.Image, error) {
	return nil, ErrNotRasterizable
}

// Insert always fails with ErrNotMutable.
func (m *Macro) Insert(img image.Image, x, y int) error {
	return fmt.Errorf("%w: insert at (%d,%d)", ErrNotMutable, x, y)
}

// NativeTexture returns nil. A macro has no single backing texture.
func (m *Macro) NativeTexture() gpucontext.Texture {
	return nil
}
