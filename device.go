// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package macro

import "image"

// ZPos orders deferred work; lower values are drawn first.
type ZPos float64

// Device is the rendering surface a replay job draws on at flush time.
//
// Save and Restore bracket a scope: Restore returns the transform, alpha
// mode and texture to what they were at the matching Save.
type Device interface {
	// Save pushes the current state.
	Save()

	// Restore pops the state pushed by the matching Save.
	Restore()

	// Transform concatenates t onto the current transform. Vertices
	// drawn afterwards go through t first, then the previous transform.
	Transform(t Transform)

	// SetAlphaMode sets the blend mode for subsequent draws.
	SetAlphaMode(mode AlphaMode)

	// SetTexture sets the texture for subsequent draws, nil for none.
	SetTexture(tex image.Image)

	// DrawQuads rasterizes vertices as consecutive groups of four.
	DrawQuads(vertices []Vertex)
}

// Job is a unit of deferred drawing executed once during a flush.
type Job func(d Device)

// Scheduler accepts deferred jobs and runs them later, ordered by z.
// Jobs with equal z run in the order they were scheduled.
type Scheduler interface {
	Schedule(job Job, z ZPos)
}

// Compiler turns recorded draw operations into ordered vertex batches.
// Batches never straddle a render state change and preserve the order of
// the operations.
type Compiler interface {
	Compile() []VertexBatch
}
