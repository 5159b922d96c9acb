// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/macro"
)

// ErrNilMacro is returned by Upload when no macro is given.
var ErrNilMacro = errors.New("gpu: macro must not be nil")

// Uploader copies compiled macros into GPU buffers and textures.
type Uploader struct {
	device    hal.Device
	queue     hal.Queue
	pipelines *Pipelines
}

// NewUploader creates an uploader drawing with the given pipelines.
func NewUploader(device hal.Device, queue hal.Queue, p *Pipelines) *Uploader {
	return &Uploader{device: device, queue: queue, pipelines: p}
}

// residentBatch is one vertex batch living on the GPU.
type residentBatch struct {
	mode      macro.AlphaMode
	transform macro.Transform

	vertBuf    hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	texture    *residentTexture
	vertCount  uint32
}

func (b *residentBatch) destroy(device hal.Device) {
	if b.bindGroup != nil {
		device.DestroyBindGroup(b.bindGroup)
	}
	if b.uniformBuf != nil {
		device.DestroyBuffer(b.uniformBuf)
	}
	if b.vertBuf != nil {
		device.DestroyBuffer(b.vertBuf)
	}
}

// Resident is a macro uploaded to the GPU. Its vertex buffers and textures
// are written once; SetDestination only rewrites the small uniform buffers.
type Resident struct {
	device    hal.Device
	queue     hal.Queue
	pipelines *Pipelines
	batches   []*residentBatch
	textures  *textureSet
}

// Upload creates one vertex buffer, uniform buffer and bind group per
// non-empty batch of m and writes the vertices. Each distinct batch texture
// is uploaded once and sampled with the vertex colors as tint. The uniforms
// initially place the macro at the origin of a width×height target sized
// like m.
func (u *Uploader) Upload(m *macro.Macro) (*Resident, error) {
	if m == nil {
		return nil, ErrNilMacro
	}
	if err := u.pipelines.Ensure(); err != nil {
		return nil, err
	}

	r := &Resident{
		device:    u.device,
		queue:     u.queue,
		pipelines: u.pipelines,
		textures:  newTextureSet(u.device, u.queue),
	}
	for i, b := range m.Batches() {
		data := EncodeBatch(b)
		if data == nil {
			continue
		}
		tex, err := r.textures.get(b.State.Texture)
		if err != nil {
			r.Destroy()
			return nil, err
		}
		rb, err := u.uploadBatch(i, b, data, tex)
		if err != nil {
			r.Destroy()
			return nil, err
		}
		r.batches = append(r.batches, rb)
	}
	r.SetDestination(macro.Identity(), m.Width(), m.Height())

	macro.Logger().Debug("macro uploaded", "name", m.Name(),
		"batches", len(r.batches), "textures", len(r.textures.all))
	return r, nil
}

func (u *Uploader) uploadBatch(i int, b macro.VertexBatch, data []byte, tex *residentTexture) (*residentBatch, error) {
	rb := &residentBatch{
		mode:      b.State.Mode,
		transform: macro.Identity(),
		texture:   tex,
		vertCount: VertexCount(b),
	}
	if b.State.Transform != nil {
		rb.transform = *b.State.Transform
	}

	vertBuf, err := u.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("macro_vertices_%d", i),
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer %d: %w", i, err)
	}
	rb.vertBuf = vertBuf
	u.queue.WriteBuffer(vertBuf, 0, data)

	uniformBuf, err := u.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("macro_uniforms_%d", i),
		Size:  UniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		rb.destroy(u.device)
		return nil, fmt.Errorf("create uniform buffer %d: %w", i, err)
	}
	rb.uniformBuf = uniformBuf

	bindGroup, err := u.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  fmt.Sprintf("macro_bind_%d", i),
		Layout: u.pipelines.UniformLayout(),
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: UniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: tex.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: u.pipelines.Sampler().NativeHandle()}},
		},
	})
	if err != nil {
		rb.destroy(u.device)
		return nil, fmt.Errorf("create bind group %d: %w", i, err)
	}
	rb.bindGroup = bindGroup
	return rb, nil
}

// Len returns the number of uploaded batches.
func (r *Resident) Len() int {
	return len(r.batches)
}

// SetDestination rewrites the uniforms so the next Draw maps the macro
// through dest into a width×height target. Each batch's own transform is
// applied after dest.
func (r *Resident) SetDestination(dest macro.Transform, width, height int) {
	for _, b := range r.batches {
		r.queue.WriteBuffer(b.uniformBuf, 0, EncodeUniforms(b.transform.Mul(dest), width, height))
	}
}

// Draw records every batch into rp in replay order.
func (r *Resident) Draw(rp hal.RenderPassEncoder) {
	for _, b := range r.batches {
		rp.SetPipeline(r.pipelines.Pipeline(b.mode))
		rp.SetBindGroup(0, b.bindGroup, nil)
		rp.SetVertexBuffer(0, b.vertBuf, 0)
		rp.Draw(b.vertCount, 1, 0, 0)
	}
}

// Destroy releases all buffers, bind groups and textures. Safe to call
// multiple times.
func (r *Resident) Destroy() {
	for _, b := range r.batches {
		b.destroy(r.device)
	}
	r.batches = nil
	if r.textures != nil {
		r.textures.destroy()
	}
}
