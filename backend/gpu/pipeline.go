// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/macro"
)

// alphaModes lists the modes a pipeline is built for, indexed by mode.
var alphaModes = [...]macro.AlphaMode{
	macro.AlphaModeDefault,
	macro.AlphaModeAdditive,
	macro.AlphaModeMultiply,
}

// Pipelines holds the shader, layouts, the texture sampler and one render
// pipeline per alpha mode. GPU objects are created lazily by Ensure.
type Pipelines struct {
	device hal.Device
	format gputypes.TextureFormat

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	sampler       hal.Sampler
	pipelines     [len(alphaModes)]hal.RenderPipeline
}

// NewPipelines creates pipelines targeting textures of the given format.
// Nothing is allocated on the device until Ensure is called.
func NewPipelines(device hal.Device, format gputypes.TextureFormat) *Pipelines {
	return &Pipelines{device: device, format: format}
}

// Ensure creates the shader, layouts and pipelines if they don't already
// exist.
func (p *Pipelines) Ensure() error {
	if p.pipelines[len(p.pipelines)-1] != nil {
		return nil
	}
	if err := p.create(); err != nil {
		p.Destroy()
		return err
	}
	return nil
}

// Pipeline returns the render pipeline for mode, or nil before Ensure.
// Unknown modes get the default pipeline.
func (p *Pipelines) Pipeline(mode macro.AlphaMode) hal.RenderPipeline {
	if !mode.Valid() {
		mode = macro.AlphaModeDefault
	}
	return p.pipelines[mode]
}

// UniformLayout returns the bind group layout: uniforms, texture and
// sampler.
func (p *Pipelines) UniformLayout() hal.BindGroupLayout {
	return p.uniformLayout
}

// Sampler returns the sampler bound with every batch texture.
func (p *Pipelines) Sampler() hal.Sampler {
	return p.sampler
}

func (p *Pipelines) create() error {
	code, err := ShaderSPIRV()
	if err != nil {
		return err
	}
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "macro_shader",
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return fmt.Errorf("compile macro shader: %w", err)
	}
	p.shader = shader

	// Binding 0: uniforms, 1: batch texture, 2: sampler.
	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "macro_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create macro uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "macro_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create macro pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "macro_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create macro sampler: %w", err)
	}
	p.sampler = sampler

	for _, mode := range alphaModes {
		pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
			Label:  "macro_pipeline_" + mode.String(),
			Layout: p.pipeLayout,
			Vertex: hal.VertexState{
				Module:     p.shader,
				EntryPoint: "vs_main",
				Buffers:    VertexLayout(),
			},
			Fragment: &hal.FragmentState{
				Module:     p.shader,
				EntryPoint: "fs_main",
				Targets:    []gputypes.ColorTargetState{ColorTarget(mode, p.format)},
			},
			Primitive: gputypes.PrimitiveState{
				Topology: gputypes.PrimitiveTopologyTriangleList,
				CullMode: gputypes.CullModeNone,
			},
			Multisample: gputypes.MultisampleState{
				Count: 1,
				Mask:  0xFFFFFFFF,
			},
		})
		if err != nil {
			return fmt.Errorf("create macro pipeline %v: %w", mode, err)
		}
		p.pipelines[mode] = pipeline
	}

	macro.Logger().Debug("gpu pipelines created", "modes", len(alphaModes))
	return nil
}

// Destroy releases all GPU objects in reverse creation order. Safe to call
// multiple times.
func (p *Pipelines) Destroy() {
	if p.device == nil {
		return
	}
	for i := len(p.pipelines) - 1; i >= 0; i-- {
		if p.pipelines[i] != nil {
			p.device.DestroyRenderPipeline(p.pipelines[i])
			p.pipelines[i] = nil
		}
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
