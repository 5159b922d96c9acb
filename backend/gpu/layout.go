// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/macro"
)

// VertexStride is the byte stride per vertex. Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	uv       (vec2<f32>) = 8 bytes  (location 1)
//	color    (vec4<f32>) = 16 bytes (location 2), premultiplied
const VertexStride = 32

// VerticesPerQuad is the number of triangle-list vertices one quad
// expands to.
const VerticesPerQuad = 6

// quadTriangles indexes the perimeter-ordered corners of a quad.
var quadTriangles = [VerticesPerQuad]int{0, 1, 2, 0, 2, 3}

// VertexLayout returns the vertex buffer layout for the macro pipeline.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

// VertexCount returns the number of triangle-list vertices for b.
func VertexCount(b macro.VertexBatch) uint32 {
	return uint32(b.QuadCount() * VerticesPerQuad)
}

// TriangleCount returns the number of triangles b is drawn with.
func TriangleCount(b macro.VertexBatch) int {
	return b.QuadCount() * 2
}

// EncodeBatch returns the vertices of b as a little-endian triangle list.
// Each quad becomes triangles (0,1,2) and (0,2,3). A trailing partial quad
// is dropped. It returns nil for an empty batch.
func EncodeBatch(b macro.VertexBatch) []byte {
	n := b.QuadCount()
	if n == 0 {
		return nil
	}
	buf := make([]byte, n*VerticesPerQuad*VertexStride)
	off := 0
	for q := range n {
		quad := b.Vertices[q*macro.VerticesPerQuad : (q+1)*macro.VerticesPerQuad]
		for _, i := range quadTriangles {
			writeVertex(buf[off:], &quad[i])
			off += VertexStride
		}
	}
	return buf
}

func writeVertex(buf []byte, v *macro.Vertex) {
	r, g, b, a := v.Color.Premultiplied()
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.U))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.V))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(r))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(b))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(a))
}

// UniformSize is the size of the uniform block read by the shader.
const UniformSize = 48

// EncodeUniforms packs t and the target size into the shader's uniform
// block: two transform rows followed by the viewport, each a vec4<f32>.
func EncodeUniforms(t macro.Transform, width, height int) []byte {
	vals := [UniformSize / 4]float32{
		float32(t.A), float32(t.B), float32(t.C), 0,
		float32(t.D), float32(t.E), float32(t.F), 0,
		float32(width), float32(height), 0, 0,
	}
	buf := make([]byte, UniformSize)
	for i, f := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
