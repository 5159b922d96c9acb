// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import "github.com/gogpu/macro"

// blendFunc returns the compositing equation for mode. All colors are
// premultiplied.
func blendFunc(mode macro.AlphaMode) func(src, dst premul) premul {
	switch mode {
	case macro.AlphaModeAdditive:
		return blendAdditive
	case macro.AlphaModeMultiply:
		return blendMultiply
	default:
		return blendOver
	}
}

// blendOver is src + dst*(1-srcA).
func blendOver(s, d premul) premul {
	k := 1 - s.a
	return premul{s.r + d.r*k, s.g + d.g*k, s.b + d.b*k, s.a + d.a*k}
}

// blendAdditive is src + dst, saturating.
func blendAdditive(s, d premul) premul {
	return premul{min(s.r+d.r, 1), min(s.g+d.g, 1), min(s.b+d.b, 1), min(s.a+d.a, 1)}
}

// blendMultiply is src*dst + dst*(1-srcA).
func blendMultiply(s, d premul) premul {
	k := 1 - s.a
	return premul{s.r*d.r + d.r*k, s.g*d.g + d.g*k, s.b*d.b + d.b*k, s.a*d.a + d.a*k}
}
