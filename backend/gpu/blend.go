// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/macro"
)

// BlendState returns the fixed-function blend state for mode, for
// premultiplied source colors. Unknown modes blend like AlphaModeDefault.
func BlendState(mode macro.AlphaMode) gputypes.BlendState {
	switch mode {
	case macro.AlphaModeAdditive:
		add := gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOne,
			Operation: gputypes.BlendOperationAdd,
		}
		return gputypes.BlendState{Color: add, Alpha: add}
	case macro.AlphaModeMultiply:
		return gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDst,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDstAlpha,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	default:
		return gputypes.BlendStatePremultiplied()
	}
}

// ColorTarget returns the color target state for drawing with mode into a
// texture of the given format.
func ColorTarget(mode macro.AlphaMode, format gputypes.TextureFormat) gputypes.ColorTargetState {
	blend := BlendState(mode)
	return gputypes.ColorTargetState{
		Format:    format,
		Blend:     &blend,
		WriteMask: gputypes.ColorWriteMaskAll,
	}
}
