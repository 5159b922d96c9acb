// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package macro

import "image/color"

// Color is a non-premultiplied 32-bit color laid out as 0xAARRGGBB.
//
// Color implements color.Color so it can be handed directly to the
// image/draw family.
type Color uint32

// Frequently used colors.
const (
	None  Color = 0x00000000
	Black Color = 0xff000000
	White Color = 0xffffffff
	Red   Color = 0xffff0000
	Green Color = 0xff00ff00
	Blue  Color = 0xff0000ff
)

// ARGB builds a Color from its components.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// FromColor converts any color.Color to Color.
func FromColor(c color.Color) Color {
	if mc, ok := c.(Color); ok {
		return mc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// Alpha returns the alpha component.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// Red returns the red component.
func (c Color) Red() uint8 { return uint8(c >> 16) }

// Green returns the green component.
func (c Color) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue component.
func (c Color) Blue() uint8 { return uint8(c) }

// NRGBA returns c as a color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}
}

// RGBA implements color.Color. It returns alpha-premultiplied 16-bit
// components.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Premultiplied returns the components premultiplied by alpha, in [0, 1].
func (c Color) Premultiplied() (r, g, b, a float32) {
	a = float32(c.Alpha()) / 255
	r = float32(c.Red()) / 255 * a
	g = float32(c.Green()) / 255 * a
	b = float32(c.Blue()) / 255 * a
	return r, g, b, a
}
