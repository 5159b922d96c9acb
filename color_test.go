package macro

import (
	"image/color"
	"testing"
)

func TestColorComponents(t *testing.T) {
	c := ARGB(0x80, 0x10, 0x20, 0x30)
	if c != 0x80102030 {
		t.Fatalf("ARGB() = %08x, want 80102030", uint32(c))
	}
	if c.Alpha() != 0x80 || c.Red() != 0x10 || c.Green() != 0x20 || c.Blue() != 0x30 {
		t.Errorf("components = %x %x %x %x", c.Alpha(), c.Red(), c.Green(), c.Blue())
	}
}

func TestColorInterface(t *testing.T) {
	var _ color.Color = White

	r, g, b, a := White.RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("White.RGBA() = %x %x %x %x", r, g, b, a)
	}
	r, g, b, a = None.RGBA()
	if r|g|b|a != 0 {
		t.Errorf("None.RGBA() = %x %x %x %x, want zero", r, g, b, a)
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want Color
	}{
		{"self", Red, Red},
		{"nrgba", color.NRGBA{R: 1, G: 2, B: 3, A: 4}, ARGB(4, 1, 2, 3)},
		{"opaque rgba", color.RGBA{R: 0xff, A: 0xff}, Red},
		{"transparent", color.Transparent, None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromColor(tt.in); got != tt.want {
				t.Errorf("FromColor() = %08x, want %08x", uint32(got), uint32(tt.want))
			}
		})
	}
}

func TestColorPremultiplied(t *testing.T) {
	r, g, b, a := ARGB(0, 0xff, 0xff, 0xff).Premultiplied()
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("transparent white premultiplied = %v %v %v %v", r, g, b, a)
	}
	r, _, _, a = Red.Premultiplied()
	if r != 1 || a != 1 {
		t.Errorf("red premultiplied = r%v a%v, want 1 1", r, a)
	}
}

func TestQuadPredicates(t *testing.T) {
	q := Rect(1, 2, 3, 4)
	if !q.IsAxisAligned() || !q.IsWhite() {
		t.Error("Rect should be axis-aligned and white")
	}
	q[3].Color = Black
	if q.IsWhite() {
		t.Error("IsWhite should be false with a black corner")
	}
	q[3].X += 1
	if q.IsAxisAligned() {
		t.Error("IsAxisAligned should be false after moving a corner")
	}
}
