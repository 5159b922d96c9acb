package macro

import (
	"math"
	"testing"
)

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name   string
		m      Transform
		x, y   float64
		wx, wy float64
	}{
		{"identity", Identity(), 3, 4, 3, 4},
		{"translate", Translate(10, -2), 3, 4, 13, 2},
		{"scale", Scale(2, 3), 3, 4, 6, 12},
		{"rotate 90", Rotate(math.Pi / 2), 1, 0, 0, 1},
		{"scale then translate", Translate(1, 1).Mul(Scale(2, 2)), 1, 1, 3, 3},
		{"translate then scale", Scale(2, 2).Mul(Translate(1, 1)), 1, 1, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.m.Apply(tt.x, tt.y)
			if math.Abs(x-tt.wx) > 1e-9 || math.Abs(y-tt.wy) > 1e-9 {
				t.Errorf("Apply(%v,%v) = (%v,%v), want (%v,%v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestTransformMulIdentity(t *testing.T) {
	m := Translate(3, 4).Mul(Rotate(0.3)).Mul(Scale(2, 5))
	if !nearlyEqual(m.Mul(Identity()), m) || !nearlyEqual(Identity().Mul(m), m) {
		t.Error("identity must be neutral for Mul")
	}
}

func TestTransformPredicates(t *testing.T) {
	tests := []struct {
		name     string
		m        Transform
		identity bool
		det      float64
	}{
		{"identity", Identity(), true, 1},
		{"translate", Translate(1, 2), false, 1},
		{"scale", Scale(2, -3), false, -6},
		{"rotate", Rotate(math.Pi / 4), false, 1},
		{"zero", Transform{}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsIdentity(); got != tt.identity {
				t.Errorf("IsIdentity() = %v, want %v", got, tt.identity)
			}
			if got := tt.m.Determinant(); math.Abs(got-tt.det) > 1e-9 {
				t.Errorf("Determinant() = %v, want %v", got, tt.det)
			}
		})
	}
}

func TestResolveNil(t *testing.T) {
	if resolve(nil) != Identity() {
		t.Error("resolve(nil) should be identity")
	}
	m := Scale(2, 2)
	if resolve(&m) != m {
		t.Error("resolve should dereference")
	}
}

func TestRenderStateEqual(t *testing.T) {
	t1, t2, t3 := Translate(1, 1), Translate(1, 1), Translate(2, 2)
	tests := []struct {
		name string
		a, b RenderState
		want bool
	}{
		{"zero", RenderState{}, RenderState{}, true},
		{"same pointer", RenderState{Transform: &t1}, RenderState{Transform: &t1}, true},
		{"equal values", RenderState{Transform: &t1}, RenderState{Transform: &t2}, true},
		{"different values", RenderState{Transform: &t1}, RenderState{Transform: &t3}, false},
		{"nil vs identity", RenderState{}, RenderState{Transform: ptr(Identity())}, true},
		{"mode", RenderState{Mode: AlphaModeAdditive}, RenderState{}, false},
		{"texture", RenderState{Texture: texA}, RenderState{Texture: texB}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlphaModeString(t *testing.T) {
	tests := []struct {
		m     AlphaMode
		want  string
		valid bool
	}{
		{AlphaModeDefault, "Default", true},
		{AlphaModeAdditive, "Additive", true},
		{AlphaModeMultiply, "Multiply", true},
		{AlphaMode(7), "AlphaMode(7)", false},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := tt.m.Valid(); got != tt.valid {
			t.Errorf("%v.Valid() = %v, want %v", tt.m, got, tt.valid)
		}
	}
}

func ptr[T any](v T) *T { return &v }
