// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package macro

import "math"

// Transform is a 2D affine transformation in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// which maps a point as
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// Transform is a plain value; copying it copies the matrix.
type Transform struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Transform {
	return Transform{A: 1, C: x, E: 1, F: y}
}

// Scale returns a scale by (sx, sy) around the origin.
func Scale(sx, sy float64) Transform {
	return Transform{A: sx, E: sy}
}

// Rotate returns a rotation by angle radians around the origin.
func Rotate(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return Transform{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// Mul returns the product t·other. The result maps a point through other
// first and then through t.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// Apply maps the point (x, y).
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.C, t.D*x + t.E*y + t.F
}

// IsIdentity reports whether t is the identity within a small epsilon.
func (t Transform) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(t.A-1) < eps && math.Abs(t.B) < eps && math.Abs(t.C) < eps &&
		math.Abs(t.D) < eps && math.Abs(t.E-1) < eps && math.Abs(t.F) < eps
}

// Determinant returns the determinant of the linear part.
func (t Transform) Determinant() float64 {
	return t.A*t.E - t.B*t.D
}

// resolve dereferences a possibly nil transform reference.
func resolve(t *Transform) Transform {
	if t == nil {
		return Identity()
	}
	return *t
}
