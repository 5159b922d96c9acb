// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/gogpu/macro"
)

// point is a vertex position in device space.
type point struct{ x, y float64 }

// premul is a premultiplied color with components in [0, 1].
type premul struct{ r, g, b, a float64 }

func (d *Device) drawQuad(v []macro.Vertex) {
	var pts [macro.VerticesPerQuad]point
	for i := range v {
		x, y := d.cur.transform.Apply(float64(v[i].X), float64(v[i].Y))
		pts[i] = point{x, y}
	}

	box, ok := bounds(pts[:])
	if !ok {
		return
	}
	clip := box.Intersect(d.img.Rect)
	if clip.Empty() {
		return
	}
	mask := coverage(pts[:], box)
	shade := newGradient(v, pts)

	var src *image.RGBA
	if d.cur.texture != nil {
		src = d.mapTexture(v, pts[:], clip)
	}
	d.composite(clip, mask, box.Min, src, shade)
}

// bounds returns the integer pixel box enclosing pts.
func bounds(pts []point) (image.Rectangle, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		if math.IsNaN(p.x) || math.IsNaN(p.y) || math.IsInf(p.x, 0) || math.IsInf(p.y, 0) {
			return image.Rectangle{}, false
		}
		minX, maxX = min(minX, p.x), max(maxX, p.x)
		minY, maxY = min(minY, p.y), max(maxY, p.y)
	}
	r := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	return r, !r.Empty()
}

// coverage rasterizes the polygon pts into an alpha mask covering box.
// Mask pixel (0,0) corresponds to box.Min.
func coverage(pts []point, box image.Rectangle) *image.Alpha {
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	z.MoveTo(float32(pts[0].x-ox), float32(pts[0].y-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.x-ox), float32(p.y-oy))
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// gradient interpolates premultiplied vertex colors across a quad split
// into the triangles (0,1,2) and (0,2,3) of its perimeter.
type gradient struct {
	pts  [macro.VerticesPerQuad]point
	cols [macro.VerticesPerQuad]premul
	flat bool
	mean premul
}

func newGradient(v []macro.Vertex, pts [macro.VerticesPerQuad]point) *gradient {
	g := &gradient{pts: pts, flat: true}
	var sum premul
	for i := range v {
		r, gr, b, a := v[i].Color.Premultiplied()
		c := premul{float64(r), float64(gr), float64(b), float64(a)}
		g.cols[i] = c
		if v[i].Color != v[0].Color {
			g.flat = false
		}
		sum = premul{sum.r + c.r, sum.g + c.g, sum.b + c.b, sum.a + c.a}
	}
	n := float64(len(v))
	g.mean = premul{sum.r / n, sum.g / n, sum.b / n, sum.a / n}
	return g
}

// at returns the color at device point (x, y). Points outside both
// triangles take the color of the nearer one's clamped weights.
func (g *gradient) at(x, y float64) premul {
	if g.flat {
		return g.cols[0]
	}
	w1, ok1 := barycentric(g.pts[0], g.pts[1], g.pts[2], x, y)
	w2, ok2 := barycentric(g.pts[0], g.pts[2], g.pts[3], x, y)
	switch {
	case ok1 && (!ok2 || minWeight(w1) >= minWeight(w2)):
		return g.mix(w1, 0, 1, 2)
	case ok2:
		return g.mix(w2, 0, 2, 3)
	}
	return g.mean
}

func (g *gradient) mix(w [3]float64, i, j, k int) premul {
	var sum float64
	for n := range w {
		w[n] = max(w[n], 0)
		sum += w[n]
	}
	if sum == 0 {
		return g.mean
	}
	a, b, c := g.cols[i], g.cols[j], g.cols[k]
	w0, w1, w2 := w[0]/sum, w[1]/sum, w[2]/sum
	return premul{
		a.r*w0 + b.r*w1 + c.r*w2,
		a.g*w0 + b.g*w1 + c.g*w2,
		a.b*w0 + b.b*w1 + c.b*w2,
		a.a*w0 + b.a*w1 + c.a*w2,
	}
}

// barycentric returns the weights of (x, y) relative to triangle a, b, c.
// It reports false for a degenerate triangle.
func barycentric(a, b, c point, x, y float64) ([3]float64, bool) {
	den := (b.y-c.y)*(a.x-c.x) + (c.x-b.x)*(a.y-c.y)
	if den == 0 {
		return [3]float64{}, false
	}
	wa := ((b.y-c.y)*(x-c.x) + (c.x-b.x)*(y-c.y)) / den
	wb := ((c.y-a.y)*(x-c.x) + (a.x-c.x)*(y-c.y)) / den
	return [3]float64{wa, wb, 1 - wa - wb}, true
}

func minWeight(w [3]float64) float64 {
	return min(w[0], w[1], w[2])
}

// mapTexture samples the current texture over clip using the affine map
// defined by the texture coordinates of corners 0, 1 and 3. It returns nil
// when the coordinates are degenerate.
func (d *Device) mapTexture(v []macro.Vertex, pts []point, clip image.Rectangle) *image.RGBA {
	tex := d.cur.texture
	tb := tex.Bounds()
	tw, th := float64(tb.Dx()), float64(tb.Dy())

	texel := func(i int) point {
		return point{float64(tb.Min.X) + float64(v[i].U)*tw, float64(tb.Min.Y) + float64(v[i].V)*th}
	}
	s0, s1, s3 := texel(0), texel(1), texel(3)

	// Solve L * [s1-s0, s3-s0] = [p1-p0, p3-p0] for the linear part.
	sa, sb := s1.x-s0.x, s3.x-s0.x
	sc, sd := s1.y-s0.y, s3.y-s0.y
	det := sa*sd - sb*sc
	if det == 0 {
		return nil
	}
	ia, ib := sd/det, -sb/det
	ic, id := -sc/det, sa/det

	da, db := pts[1].x-pts[0].x, pts[3].x-pts[0].x
	dc, dd := pts[1].y-pts[0].y, pts[3].y-pts[0].y

	la, lb := da*ia+db*ic, da*ib+db*id
	lc, ld := dc*ia+dd*ic, dc*ib+dd*id
	s2d := f64.Aff3{
		la, lb, pts[0].x - la*s0.x - lb*s0.y,
		lc, ld, pts[0].y - lc*s0.x - ld*s0.y,
	}

	dst := image.NewRGBA(clip)
	d.interp.Transform(dst, s2d, tex, tb, xdraw.Src, nil)
	return dst
}

// composite blends the source over the target inside clip. The vertex
// color gradient is sampled at pixel centers and tints src, or is the
// source color alone when src is nil.
func (d *Device) composite(clip image.Rectangle, mask *image.Alpha, maskOrigin image.Point, src *image.RGBA, shade *gradient) {
	blend := blendFunc(d.cur.mode)
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			cov := mask.AlphaAt(x-maskOrigin.X, y-maskOrigin.Y).A
			if cov == 0 {
				continue
			}
			tint := shade.at(float64(x)+0.5, float64(y)+0.5)
			s := tint
			if src != nil {
				p := src.RGBAAt(x, y)
				s = premul{
					float64(p.R) / 255 * tint.r,
					float64(p.G) / 255 * tint.g,
					float64(p.B) / 255 * tint.b,
					float64(p.A) / 255 * tint.a,
				}
			}
			k := float64(cov) / 255
			s = premul{s.r * k, s.g * k, s.b * k, s.a * k}

			i := d.img.PixOffset(x, y)
			pix := d.img.Pix[i : i+4 : i+4]
			dst := premul{float64(pix[0]) / 255, float64(pix[1]) / 255, float64(pix[2]) / 255, float64(pix[3]) / 255}
			out := blend(s, dst)
			pix[0] = quantize(out.r)
			pix[1] = quantize(out.g)
			pix[2] = quantize(out.b)
			pix[3] = quantize(out.a)
		}
	}
}

func quantize(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 1) * 255))
}
