// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	xdraw "golang.org/x/image/draw"
)

// residentTexture is a batch texture living on the GPU.
type residentTexture struct {
	tex  hal.Texture
	view hal.TextureView
}

func (t *residentTexture) destroy(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
	}
}

// textureSet uploads each distinct batch texture once. Batches without a
// texture share a 1x1 opaque white one so a single pipeline serves both.
type textureSet struct {
	device hal.Device
	queue  hal.Queue

	byImage map[image.Image]*residentTexture
	white   *residentTexture
	all     []*residentTexture
}

func newTextureSet(device hal.Device, queue hal.Queue) *textureSet {
	return &textureSet{
		device:  device,
		queue:   queue,
		byImage: make(map[image.Image]*residentTexture),
	}
}

// get returns the resident copy of img, uploading it on first use. A nil or
// empty image yields the white texture.
func (s *textureSet) get(img image.Image) (*residentTexture, error) {
	if img == nil || img.Bounds().Empty() {
		if s.white == nil {
			w := image.NewRGBA(image.Rect(0, 0, 1, 1))
			w.SetRGBA(0, 0, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
			t, err := s.upload("macro_white", w)
			if err != nil {
				return nil, err
			}
			s.white = t
		}
		return s.white, nil
	}
	if t, ok := s.byImage[img]; ok {
		return t, nil
	}
	t, err := s.upload(fmt.Sprintf("macro_texture_%d", len(s.all)), toRGBA(img))
	if err != nil {
		return nil, err
	}
	s.byImage[img] = t
	return t, nil
}

func (s *textureSet) upload(label string, img *image.RGBA) (*residentTexture, error) {
	w, h := uint32(img.Rect.Dx()), uint32(img.Rect.Dy()) //nolint:gosec // image bounds are positive
	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", label, err)
	}
	t := &residentTexture{tex: tex}

	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.destroy(s.device)
		return nil, fmt.Errorf("create texture view %s: %w", label, err)
	}
	t.view = view

	s.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		img.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride), //nolint:gosec // stride of a small image
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	s.all = append(s.all, t)
	return t, nil
}

func (s *textureSet) destroy() {
	for _, t := range s.all {
		t.destroy(s.device)
	}
	s.all = nil
	s.byImage = nil
	s.white = nil
}

// toRGBA returns img as premultiplied RGBA with its origin at (0, 0).
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}
