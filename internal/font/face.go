package font

import (
	"fmt"
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// FaceRasterizer draws text with an x/image font face
type FaceRasterizer struct {
	Face xfont.Face
}

// NewFaceRasterizer wraps face
func NewFaceRasterizer(face xfont.Face) *FaceRasterizer {
	return &FaceRasterizer{Face: face}
}

// Rasterize draws text on a single baseline-aligned line
func (f *FaceRasterizer) Rasterize(text string) (image.Image, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	width := xfont.MeasureString(f.Face, text).Ceil()
	metrics := f.Face.Metrics()
	height := metrics.Height.Ceil()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rasterize %q: %w", text, ErrNoGlyphs)
	}

	img := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &xfont.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: f.Face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	d.DrawString(text)
	return img, nil
}
