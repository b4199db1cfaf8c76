package display

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed splash.svg
var splashSVG []byte

// Splash renders the startup logo at width x height
func Splash(width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(splashSVG))
	if err != nil {
		return nil, fmt.Errorf("failed to parse splash: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)
	return img, nil
}

// ShowSplash keeps the logo on the panel for d, or until ctx is done
func (r *Renderer) ShowSplash(ctx context.Context, d time.Duration) error {
	img, err := Splash(r.width, r.height)
	if err != nil {
		return err
	}
	if err := r.matrix.SetImage(img); err != nil {
		return fmt.Errorf("failed to set splash: %w", err)
	}

	deadline := time.NewTimer(d)
	defer deadline.Stop()
	ticker := time.NewTicker(r.refresh)
	defer ticker.Stop()

	for {
		if err := r.matrix.Show(); err != nil {
			return fmt.Errorf("failed to show splash: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return nil
		case <-ticker.C:
		}
	}
}
