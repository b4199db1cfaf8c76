package hub75

import (
	"image"
	"image/color"
	"image/draw"
)

// TestPattern returns frame n of the wiring check cycle: solid red, green,
// blue, then a yellow checkerboard of cell-pixel squares that shifts every
// eight frames.
func TestPattern(width, height, n, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	switch n % 4 {
	case 0:
		fill(img, color.RGBA{R: 255, A: 255})
	case 1:
		fill(img, color.RGBA{G: 255, A: 255})
	case 2:
		fill(img, color.RGBA{B: 255, A: 255})
	default:
		checkerboard(img, max(1, cell), n/8)
	}
	return img
}

func fill(img *image.RGBA, c color.RGBA) {
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func checkerboard(img *image.RGBA, cell, offset int) {
	fill(img, color.RGBA{A: 255})
	on := color.RGBA{R: 255, G: 255, A: 255}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if (y/cell+x/cell+offset)%2 == 0 {
				img.SetRGBA(x, y, on)
			}
		}
	}
}
