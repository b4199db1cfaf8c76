package display

import (
	"image"
	"image/color"
)

// Palette holds the section colours
type Palette struct {
	Date    color.RGBA
	Time    color.RGBA
	Divider color.RGBA
	Label   color.RGBA
	High    color.RGBA
	Low     color.RGBA
	Now     color.RGBA
	Up      color.RGBA
	Down    color.RGBA
}

// DefaultPalette returns the panel colours
func DefaultPalette() Palette {
	return Palette{
		Date:    color.RGBA{R: 0, G: 255, B: 255, A: 255},
		Time:    color.RGBA{R: 255, G: 0, B: 0, A: 255},
		Divider: color.RGBA{R: 128, G: 128, B: 128, A: 255},
		Label:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		High:    color.RGBA{R: 255, G: 165, B: 0, A: 255},
		Low:     color.RGBA{R: 0, G: 0, B: 255, A: 255},
		Now:     color.RGBA{R: 0, G: 255, B: 255, A: 255},
		Up:      color.RGBA{R: 0, G: 255, B: 0, A: 255},
		Down:    color.RGBA{R: 255, G: 0, B: 0, A: 255},
	}
}

// Layout places every section on a 64x64 panel
type Layout struct {
	DateY int
	Time  image.Point
	AMPM  image.Point

	Weather image.Point
	// right edge for right-aligned weather values
	WeatherRight int
	Stocks       image.Point
	StocksRight  int
	// vertical gap between the two lines of the weather and stocks sections
	LineStep int

	Dividers []image.Rectangle

	HeadlinesY      int
	HeadlinesHeight int
}

// DefaultLayout returns the 64x64 arrangement: date, clock, weather and
// stocks side by side, then the headline row along the bottom.
func DefaultLayout() Layout {
	return Layout{
		DateY: 3,
		Time:  image.Pt(2, 17),
		AMPM:  image.Pt(53, 17),

		Weather:      image.Pt(1, 40),
		WeatherRight: 30,
		Stocks:       image.Pt(34, 40),
		StocksRight:  62,
		LineStep:     7,

		Dividers: []image.Rectangle{
			image.Rect(0, 11, 64, 13),  // under the date
			image.Rect(0, 36, 64, 38),  // under the time
			image.Rect(31, 37, 33, 54), // between weather and stocks
			image.Rect(0, 54, 64, 55),  // above the headlines
		},

		HeadlinesY:      56,
		HeadlinesHeight: 8,
	}
}

// centredX centres a span of width w in a section, biased one pixel right
func centredX(w, section, start int) int {
	if w >= section {
		return start
	}
	return start + (section-w)/2 + 1
}
