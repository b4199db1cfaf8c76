// Package font turns text into coverage images for the LED panel.
//
// Two rasterizers are provided: Font, a fixed-advance bitmap font (the
// built-in 5x7 table or one parsed from a text file), and FaceRasterizer,
// which draws any golang.org/x/image/font.Face. Both return an *image.Alpha
// where non-zero alpha marks glyph coverage.
package font

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"unicode"
)

var (
	// ErrEmptyText is returned when asked to rasterize an empty string
	ErrEmptyText = errors.New("empty text")
	// ErrNoGlyphs is returned when no rune of the text exists in the font
	ErrNoGlyphs = errors.New("no renderable glyphs")
)

// Glyph is a single character bitmap
type Glyph struct {
	Width  int
	Height int
	bits   []bool
}

// Set reports whether the pixel at x, y is lit
func (g Glyph) Set(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	return g.bits[y*g.Width+x]
}

// Font is a bitmap font with a fixed gap between glyphs
type Font struct {
	glyphs  map[rune]Glyph
	spacing int
	// missing runes advance by this many blank columns
	missing int
	// minimum line height
	height int
}

// New returns an empty font
func New(spacing int) *Font {
	return &Font{
		glyphs:  make(map[rune]Glyph),
		spacing: spacing,
		missing: 2,
		height:  5,
	}
}

// Add registers a glyph from rows of '0'/'1' characters
func (f *Font) Add(r rune, rows []string) error {
	if len(rows) == 0 {
		return fmt.Errorf("glyph %q has no rows", r)
	}
	width := len(rows[0])
	g := Glyph{Width: width, Height: len(rows), bits: make([]bool, width*len(rows))}
	for y, row := range rows {
		if len(row) != width {
			return fmt.Errorf("glyph %q row %d is %d wide, want %d", r, y, len(row), width)
		}
		for x, c := range row {
			g.bits[y*width+x] = c == '1'
		}
	}
	f.glyphs[r] = g
	return nil
}

// Glyph looks up a rune, falling back to its upper case form
func (f *Font) Glyph(r rune) (Glyph, bool) {
	if g, ok := f.glyphs[r]; ok {
		return g, true
	}
	g, ok := f.glyphs[unicode.ToUpper(r)]
	return g, ok
}

// Height is the tallest glyph height
func (f *Font) Height() int {
	h := f.height
	for _, g := range f.glyphs {
		h = max(h, g.Height)
	}
	return h
}

// Measure returns the rendered width of text in pixels
func (f *Font) Measure(text string) int {
	width, n := 0, 0
	for _, r := range text {
		if n > 0 {
			width += f.spacing
		}
		if g, ok := f.Glyph(r); ok {
			width += g.Width
		} else {
			width += f.missing
		}
		n++
	}
	return width
}

// Rasterize draws text into a new coverage image
func (f *Font) Rasterize(text string) (image.Image, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	width, height := f.Measure(text), f.Height()
	img := image.NewAlpha(image.Rect(0, 0, width, height))

	x, found := 0, false
	for i, r := range []rune(text) {
		if i > 0 {
			x += f.spacing
		}
		g, ok := f.Glyph(r)
		if !ok {
			x += f.missing
			continue
		}
		found = true
		for gy := 0; gy < g.Height; gy++ {
			for gx := 0; gx < g.Width; gx++ {
				if g.Set(gx, gy) {
					img.Pix[gy*img.Stride+x+gx] = 0xFF
				}
			}
		}
		x += g.Width
	}

	if !found {
		return nil, fmt.Errorf("rasterize %q: %w", text, ErrNoGlyphs)
	}
	return img, nil
}

// Parse reads a font file with one glyph per line:
//
//	A,01110,10001,11111,10001,10001
//
// The first field is the character and the rest are bitmap rows. A line that
// starts with ",," defines the comma glyph.
func Parse(r io.Reader, spacing int) (*Font, error) {
	f := New(spacing)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var char string
		var rows []string
		if strings.HasPrefix(text, ",,") {
			char, rows = ",", strings.Split(text[2:], ",")
		} else {
			parts := strings.Split(text, ",")
			if len(parts) < 2 {
				continue
			}
			char, rows = parts[0], parts[1:]
		}

		runes := []rune(char)
		if len(runes) != 1 {
			return nil, fmt.Errorf("line %d: glyph key %q is not one character", line, char)
		}
		if err := f.Add(runes[0], rows); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	if len(f.glyphs) == 0 {
		return nil, fmt.Errorf("font has no glyphs: %w", ErrNoGlyphs)
	}
	return f, nil
}
