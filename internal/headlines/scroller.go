// Package headlines scrolls news headlines across a fixed-width viewport.
//
// Headlines are rendered once into a long pixel Strip. Each frame the
// Scroller copies a viewport-wide window out of it and moves its cursor
// along. New headline lists are appended to the right of the strip instead of
// replacing it, so the visible text never jumps, and blocks that have fully
// scrolled past are trimmed off the left to keep the strip bounded.
package headlines

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
)

// Defaults applied by New to zero-valued options
const (
	DefaultViewportWidth = 64
	DefaultHeight        = 8
	DefaultSeparator     = " • "
	DefaultTrimDistance  = 1000
)

// DefaultAccent is the headline text colour
var DefaultAccent = color.RGBA{R: 0xFF, G: 0xFF, A: 0xFF}

// Options configures a Scroller
type Options struct {
	ViewportWidth int
	Height        int
	Separator     string
	Accent        color.RGBA
	// Speed is the number of pixels moved per Advance
	Speed int
	// TrimDistance is how many pixels the cursor travels between trims
	TrimDistance int
	// Placeholders seed the strip until real headlines arrive
	Placeholders []string
}

func (o Options) withDefaults() Options {
	if o.ViewportWidth <= 0 {
		o.ViewportWidth = DefaultViewportWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	if o.Accent == (color.RGBA{}) {
		o.Accent = DefaultAccent
	}
	o.Speed = max(1, o.Speed)
	if o.TrimDistance <= 0 {
		o.TrimDistance = DefaultTrimDistance
	}
	return o
}

// Scroller serves a viewport into a Strip and advances through it
type Scroller struct {
	strip        *Strip
	logger       *log.Logger
	viewport     int
	scrollX      int
	speed        int
	trimDistance int
	// pixels moved since the last trim
	travelled    int
	placeholders []string
}

// New builds a scroller whose strip is seeded with opts.Placeholders
func New(raster Rasterizer, opts Options, logger *log.Logger) *Scroller {
	opts = opts.withDefaults()
	logger = logger.WithPrefix("headlines")

	s := &Scroller{
		strip:        NewStrip(raster, opts.ViewportWidth, opts.Height, opts.Separator, opts.Accent, logger),
		logger:       logger,
		viewport:     opts.ViewportWidth,
		speed:        opts.Speed,
		trimDistance: opts.TrimDistance,
		placeholders: append([]string(nil), opts.Placeholders...),
	}
	s.strip.BuildInitial(s.placeholders)
	return s
}

// Strip exposes the underlying strip for inspection
func (s *Scroller) Strip() *Strip {
	return s.strip
}

// Update appends a freshly fetched headline list. It is a no-op when the
// list is empty or unchanged since the last call.
func (s *Scroller) Update(headlines []string) bool {
	return s.strip.Append(headlines)
}

// DisplaySlice returns the viewport-wide window at the cursor. A window that
// runs off the end of the strip continues from its start.
func (s *Scroller) DisplaySlice() *image.RGBA {
	out := s.strip.blank(s.viewport)

	width := s.strip.Width()
	if width <= 0 {
		return out
	}
	if s.scrollX >= width {
		s.logger.Debug("cursor past strip end, resetting", "scroll_x", s.scrollX, "width", width)
		s.scrollX = 0
	}

	if s.scrollX+s.viewport <= width {
		copyColumns(out, 0, s.strip.img, s.scrollX, s.viewport)
		return out
	}

	tail := width - s.scrollX
	copyColumns(out, 0, s.strip.img, s.scrollX, tail)
	head := min(s.viewport-tail, width)
	copyColumns(out, tail, s.strip.img, 0, head)
	return out
}

// Advance moves the cursor by pixels, or by the configured speed when
// pixels is not positive, wrapping at the strip end. Every TrimDistance
// pixels of travel the strip drops blocks the cursor has passed.
func (s *Scroller) Advance(pixels int) {
	width := s.strip.Width()
	if width <= 0 {
		return
	}
	if pixels <= 0 {
		pixels = s.speed
	}

	s.scrollX += pixels
	if s.scrollX >= width {
		s.scrollX %= width
	}

	s.travelled += pixels
	if s.travelled >= s.trimDistance {
		s.travelled = 0
		s.trim()
	}
}

func (s *Scroller) trim() {
	trimmed := s.strip.TrimScrolled(s.scrollX)
	s.scrollX = max(0, s.scrollX-trimmed)
}

// SetSpeed sets the pixels moved per Advance. Values below one are raised
// to one; a stalled scroller is never valid.
func (s *Scroller) SetSpeed(pixels int) {
	s.speed = max(1, pixels)
}

// Speed returns the pixels moved per Advance
func (s *Scroller) Speed() int {
	return s.speed
}

// ScrollX returns the cursor position within the strip
func (s *Scroller) ScrollX() int {
	return s.scrollX
}

// SetScrollX moves the cursor. Positions past the strip end are corrected
// on the next DisplaySlice.
func (s *Scroller) SetScrollX(x int) {
	s.scrollX = max(0, x)
}

// Reset rebuilds the strip from the headlines it currently holds, or the
// placeholders when it holds none, and rewinds the cursor. The last applied
// list is still recognised afterwards, so repeating it does not append.
func (s *Scroller) Reset() {
	headlines := s.strip.CurrentHeadlines()
	if len(headlines) == 0 {
		headlines = s.placeholders
	}
	fp, ok := s.strip.fingerprint, s.strip.hasFingerprint
	s.strip.BuildInitial(headlines)
	s.strip.fingerprint, s.strip.hasFingerprint = fp, ok
	s.scrollX = 0
	s.travelled = 0
}

// Info describes the scroller state for logs
func (s *Scroller) Info() string {
	return fmt.Sprintf("%d headlines, %dpx strip, offset %d",
		len(s.strip.headlines), s.strip.Width(), s.scrollX)
}
