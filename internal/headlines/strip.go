package headlines

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/charmbracelet/log"
)

// Rasterizer renders a string to a coverage image. Pixels that are neither
// transparent nor black count as glyph coverage.
type Rasterizer interface {
	Rasterize(text string) (image.Image, error)
}

var background = color.RGBA{A: 0xFF}

// Strip owns the scrollable headline pixels and the blocks that describe them.
// It is not safe for concurrent use; the render loop is its only caller.
type Strip struct {
	raster    Rasterizer
	logger    *log.Logger
	viewport  int
	height    int
	separator string
	accent    color.RGBA

	img       *image.RGBA
	blocks    []Block
	headlines []string

	fingerprint    uint64
	hasFingerprint bool
}

// NewStrip returns a strip holding a blank viewport-wide buffer
func NewStrip(raster Rasterizer, viewport, height int, separator string, accent color.RGBA, logger *log.Logger) *Strip {
	s := &Strip{
		raster:    raster,
		logger:    logger,
		viewport:  viewport,
		height:    height,
		separator: separator,
		accent:    accent,
	}
	s.img = s.blank(viewport)
	return s
}

// Width is the current strip width in pixels
func (s *Strip) Width() int {
	return s.img.Bounds().Dx()
}

// Height is the fixed row height
func (s *Strip) Height() int {
	return s.height
}

// Blocks returns a copy of the block list, oldest first
func (s *Strip) Blocks() []Block {
	return append([]Block(nil), s.blocks...)
}

// CurrentHeadlines returns the headlines still held in the strip
func (s *Strip) CurrentHeadlines() []string {
	return append([]string(nil), s.headlines...)
}

// BuildInitial replaces the strip with headlines followed by a blank gap of
// twice the viewport width, so the loop seam never shows two headlines
// butted together. An empty list leaves a single blank viewport and no
// blocks.
func (s *Strip) BuildInitial(headlines []string) {
	s.blocks = nil
	s.headlines = nil

	if len(headlines) == 0 {
		s.img = s.blank(s.viewport)
		s.logger.Debug("built empty headline strip", "width", s.viewport)
		return
	}

	texts := make([]string, len(headlines))
	for i, h := range headlines {
		if i > 0 {
			h = s.separator + h
		}
		texts[i] = h
	}
	images, width := s.rasterize(texts)

	total := width + 2*s.viewport
	img := s.blank(total)
	s.paste(img, images, 0)

	s.img = img
	s.blocks = []Block{{Start: 0, End: total, Headlines: len(headlines)}}
	s.headlines = append([]string(nil), headlines...)
	s.fingerprint, s.hasFingerprint = fingerprint(headlines), true

	s.logger.Info("built headline strip", "headlines", len(headlines), "width", total)
}

// Append adds headlines to the right edge of the strip as a new block.
// Existing pixels never move, so whatever is on screen keeps scrolling
// without a jump. It returns false when nothing changed: an empty list, the
// same list as last time, or a list where every headline failed to render.
func (s *Strip) Append(headlines []string) bool {
	if len(headlines) == 0 {
		return false
	}
	fp := fingerprint(headlines)
	if s.hasFingerprint && fp == s.fingerprint {
		return false
	}
	if len(s.blocks) == 0 {
		s.BuildInitial(headlines)
		return true
	}

	texts := make([]string, len(headlines))
	for i, h := range headlines {
		texts[i] = s.separator + h
	}
	images, width := s.rasterize(texts)
	s.fingerprint, s.hasFingerprint = fp, true
	if width == 0 {
		s.logger.Warn("no headlines rendered, strip unchanged", "headlines", len(headlines))
		return false
	}

	old := s.Width()
	img := s.blank(old + width)
	copyColumns(img, 0, s.img, 0, old)
	s.paste(img, images, old)

	s.img = img
	s.blocks = append(s.blocks, Block{Start: old, End: old + width, Headlines: len(headlines)})
	s.headlines = append(s.headlines, headlines...)

	s.logger.Info("appended headlines", "headlines", len(headlines), "added", width, "width", s.Width())
	return true
}

// TrimScrolled drops the leading blocks that end at or before scrollX,
// always keeping the newest block. Remaining blocks are re-based to start at
// zero. It returns the number of columns removed, which the caller must
// subtract from its cursor.
func (s *Strip) TrimScrolled(scrollX int) int {
	n := 0
	for n < len(s.blocks)-1 && s.blocks[n].End <= scrollX {
		n++
	}
	if n == 0 {
		return 0
	}

	trimmed := s.blocks[n].Start
	dropped := 0
	for _, b := range s.blocks[:n] {
		dropped += b.Headlines
	}

	// build everything first, then swap, so a partial trim is never visible
	remaining := s.Width() - trimmed
	img := s.blank(remaining)
	copyColumns(img, 0, s.img, trimmed, remaining)

	blocks := make([]Block, 0, len(s.blocks)-n)
	for _, b := range s.blocks[n:] {
		blocks = append(blocks, b.shift(trimmed))
	}

	headlines := s.headlines
	if dropped <= len(headlines) {
		headlines = append([]string(nil), headlines[dropped:]...)
	}

	s.img, s.blocks, s.headlines = img, blocks, headlines

	s.logger.Info("trimmed headline strip", "blocks", n, "removed", trimmed, "width", remaining)
	return trimmed
}

// rasterize renders each text, skipping the ones that fail
func (s *Strip) rasterize(texts []string) ([]image.Image, int) {
	images := make([]image.Image, 0, len(texts))
	width := 0
	for _, text := range texts {
		img, err := s.raster.Rasterize(text)
		if err != nil || img == nil {
			s.logger.Warn("skipping headline", "text", text, "err", err)
			continue
		}
		images = append(images, img)
		width += img.Bounds().Dx()
	}
	return images, width
}

// paste composites glyph coverage in the accent colour, starting at column x
// and centring each image vertically in the row.
func (s *Strip) paste(dst *image.RGBA, images []image.Image, x int) {
	for _, src := range images {
		b := src.Bounds()
		yOff := max(0, (s.height-b.Dy())/2)
		for sy := b.Min.Y; sy < b.Max.Y; sy++ {
			y := yOff + sy - b.Min.Y
			if y >= s.height {
				break
			}
			for sx := b.Min.X; sx < b.Max.X; sx++ {
				dx := x + sx - b.Min.X
				if dx >= dst.Bounds().Dx() {
					break
				}
				if covered(src.At(sx, sy)) {
					dst.SetRGBA(dx, y, s.accent)
				}
			}
		}
		x += b.Dx()
	}
}

func (s *Strip) blank(width int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, s.height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)
	return img
}

func covered(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return a != 0 && r|g|b != 0
}

// copyColumns copies w columns of src starting at srcX into dst at dstX.
// Both images must share a height and start at the origin.
func copyColumns(dst *image.RGBA, dstX int, src *image.RGBA, srcX, w int) {
	if w <= 0 {
		return
	}
	for y := 0; y < dst.Bounds().Dy(); y++ {
		d := dst.Pix[y*dst.Stride+dstX*4 : y*dst.Stride+(dstX+w)*4]
		copy(d, src.Pix[y*src.Stride+srcX*4:y*src.Stride+(srcX+w)*4])
	}
}
