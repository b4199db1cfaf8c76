// Package display composes clock frames and pushes them to a matrix.
//
// Everything except the headline row changes at most once a minute, so the
// renderer keeps a prebuilt static frame and only rebuilds it when the time,
// weather or stock inputs differ from the last build. Each tick copies that
// frame and pastes the current headline slice on top.
package display

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/srwiley/rasterx"

	"github.com/fkcurrie/ledclock-golang/internal/headlines"
	"github.com/fkcurrie/ledclock-golang/internal/types"
)

// Options configures a Renderer
type Options struct {
	Width  int
	Height int
	// Refresh is the tick period of Run
	Refresh time.Duration
	// ScrollEvery advances the headlines once per this many frames
	ScrollEvery int
	Layout      Layout
	Palette     Palette
}

// Renderer handles the display rendering logic
type Renderer struct {
	matrix   types.Matrix
	scroller *headlines.Scroller
	tiny     headlines.Rasterizer
	clock    headlines.Rasterizer
	logger   *log.Logger

	width       int
	height      int
	refresh     time.Duration
	scrollEvery int
	layout      Layout
	palette     Palette

	static      *image.RGBA
	lastTime    types.TimeData
	lastWeather types.WeatherData
	lastStocks  types.StockData
	rebuilds    int

	cache  map[string]image.Image
	frame  int
	resets chan struct{}
}

// NewRenderer creates a renderer drawing small text with tiny and the clock
// digits with clock.
func NewRenderer(matrix types.Matrix, scroller *headlines.Scroller, tiny, clock headlines.Rasterizer, opts Options, logger *log.Logger) *Renderer {
	if opts.Width <= 0 {
		opts.Width = 64
	}
	if opts.Height <= 0 {
		opts.Height = 64
	}
	if opts.Refresh <= 0 {
		opts.Refresh = 3 * time.Millisecond
	}
	opts.ScrollEvery = max(1, opts.ScrollEvery)

	return &Renderer{
		matrix:      matrix,
		scroller:    scroller,
		tiny:        tiny,
		clock:       clock,
		logger:      logger.WithPrefix("display"),
		width:       opts.Width,
		height:      opts.Height,
		refresh:     opts.Refresh,
		scrollEvery: opts.ScrollEvery,
		layout:      opts.Layout,
		palette:     opts.Palette,
		cache:       make(map[string]image.Image),
		resets:      make(chan struct{}, 1),
	}
}

// Run renders a frame from source every tick until ctx is cancelled.
// Render errors are logged and the loop carries on.
func (r *Renderer) Run(ctx context.Context, source func() types.Snapshot) error {
	ticker := time.NewTicker(r.refresh)
	defer ticker.Stop()

	r.logger.Info("render loop started", "refresh", r.refresh, "scroll_every", r.scrollEvery)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.resets:
			r.ClearCache()
			r.logger.Info("display reset", "headlines", r.scroller.Info())
		case <-ticker.C:
			if err := r.Tick(source()); err != nil {
				r.logger.Error("failed to render", "err", err)
			}
		}
	}
}

// Tick renders one frame and shows it
func (r *Renderer) Tick(snap types.Snapshot) error {
	frame := r.RenderFrame(snap)
	if err := r.matrix.SetImage(frame); err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}
	if err := r.matrix.Show(); err != nil {
		return fmt.Errorf("failed to show frame: %w", err)
	}
	return nil
}

// RenderFrame builds the full frame for snap. Headlines in the snapshot are
// handed to the scroller, which ignores lists it has already seen.
func (r *Renderer) RenderFrame(snap types.Snapshot) *image.RGBA {
	if r.staticChanged(snap) {
		r.rebuildStatic(snap)
	}

	frame := image.NewRGBA(r.static.Bounds())
	copy(frame.Pix, r.static.Pix)

	if len(snap.News.Headlines) > 0 {
		r.scroller.Update(snap.News.Headlines)
	}
	slice := r.scroller.DisplaySlice()
	dst := slice.Bounds().Add(image.Pt(0, r.layout.HeadlinesY)).Intersect(frame.Bounds())
	draw.Draw(frame, dst, slice, image.Point{}, draw.Src)

	r.frame++
	if r.frame%r.scrollEvery == 0 {
		r.scroller.Advance(0)
	}
	return frame
}

// ClearCache drops cached text images, forces a static rebuild and rebuilds
// the headline strip from scratch.
func (r *Renderer) ClearCache() {
	clear(r.cache)
	r.static = nil
	r.scroller.Reset()
}

// RequestReset asks Run to clear every cache before its next frame. It never
// blocks and may be called from any goroutine.
func (r *Renderer) RequestReset() {
	select {
	case r.resets <- struct{}{}:
	default:
	}
}

// CachedTexts returns the number of cached text images
func (r *Renderer) CachedTexts() int {
	return len(r.cache)
}

// Rebuilds counts static frame rebuilds
func (r *Renderer) Rebuilds() int {
	return r.rebuilds
}

func (r *Renderer) staticChanged(snap types.Snapshot) bool {
	return r.static == nil ||
		snap.Time != r.lastTime ||
		!snap.Weather.Equal(r.lastWeather) ||
		!snap.Stocks.Equal(r.lastStocks)
}

func (r *Renderer) rebuildStatic(snap types.Snapshot) {
	// cached times and quotes from earlier days are never shown again
	if r.static != nil && snap.Time.Date != r.lastTime.Date {
		clear(r.cache)
	}

	frame := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(frame, frame.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	r.drawDividers(frame)

	if img := r.text("date", r.tiny, snap.Time.Date); img != nil {
		x := centredX(img.Bounds().Dx(), r.width, 0)
		paste(frame, img, x, r.layout.DateY, r.palette.Date)
	}
	if img := r.text("time", r.clock, snap.Time.Time); img != nil {
		paste(frame, img, r.layout.Time.X, r.layout.Time.Y, r.palette.Time)
	}
	if img := r.text("ampm", r.tiny, snap.Time.AMPM); img != nil {
		paste(frame, img, r.layout.AMPM.X, r.layout.AMPM.Y, r.palette.Time)
	}
	r.drawWeather(frame, snap.Weather)
	r.drawStocks(frame, snap.Stocks)

	r.static = frame
	r.lastTime = snap.Time
	r.lastWeather = snap.Weather
	r.lastStocks = types.StockData{Quotes: append([]types.Quote(nil), snap.Stocks.Quotes...)}
	r.rebuilds++
	r.logger.Debug("rebuilt static frame", "time", snap.Time.Time, "rebuilds", r.rebuilds)
}

func (r *Renderer) drawDividers(frame *image.RGBA) {
	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	filler := rasterx.NewFiller(w, h, rasterx.NewScannerGV(w, h, frame, frame.Bounds()))
	filler.SetColor(r.palette.Divider)
	for _, d := range r.layout.Dividers {
		rasterx.AddRect(float64(d.Min.X), float64(d.Min.Y), float64(d.Max.X), float64(d.Max.Y), 0, filler)
	}
	filler.Draw()
}

// drawWeather lays out "H75    L65" on the first line, with the high label
// flush left and the low value flush against the divider, and "Now    70"
// on the second.
func (r *Renderer) drawWeather(frame *image.RGBA, w types.WeatherData) {
	l, p := r.layout, r.palette
	y := l.Weather.Y

	x := l.Weather.X
	if img := r.text("weather", r.tiny, "H"); img != nil {
		paste(frame, img, x, y, p.Label)
		x += img.Bounds().Dx() + 1
	}
	if img := r.text("weather_high", r.tiny, strconv.Itoa(w.High)); img != nil {
		paste(frame, img, x, y, p.High)
	}
	if img := r.text("weather_low", r.tiny, strconv.Itoa(w.Low)); img != nil {
		lowX := l.WeatherRight - img.Bounds().Dx()
		paste(frame, img, lowX, y, p.Low)
		if label := r.text("weather", r.tiny, "L"); label != nil {
			paste(frame, label, lowX-label.Bounds().Dx()-1, y, p.Label)
		}
	}

	y += l.LineStep
	if img := r.text("weather", r.tiny, "Now"); img != nil {
		paste(frame, img, l.Weather.X, y, p.Now)
	}
	if img := r.text("weather_now", r.tiny, strconv.Itoa(w.Current)); img != nil {
		paste(frame, img, l.WeatherRight-img.Bounds().Dx(), y, p.Now)
	}
}

// drawStocks writes one index per line, label left and unsigned change
// right-aligned, coloured by direction.
func (r *Renderer) drawStocks(frame *image.RGBA, s types.StockData) {
	l, p := r.layout, r.palette
	for i, q := range s.Quotes {
		y := l.Stocks.Y + i*l.LineStep
		if y+l.LineStep > l.HeadlinesY {
			break
		}
		if img := r.text("stock_label", r.tiny, q.Label); img != nil {
			paste(frame, img, l.Stocks.X, y, p.Label)
		}
		c := p.Up
		if !q.Up() {
			c = p.Down
		}
		if img := r.text("stock_value", r.tiny, q.Value()); img != nil {
			paste(frame, img, l.StocksRight-img.Bounds().Dx(), y, c)
		}
	}
}

// text returns the cached coverage image for text, or nil if it cannot be
// drawn. Keys are namespaced by kind so the same string can be cached per
// font.
func (r *Renderer) text(kind string, raster headlines.Rasterizer, text string) image.Image {
	if text == "" {
		return nil
	}
	key := kind + "_" + text
	if img, ok := r.cache[key]; ok {
		return img
	}
	img, err := raster.Rasterize(text)
	if err != nil {
		r.logger.Warn("failed to draw text", "kind", kind, "text", text, "err", err)
		return nil
	}
	r.cache[key] = img
	return img
}

// paste sets every covered pixel of src to c, with src's origin at x, y
func paste(dst *image.RGBA, src image.Image, x, y int, c color.RGBA) {
	b := src.Bounds()
	for sy := b.Min.Y; sy < b.Max.Y; sy++ {
		for sx := b.Min.X; sx < b.Max.X; sx++ {
			p := image.Pt(x+sx-b.Min.X, y+sy-b.Min.Y)
			if !p.In(dst.Bounds()) {
				continue
			}
			if _, _, _, a := src.At(sx, sy).RGBA(); a > 0x7FFF {
				dst.SetRGBA(p.X, p.Y, c)
			}
		}
	}
}
