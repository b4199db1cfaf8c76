package display

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/fkcurrie/ledclock-golang/internal/font"
	"github.com/fkcurrie/ledclock-golang/internal/headlines"
	"github.com/fkcurrie/ledclock-golang/internal/logging"
	"github.com/fkcurrie/ledclock-golang/internal/types"
)

type fakeMatrix struct {
	frames  []image.Image
	shows   int
	showErr error
}

func (m *fakeMatrix) Clear() error { return nil }

func (m *fakeMatrix) SetImage(img image.Image) error {
	m.frames = append(m.frames, img)
	return nil
}

func (m *fakeMatrix) Show() error {
	m.shows++
	return m.showErr
}

func (m *fakeMatrix) Close() error { return nil }

func newTestRenderer(t *testing.T, scrollEvery int) (*Renderer, *headlines.Scroller, *fakeMatrix) {
	t.Helper()
	logger := logging.Discard()
	scroller := headlines.New(font.Builtin(), headlines.Options{
		ViewportWidth: 64,
		Height:        DefaultLayout().HeadlinesHeight,
		Placeholders:  []string{"Hello world"},
	}, logger)
	m := &fakeMatrix{}
	r := NewRenderer(m, scroller, font.Tiny(), font.NewFaceRasterizer(basicfont.Face7x13), Options{
		Refresh:     time.Millisecond,
		ScrollEvery: scrollEvery,
		Layout:      DefaultLayout(),
		Palette:     DefaultPalette(),
	}, logger)
	return r, scroller, m
}

func testSnapshot() types.Snapshot {
	return types.Snapshot{
		Time:    types.TimeData{Time: "3:04", AMPM: "PM", Date: "Mon Sep 29 2025"},
		Weather: types.WeatherData{Current: 70, High: 75, Low: 65},
		Stocks: types.StockData{Quotes: []types.Quote{
			{Symbol: "^DJI", Label: "DOW", Change: -5},
			{Symbol: "^GSPC", Label: "S&P", Change: 5},
		}},
	}
}

func near(c color.RGBA, want color.RGBA) bool {
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(c.R, want.R) <= 8 && d(c.G, want.G) <= 8 && d(c.B, want.B) <= 8
}

func TestStaticFrameRebuiltOnlyOnChange(t *testing.T) {
	r, _, _ := newTestRenderer(t, 1)
	snap := testSnapshot()

	r.RenderFrame(snap)
	r.RenderFrame(snap)
	assert.Equal(t, 1, r.Rebuilds())

	snap.Weather.UpdatedAt = time.Now()
	snap.News.Headlines = []string{"something new"}
	r.RenderFrame(snap)
	assert.Equal(t, 1, r.Rebuilds())

	snap.Time.Time = "3:05"
	r.RenderFrame(snap)
	assert.Equal(t, 2, r.Rebuilds())

	snap.Weather.Current = 71
	r.RenderFrame(snap)
	assert.Equal(t, 3, r.Rebuilds())

	snap.Stocks.Quotes = []types.Quote{{Label: "DOW", Change: 1}}
	r.RenderFrame(snap)
	assert.Equal(t, 4, r.Rebuilds())

	r.ClearCache()
	r.RenderFrame(snap)
	assert.Equal(t, 5, r.Rebuilds())
}

func TestStaticFrameIgnoresCallerMutation(t *testing.T) {
	r, _, _ := newTestRenderer(t, 1)
	snap := testSnapshot()
	r.RenderFrame(snap)

	// same backing array, changed in place
	snap.Stocks.Quotes[0].Change = 40
	r.RenderFrame(snap)
	assert.Equal(t, 2, r.Rebuilds())
}

func TestDividers(t *testing.T) {
	r, _, _ := newTestRenderer(t, 1)
	frame := r.RenderFrame(testSnapshot())
	dim := DefaultPalette().Divider

	for _, p := range []image.Point{{0, 11}, {63, 12}, {10, 36}, {31, 45}, {32, 53}, {5, 54}} {
		assert.True(t, near(frame.RGBAAt(p.X, p.Y), dim), "divider at %v is %v", p, frame.RGBAAt(p.X, p.Y))
	}
	for _, p := range []image.Point{{0, 10}, {0, 13}, {30, 50}, {33, 50}, {0, 55}} {
		assert.Equal(t, color.RGBA{A: 0xFF}, frame.RGBAAt(p.X, p.Y), "expected black at %v", p)
	}
}

func TestWeatherAndStockColours(t *testing.T) {
	r, _, _ := newTestRenderer(t, 1)
	frame := r.RenderFrame(testSnapshot())
	p := DefaultPalette()

	// "H" then the high value one pixel later
	assert.Equal(t, p.Label, frame.RGBAAt(1, 40))
	assert.Equal(t, p.High, frame.RGBAAt(5, 40))
	// "65" right-aligned against x=30
	assert.Equal(t, p.Low, frame.RGBAAt(23, 40))
	// "5" right-aligned against x=62, down then up
	assert.Equal(t, p.Down, frame.RGBAAt(59, 40))
	assert.Equal(t, p.Up, frame.RGBAAt(59, 47))
	// stock labels start at x=34
	assert.Equal(t, p.Label, frame.RGBAAt(35, 40))
}

func TestHeadlineRowIsScrollerSlice(t *testing.T) {
	r, scroller, _ := newTestRenderer(t, 1000)
	scroller.SetScrollX(3)
	want := scroller.DisplaySlice()

	frame := r.RenderFrame(testSnapshot())
	y0 := DefaultLayout().HeadlinesY
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < 64; x++ {
			require.Equal(t, want.RGBAAt(x, y), frame.RGBAAt(x, y0+y), "pixel %d,%d", x, y)
		}
	}
}

func TestHeadlineRowFillsBottom(t *testing.T) {
	_, scroller, _ := newTestRenderer(t, 1)
	l := DefaultLayout()

	assert.Equal(t, l.HeadlinesHeight, scroller.DisplaySlice().Bounds().Dy())
	assert.Equal(t, 64, l.HeadlinesY+l.HeadlinesHeight)
}

func TestTextCacheClearedOnNewDay(t *testing.T) {
	r, _, _ := newTestRenderer(t, 1)
	snap := testSnapshot()

	r.RenderFrame(snap)
	n := r.CachedTexts()

	snap.Time.Time = "3:05"
	r.RenderFrame(snap)
	assert.Equal(t, n+1, r.CachedTexts())

	snap.Time.Date = "Tue Sep 30 2025"
	r.RenderFrame(snap)
	assert.Equal(t, n, r.CachedTexts())
}

func TestClearCacheResetsHeadlines(t *testing.T) {
	r, scroller, _ := newTestRenderer(t, 1)
	snap := testSnapshot()
	snap.News.Headlines = []string{"Markets rally"}

	r.RenderFrame(snap)
	r.RenderFrame(snap)
	require.Len(t, scroller.Strip().Blocks(), 2)
	require.NotZero(t, scroller.ScrollX())

	r.ClearCache()
	assert.Zero(t, scroller.ScrollX())
	assert.Len(t, scroller.Strip().Blocks(), 1)
	assert.Zero(t, r.CachedTexts())

	r.RenderFrame(snap)
	assert.Len(t, scroller.Strip().Blocks(), 1)
	assert.Equal(t, []string{"Hello world", "Markets rally"}, scroller.Strip().CurrentHeadlines())
}

func TestRequestResetHandledByRun(t *testing.T) {
	r, _, _ := newTestRenderer(t, 1)
	r.RequestReset()
	r.RequestReset()
	require.Len(t, r.resets, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Run(ctx, testSnapshot), context.DeadlineExceeded)
	assert.Empty(t, r.resets)
}

func TestScrollEveryFrames(t *testing.T) {
	r, scroller, _ := newTestRenderer(t, 3)
	snap := testSnapshot()

	r.RenderFrame(snap)
	r.RenderFrame(snap)
	assert.Equal(t, 0, scroller.ScrollX())
	r.RenderFrame(snap)
	assert.Equal(t, 1, scroller.ScrollX())
}

func TestRenderFrameUpdatesHeadlines(t *testing.T) {
	r, scroller, _ := newTestRenderer(t, 1)
	snap := testSnapshot()
	snap.News.Headlines = []string{"Markets rally", "Rain later"}

	r.RenderFrame(snap)
	assert.Equal(t, []string{"Hello world", "Markets rally", "Rain later"}, scroller.Strip().CurrentHeadlines())
}

func TestTick(t *testing.T) {
	r, _, m := newTestRenderer(t, 1)
	require.NoError(t, r.Tick(testSnapshot()))
	assert.Len(t, m.frames, 1)
	assert.Equal(t, 1, m.shows)

	m.showErr = errors.New("bus error")
	assert.ErrorIs(t, r.Tick(testSnapshot()), m.showErr)
}

func TestRunStopsOnCancel(t *testing.T) {
	r, _, m := newTestRenderer(t, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := r.Run(ctx, testSnapshot)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotZero(t, m.shows)
}

func TestSplash(t *testing.T) {
	img, err := Splash(64, 64)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i]|img.Pix[i+1]|img.Pix[i+2] != 0 {
			lit++
		}
	}
	assert.NotZero(t, lit)
}

func TestShowSplash(t *testing.T) {
	r, _, m := newTestRenderer(t, 1)
	require.NoError(t, r.ShowSplash(context.Background(), 5*time.Millisecond))
	assert.Len(t, m.frames, 1)
	assert.NotZero(t, m.shows)
}

func TestCentredX(t *testing.T) {
	assert.Equal(t, 5, centredX(56, 64, 0))
	assert.Equal(t, 0, centredX(70, 64, 0))
	assert.Equal(t, 11, centredX(10, 20, 5))
}
