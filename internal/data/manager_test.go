package data

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkcurrie/ledclock-golang/internal/logging"
	"github.com/fkcurrie/ledclock-golang/internal/types"
)

type fakeSource[T any] struct {
	mu    sync.Mutex
	calls int
	data  T
	err   error
}

func (f *fakeSource[T]) Fetch(ctx context.Context) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.data, f.err
}

func (f *fakeSource[T]) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fixture struct {
	weather *fakeSource[types.WeatherData]
	stocks  *fakeSource[types.StockData]
	news    *fakeSource[types.NewsData]
	manager *Manager
	now     time.Time
}

// monday noon, inside market hours
var testNow = time.Date(2025, time.September, 29, 12, 0, 0, 0, time.Local)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		weather: &fakeSource[types.WeatherData]{data: types.WeatherData{Current: 50, High: 55, Low: 40}},
		stocks: &fakeSource[types.StockData]{data: types.StockData{Quotes: []types.Quote{
			{Symbol: "^DJI", Label: "DOW", Change: 12},
		}}},
		news: &fakeSource[types.NewsData]{data: types.NewsData{Headlines: []string{"first", "second"}}},
		now:  testNow,
	}
	f.manager = NewManager(Options{
		Weather:         f.weather,
		Stocks:          f.stocks,
		News:            f.news,
		WeatherInterval: 15 * time.Minute,
		StocksInterval:  6 * time.Minute,
		NewsInterval:    30 * time.Minute,
	}, logging.Discard())
	f.manager.now = func() time.Time { return f.now }
	f.manager.clock.now = func() time.Time { return f.now }
	return f
}

func TestSnapshotDefaults(t *testing.T) {
	m := NewManager(Options{
		DefaultStocks: types.StockData{Quotes: []types.Quote{{Label: "DOW"}}},
	}, logging.Discard())

	snap := m.Snapshot()
	assert.True(t, snap.Weather.Equal(DefaultWeather))
	assert.Equal(t, DefaultHeadlines, snap.News.Headlines)
	require.Len(t, snap.Stocks.Quotes, 1)
	assert.Equal(t, "DOW", snap.Stocks.Quotes[0].Label)
	assert.NotEmpty(t, snap.Time.Date)
}

func TestRefreshFetchesEverything(t *testing.T) {
	f := newFixture(t)
	f.manager.Refresh(context.Background())

	snap := f.manager.Snapshot()
	assert.Equal(t, 50, snap.Weather.Current)
	assert.Equal(t, []string{"first", "second"}, snap.News.Headlines)
	require.Len(t, snap.Stocks.Quotes, 1)
	assert.Equal(t, float64(12), snap.Stocks.Quotes[0].Change)
	assert.Equal(t, "12:00", snap.Time.Time)
}

func TestRefreshRespectsIntervals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.manager.Refresh(ctx)

	f.now = f.now.Add(7 * time.Minute)
	f.manager.Refresh(ctx)
	assert.Equal(t, 1, f.weather.Calls())
	assert.Equal(t, 2, f.stocks.Calls())
	assert.Equal(t, 1, f.news.Calls())

	f.now = f.now.Add(25 * time.Minute)
	f.manager.Refresh(ctx)
	assert.Equal(t, 2, f.weather.Calls())
	assert.Equal(t, 3, f.stocks.Calls())
	assert.Equal(t, 2, f.news.Calls())
}

func TestStocksOnlyDuringMarketHours(t *testing.T) {
	f := newFixture(t)
	// saturday: the startup fetch still happens
	f.now = time.Date(2025, time.September, 27, 12, 0, 0, 0, time.Local)
	ctx := context.Background()

	f.manager.Refresh(ctx)
	assert.Equal(t, 1, f.stocks.Calls())

	f.now = f.now.Add(time.Hour)
	f.manager.Refresh(ctx)
	assert.Equal(t, 1, f.stocks.Calls())

	f.manager.ForceStocks()
	f.manager.Refresh(ctx)
	assert.Equal(t, 2, f.stocks.Calls())
}

func TestStocksRetryUntilFirstSuccess(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2025, time.September, 27, 12, 0, 0, 0, time.Local)
	f.stocks.err = errors.New("down")
	ctx := context.Background()

	f.manager.Refresh(ctx)
	f.now = f.now.Add(10 * time.Minute)
	f.manager.Refresh(ctx)
	assert.Equal(t, 2, f.stocks.Calls())
	assert.Empty(t, f.manager.Snapshot().Stocks.Quotes)
}

func TestFailedFetchKeepsPreviousData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.manager.Refresh(ctx)

	f.weather.err = errors.New("timeout")
	f.news.err = errors.New("timeout")
	f.manager.ForceWeather()
	f.manager.ForceNews()
	f.manager.Refresh(ctx)

	assert.Equal(t, 2, f.weather.Calls())
	assert.Equal(t, 2, f.news.Calls())
	snap := f.manager.Snapshot()
	assert.Equal(t, 50, snap.Weather.Current)
	assert.Equal(t, []string{"first", "second"}, snap.News.Headlines)
}

func TestSnapshotIsACopy(t *testing.T) {
	f := newFixture(t)
	f.manager.Refresh(context.Background())

	snap := f.manager.Snapshot()
	snap.News.Headlines[0] = "changed"
	snap.Stocks.Quotes[0].Change = -1

	again := f.manager.Snapshot()
	assert.Equal(t, "first", again.News.Headlines[0])
	assert.Equal(t, float64(12), again.Stocks.Quotes[0].Change)
}

func TestStartStop(t *testing.T) {
	f := newFixture(t)
	f.manager.opts.CheckInterval = 10 * time.Millisecond

	f.manager.Start(context.Background())
	assert.Eventually(t, func() bool {
		return f.news.Calls() > 0 && f.weather.Calls() > 0
	}, time.Second, 5*time.Millisecond)
	f.manager.Stop()

	calls := f.news.Calls()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, f.news.Calls())
}
