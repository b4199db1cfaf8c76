// Package data fetches the clock's weather, stock and news content in the
// background and hands the renderer consistent snapshots of it.
package data

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/fkcurrie/ledclock-golang/internal/types"
)

// WeatherSource fetches current weather
type WeatherSource interface {
	Fetch(ctx context.Context) (types.WeatherData, error)
}

// StockSource fetches index quotes
type StockSource interface {
	Fetch(ctx context.Context) (types.StockData, error)
}

// NewsSource fetches headlines
type NewsSource interface {
	Fetch(ctx context.Context) (types.NewsData, error)
}

// Options configures a Manager. A nil source disables that section, which
// then keeps showing its defaults.
type Options struct {
	Weather WeatherSource
	Stocks  StockSource
	News    NewsSource

	WeatherInterval time.Duration
	StocksInterval  time.Duration
	NewsInterval    time.Duration

	// CheckInterval is how often the loop looks for due fetches
	CheckInterval time.Duration
	// FetchSpacing is the minimum gap between two outbound fetches
	FetchSpacing time.Duration

	DefaultStocks types.StockData
}

// Manager runs the fetch loop and guards the cached results
type Manager struct {
	opts    Options
	clock   *TimeProvider
	limiter *rate.Limiter
	logger  *log.Logger
	now     func() time.Time

	mu          sync.RWMutex
	weather     *types.WeatherData
	stocks      *types.StockData
	news        *types.NewsData
	lastWeather time.Time
	lastStocks  time.Time
	lastNews    time.Time
	stocksBoot  bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager returns a stopped manager
func NewManager(opts Options, logger *log.Logger) *Manager {
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = 5 * time.Second
	}
	limit := rate.Inf
	if opts.FetchSpacing > 0 {
		limit = rate.Every(opts.FetchSpacing)
	}

	return &Manager{
		opts:    opts,
		clock:   NewTimeProvider(),
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.WithPrefix("data"),
		now:     time.Now,
	}
}

// Start launches the background loop. The first pass fetches everything.
func (m *Manager) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.loop(ctx)
	}()
	m.logger.Info("data manager started")
}

// Stop cancels the loop and waits for an in-flight fetch to return
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.logger.Info("data manager stopped")
}

func (m *Manager) loop(ctx context.Context) {
	ticker := time.NewTicker(m.opts.CheckInterval)
	defer ticker.Stop()

	for {
		m.Refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Refresh runs every fetch that is due
func (m *Manager) Refresh(ctx context.Context) {
	now := m.now()

	if m.opts.Weather != nil && m.weatherDue(now) {
		m.fetchWeather(ctx)
	}
	if m.opts.Stocks != nil && m.stocksDue(now) {
		m.fetchStocks(ctx)
	}
	if m.opts.News != nil && m.newsDue(now) {
		m.fetchNews(ctx)
	}
}

func (m *Manager) weatherDue(now time.Time) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return now.Sub(m.lastWeather) >= m.opts.WeatherInterval
}

// stocksDue fetches once at startup, then only during market hours unless
// there is still nothing cached.
func (m *Manager) stocksDue(now time.Time) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case !m.stocksBoot:
		return true
	case m.stocks == nil:
		return now.Sub(m.lastStocks) >= m.opts.StocksInterval
	default:
		return MarketHours(now) && now.Sub(m.lastStocks) >= m.opts.StocksInterval
	}
}

func (m *Manager) newsDue(now time.Time) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return now.Sub(m.lastNews) >= m.opts.NewsInterval
}

func (m *Manager) wait(ctx context.Context) bool {
	if err := m.limiter.Wait(ctx); err != nil {
		return false
	}
	return true
}

func (m *Manager) fetchWeather(ctx context.Context) {
	if !m.wait(ctx) {
		return
	}
	data, err := m.opts.Weather.Fetch(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastWeather = m.now()
	if err != nil {
		m.logger.Warn("weather update failed", "err", err)
		return
	}
	m.weather = &data
	m.logger.Info("weather updated", "now", data.Current, "high", data.High, "low", data.Low)
}

func (m *Manager) fetchStocks(ctx context.Context) {
	if !m.wait(ctx) {
		return
	}
	data, err := m.opts.Stocks.Fetch(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastStocks = m.now()
	m.stocksBoot = true
	if err != nil {
		m.logger.Warn("stock update failed", "err", err)
		return
	}
	m.stocks = &data
	m.logger.Info("stocks updated", "quotes", len(data.Quotes))
}

func (m *Manager) fetchNews(ctx context.Context) {
	if !m.wait(ctx) {
		return
	}
	data, err := m.opts.News.Fetch(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastNews = m.now()
	if err != nil {
		m.logger.Warn("news update failed", "err", err)
		return
	}
	m.news = &data
	m.logger.Info("news updated", "headlines", len(data.Headlines))
}

// Snapshot returns a copy of the latest data, falling back to defaults for
// anything not fetched yet. The time section is always read fresh.
func (m *Manager) Snapshot() types.Snapshot {
	snap := types.Snapshot{
		Time:    m.clock.Data(),
		Weather: DefaultWeather,
		Stocks:  m.opts.DefaultStocks,
		News:    types.NewsData{Headlines: DefaultHeadlines},
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.weather != nil {
		snap.Weather = *m.weather
	}
	if m.stocks != nil {
		snap.Stocks = *m.stocks
	}
	if m.news != nil {
		snap.News = *m.news
	}
	snap.Stocks.Quotes = slices.Clone(snap.Stocks.Quotes)
	snap.News.Headlines = slices.Clone(snap.News.Headlines)
	return snap
}

// ForceWeather makes the next pass refetch the weather
func (m *Manager) ForceWeather() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastWeather = time.Time{}
}

// ForceStocks makes the next pass refetch the stocks, market hours aside
func (m *Manager) ForceStocks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastStocks = time.Time{}
	m.stocksBoot = false
}

// ForceNews makes the next pass refetch the news
func (m *Manager) ForceNews() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastNews = time.Time{}
}
