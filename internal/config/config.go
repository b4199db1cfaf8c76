package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fkcurrie/ledclock-golang/internal/types"
	"github.com/fkcurrie/ledclock-golang/pkg/hub75"
)

// ErrInvalid is wrapped by every Validate failure
var ErrInvalid = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Display   types.DisplayConfig  `json:"display"`
	Headlines types.HeadlineConfig `json:"headlines"`
	News      types.NewsConfig     `json:"news"`
	Weather   types.WeatherConfig  `json:"weather"`
	Stocks    types.StocksConfig   `json:"stocks"`
	Hardware  types.HardwareConfig `json:"hardware"`
	LogLevel  string               `json:"log_level"`
	LockFile  string               `json:"lock_file"`
}

// LoadConfig loads the configuration from a file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	config.ApplyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides secrets from the environment
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LEDCLOCK_STOCK_API_KEY"); v != "" {
		c.Stocks.APIKey = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("LEDCLOCK_LATITUDE"), 64); err == nil {
		c.Weather.Latitude = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("LEDCLOCK_LONGITUDE"), 64); err == nil {
		c.Weather.Longitude = v
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	case c.Display.Brightness < 0 || c.Display.Brightness > 100:
		return fmt.Errorf("%w: brightness %d not in 0-100", ErrInvalid, c.Display.Brightness)
	case c.Display.RefreshMillis <= 0:
		return fmt.Errorf("%w: refresh_ms must be positive", ErrInvalid)
	case c.Display.ScrollEveryFrames <= 0:
		return fmt.Errorf("%w: scroll_every_frames must be positive", ErrInvalid)
	case c.Headlines.TrimDistance <= 0:
		return fmt.Errorf("%w: trim_distance must be positive", ErrInvalid)
	case c.Weather.Latitude < -90 || c.Weather.Latitude > 90:
		return fmt.Errorf("%w: latitude %v", ErrInvalid, c.Weather.Latitude)
	case c.Weather.Longitude < -180 || c.Weather.Longitude > 180:
		return fmt.Errorf("%w: longitude %v", ErrInvalid, c.Weather.Longitude)
	}
	for _, src := range c.News.Sources {
		if src.URL == "" {
			return fmt.Errorf("%w: news source %q has no url", ErrInvalid, src.Name)
		}
	}
	// Speeds below one are clamped by the scroller, not rejected.
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Display: types.DisplayConfig{
			Width:             64,
			Height:            64,
			Brightness:        100,
			RefreshMillis:     3,
			ScrollEveryFrames: 4,
			SplashMillis:      1500,
		},
		Headlines: types.HeadlineConfig{
			Separator:    " • ",
			ScrollSpeed:  1,
			TrimDistance: 1000,
			Placeholders: []string{
				"Loading news headlines...",
				"Stay tuned for breaking news",
				"News updates coming soon",
			},
		},
		News: types.NewsConfig{
			Sources: []types.FeedSource{
				{Name: "Fox News", URL: "https://feeds.foxnews.com/foxnews/latest"},
				{Name: "Breitbart", URL: "https://feeds.feedburner.com/breitbart"},
				{Name: "NY Post", URL: "https://nypost.com/news/feed/"},
				{Name: "The Blaze", URL: "https://www.theblaze.com/feeds/feed.rss"},
				{Name: "Washington Examiner", URL: "https://www.washingtonexaminer.com/feed"},
			},
			MaxHeadlines:    200,
			MaxLength:       200,
			PerSource:       50,
			IntervalSeconds: 1800,
		},
		Weather: types.WeatherConfig{
			Enabled:         true,
			IntervalSeconds: 900,
			Endpoint:        "https://api.open-meteo.com/v1/forecast",
		},
		Stocks: types.StocksConfig{
			Enabled:         true,
			IntervalSeconds: 360,
			Symbols: []types.IndexSymbol{
				{Symbol: "^DJI", Label: "DOW"},
				{Symbol: "^GSPC", Label: "S&P"},
			},
			Endpoint: "https://financialmodelingprep.com/stable/quote-short",
		},
		Hardware: types.HardwareConfig{
			Chip:      "gpiochip0",
			R1:        5,
			G1:        13,
			B1:        6,
			R2:        12,
			G2:        16,
			B2:        23,
			CLK:       17,
			OE:        4,
			LAT:       21,
			A:         22,
			B:         26,
			C:         27,
			D:         20,
			E:         24,
			Threshold: 128,
		},
		LogLevel: "info",
		LockFile: "/tmp/led_clock.pid",
	}
}

// PanelPins maps the hardware section onto the HUB75 driver's pin set
func (c *Config) PanelPins() hub75.Pins {
	hw := c.Hardware
	return hub75.Pins{
		Chip: hw.Chip,
		R1:   hw.R1,
		G1:   hw.G1,
		B1:   hw.B1,
		R2:   hw.R2,
		G2:   hw.G2,
		B2:   hw.B2,
		CLK:  hw.CLK,
		OE:   hw.OE,
		LAT:  hw.LAT,
		A:    hw.A,
		B:    hw.B,
		C:    hw.C,
		D:    hw.D,
		E:    hw.E,
	}
}

// PanelOptions returns the HUB75 driver geometry
func (c *Config) PanelOptions() hub75.Options {
	return hub75.Options{
		Width:      c.Display.Width,
		Height:     c.Display.Height,
		Threshold:  c.Hardware.Threshold,
		Brightness: c.Display.Brightness,
	}
}
