package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 64, cfg.Display.Width)
	assert.Equal(t, " • ", cfg.Headlines.Separator)
	assert.Equal(t, "DOW", cfg.Stocks.Symbols[0].Label)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero width", mutate: func(c *Config) { c.Display.Width = 0 }},
		{name: "brightness", mutate: func(c *Config) { c.Display.Brightness = 101 }},
		{name: "refresh", mutate: func(c *Config) { c.Display.RefreshMillis = 0 }},
		{name: "scroll frames", mutate: func(c *Config) { c.Display.ScrollEveryFrames = -1 }},
		{name: "trim distance", mutate: func(c *Config) { c.Headlines.TrimDistance = 0 }},
		{name: "latitude", mutate: func(c *Config) { c.Weather.Latitude = 91 }},
		{name: "longitude", mutate: func(c *Config) { c.Weather.Longitude = -181 }},
		{name: "feed url", mutate: func(c *Config) { c.News.Sources[0].URL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"display": {"width": 32, "height": 16, "brightness": 50, "refresh_ms": 10, "scroll_every_frames": 2},
		"headlines": {"scroll_speed": 2},
		"log_level": "debug"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Display.Width)
	assert.Equal(t, 2, cfg.Headlines.ScrollSpeed)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched sections keep defaults
	assert.Equal(t, 1000, cfg.Headlines.TrimDistance)
	assert.NotEmpty(t, cfg.News.Sources)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, os.IsNotExist(err))

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)

	path = filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"display": {"width": -1}}`), 0o644))
	_, err = LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LEDCLOCK_STOCK_API_KEY", "secret")
	t.Setenv("LEDCLOCK_LATITUDE", "40.5")
	t.Setenv("LEDCLOCK_LONGITUDE", "-74.25")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "secret", cfg.Stocks.APIKey)
	assert.Equal(t, 40.5, cfg.Weather.Latitude)
	assert.Equal(t, -74.25, cfg.Weather.Longitude)
}

func TestPanelPins(t *testing.T) {
	cfg := DefaultConfig()
	pins := cfg.PanelPins()
	assert.Equal(t, "gpiochip0", pins.Chip)
	assert.Equal(t, 5, pins.R1)
	assert.Equal(t, 24, pins.E)

	opts := cfg.PanelOptions()
	assert.Equal(t, 64, opts.Width)
	assert.Equal(t, uint8(128), opts.Threshold)
}
