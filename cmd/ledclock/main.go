package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font/basicfont"

	"github.com/fkcurrie/ledclock-golang/internal/config"
	"github.com/fkcurrie/ledclock-golang/internal/data"
	"github.com/fkcurrie/ledclock-golang/internal/display"
	"github.com/fkcurrie/ledclock-golang/internal/font"
	"github.com/fkcurrie/ledclock-golang/internal/headlines"
	"github.com/fkcurrie/ledclock-golang/internal/lock"
	"github.com/fkcurrie/ledclock-golang/internal/logging"
	"github.com/fkcurrie/ledclock-golang/internal/types"
	"github.com/fkcurrie/ledclock-golang/pkg/hub75"
)

var (
	configPath = flag.String("config", "config.json", "Path to the JSON config file")
	backend    = flag.String("backend", "hub75", "Output backend: hub75 or null")
	logLevel   = flag.String("log-level", "", "Override the configured log level")
)

func main() {
	flag.Parse()

	cfg, cfgErr := config.LoadConfig(*configPath)
	if errors.Is(cfgErr, os.ErrNotExist) {
		cfg = config.DefaultConfig()
		cfg.ApplyEnv()
	} else if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", cfgErr)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	logger, err := logging.New(level, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfgErr != nil {
		logger.Warn("config file not found, using defaults", "path", *configPath)
	}

	if err := run(cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("led clock stopped", "err", err)
	}
	logger.Info("led clock stopped")
}

func run(cfg *config.Config, logger *log.Logger) error {
	lk, err := lock.Acquire(cfg.LockFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := lk.Release(); err != nil {
			logger.Warn("failed to release lock", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	matrix, err := openMatrix(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := matrix.Close(); err != nil {
			logger.Warn("failed to close matrix", "err", err)
		}
	}()

	layout := display.DefaultLayout()
	scroller := headlines.New(font.Builtin(), headlines.Options{
		ViewportWidth: cfg.Display.Width,
		Height:        layout.HeadlinesHeight,
		Separator:     cfg.Headlines.Separator,
		Speed:         cfg.Headlines.ScrollSpeed,
		TrimDistance:  cfg.Headlines.TrimDistance,
		Placeholders:  cfg.Headlines.Placeholders,
	}, logger)

	renderer := display.NewRenderer(matrix, scroller, font.Tiny(), font.NewFaceRasterizer(basicfont.Face7x13), display.Options{
		Width:       cfg.Display.Width,
		Height:      cfg.Display.Height,
		Refresh:     time.Duration(cfg.Display.RefreshMillis) * time.Millisecond,
		ScrollEvery: cfg.Display.ScrollEveryFrames,
		Layout:      layout,
		Palette:     display.DefaultPalette(),
	}, logger)

	manager := data.NewManager(managerOptions(cfg, logger), logger)
	manager.Start(ctx)
	defer manager.Stop()

	if cfg.Display.SplashMillis > 0 {
		if err := renderer.ShowSplash(ctx, time.Duration(cfg.Display.SplashMillis)*time.Millisecond); err != nil {
			logger.Warn("splash failed", "err", err)
		}
	}

	go resetOnHangup(ctx, manager, renderer, logger)

	logger.Info("led clock running", "backend", *backend, "headlines", scroller.Info())
	return renderer.Run(ctx, manager.Snapshot)
}

// resetOnHangup refetches everything and rebuilds the display on SIGHUP
func resetOnHangup(ctx context.Context, manager *data.Manager, renderer *display.Renderer, logger *log.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			logger.Info("hangup received, resetting")
			manager.ForceWeather()
			manager.ForceStocks()
			manager.ForceNews()
			renderer.RequestReset()
		}
	}
}

func openMatrix(cfg *config.Config, logger *log.Logger) (types.Matrix, error) {
	switch *backend {
	case "null":
		return hub75.NewNull(), nil
	case "hub75":
		return hub75.Open(cfg.PanelPins(), cfg.PanelOptions(), logger)
	default:
		return nil, fmt.Errorf("unknown backend %q", *backend)
	}
}

// managerOptions wires only the enabled providers; a nil source keeps its
// section on defaults.
func managerOptions(cfg *config.Config, logger *log.Logger) data.Options {
	client := data.NewHTTPClient()
	seconds := func(n int) time.Duration { return time.Duration(n) * time.Second }

	opts := data.Options{
		News:            data.NewNewsProvider(client, cfg.News, logger.WithPrefix("news")),
		NewsInterval:    seconds(cfg.News.IntervalSeconds),
		WeatherInterval: seconds(cfg.Weather.IntervalSeconds),
		StocksInterval:  seconds(cfg.Stocks.IntervalSeconds),
		FetchSpacing:    2 * time.Second,
	}

	if cfg.Weather.Enabled {
		opts.Weather = data.NewWeatherProvider(client, cfg.Weather.Endpoint, cfg.Weather.Latitude, cfg.Weather.Longitude)
	}

	stocks := data.NewStockProvider(client, cfg.Stocks.Endpoint, cfg.Stocks.APIKey, cfg.Stocks.Symbols, logger.WithPrefix("stocks"))
	opts.DefaultStocks = stocks.DefaultStocks()
	switch {
	case !cfg.Stocks.Enabled:
	case cfg.Stocks.APIKey == "":
		logger.Warn("no stock API key configured, quotes stay at zero")
	default:
		opts.Stocks = stocks
	}
	return opts
}
