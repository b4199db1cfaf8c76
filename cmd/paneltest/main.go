// Command paneltest cycles solid colours and a checkerboard on the panel to
// check the HUB75 wiring without any network or clock code involved.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fkcurrie/ledclock-golang/internal/config"
	"github.com/fkcurrie/ledclock-golang/internal/logging"
	"github.com/fkcurrie/ledclock-golang/pkg/hub75"
)

var (
	configPath = flag.String("config", "config.json", "Path to the JSON config file")
	interval   = flag.Duration("interval", time.Second, "Time each pattern stays up")
	cell       = flag.Int("cell", 4, "Checkerboard cell size in pixels")
)

func main() {
	flag.Parse()

	logger, _ := logging.New("info", os.Stderr)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Warn("using default config", "path", *configPath, "err", err)
		cfg = config.DefaultConfig()
	}

	panel, err := hub75.Open(cfg.PanelPins(), cfg.PanelOptions(), logger)
	if err != nil {
		logger.Fatal("failed to open panel", "err", err)
	}
	defer panel.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cycle(ctx, panel, cfg.Display.Width, cfg.Display.Height); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("pattern loop failed", "err", err)
		return
	}
	logger.Info("panel test stopped")
}

// cycle keeps refreshing the panel, moving to the next pattern every interval
func cycle(ctx context.Context, panel *hub75.Panel, width, height int) error {
	next := time.NewTicker(*interval)
	defer next.Stop()

	n := 0
	if err := panel.SetImage(hub75.TestPattern(width, height, n, *cell)); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-next.C:
			n++
			if err := panel.SetImage(hub75.TestPattern(width, height, n, *cell)); err != nil {
				return err
			}
		default:
			if err := panel.Show(); err != nil {
				return err
			}
		}
	}
}
