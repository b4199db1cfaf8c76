// Package hub75 drives HUB75 RGB LED panels from Raspberry Pi GPIO.
//
// The panel has no memory of its own: every Show clocks each row pair out
// and lights it briefly, so the caller must keep calling Show to keep an
// image visible. Colour depth is one bit per channel.
package hub75

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Options describes the panel geometry and timing
type Options struct {
	Width  int
	Height int
	// Threshold is the 8-bit channel value at which a LED turns on
	Threshold uint8
	// Brightness scales how long each row stays lit, 0 to 100
	Brightness int
	// RowHold is how long a row stays lit at full brightness
	RowHold time.Duration
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 64
	}
	if o.Height <= 0 {
		o.Height = 64
	}
	if o.Threshold == 0 {
		o.Threshold = 128
	}
	if o.Brightness <= 0 || o.Brightness > 100 {
		o.Brightness = 100
	}
	if o.RowHold <= 0 {
		o.RowHold = 50 * time.Microsecond
	}
	return o
}

// Panel is a HUB75 panel behind GPIO lines. It implements types.Matrix.
type Panel struct {
	mu     sync.Mutex
	bus    bus
	logger *log.Logger

	width     int
	rows      int
	threshold uint8
	hold      time.Duration

	frame  Frame
	values []int
}

// Open requests the GPIO lines in pins and returns a blank panel
func Open(pins Pins, opts Options, logger *log.Logger) (*Panel, error) {
	b, err := openGPIOBus(pins)
	if err != nil {
		return nil, err
	}
	p := newPanel(b, opts, logger)
	p.logger.Info("opened HUB75 panel", "chip", pins.Chip, "width", p.width, "rows", p.rows)
	return p, nil
}

func newPanel(b bus, opts Options, logger *log.Logger) *Panel {
	opts = opts.withDefaults()
	rows := opts.Height / 2
	return &Panel{
		bus:       b,
		logger:    logger.WithPrefix("hub75"),
		width:     opts.Width,
		rows:      rows,
		threshold: opts.Threshold,
		hold:      opts.RowHold * time.Duration(opts.Brightness) / 100,
		frame:     NewFrame(rows, opts.Width),
		values:    make([]int, BytesPerColumn),
	}
}

// SetImage encodes img as the frame for the following Show calls
func (p *Panel) SetImage(img image.Image) error {
	frame := EncodeFrame(img, p.rows, p.width, p.threshold)
	p.mu.Lock()
	p.frame = frame
	p.mu.Unlock()
	return nil
}

// Clear blanks the stored frame
func (p *Panel) Clear() error {
	p.mu.Lock()
	p.frame = NewFrame(p.rows, p.width)
	p.mu.Unlock()
	return nil
}

// Show scans the stored frame out once
func (p *Panel) Show() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for r, row := range p.frame {
		if err := p.writeRow(r, row); err != nil {
			return fmt.Errorf("row %d: %w", r, err)
		}
		time.Sleep(p.hold)
	}
	return p.bus.enable(false)
}

func (p *Panel) writeRow(r int, row []byte) error {
	// disable output while the shift registers change
	if err := p.bus.enable(false); err != nil {
		return err
	}
	if err := p.bus.address(r); err != nil {
		return err
	}
	for x := 0; x < p.width; x++ {
		idx := x * BytesPerColumn
		for i := range p.values {
			p.values[i] = int(row[idx+i])
		}
		if err := p.bus.data(p.values); err != nil {
			return err
		}
		if err := p.bus.clock(); err != nil {
			return err
		}
	}
	if err := p.bus.latch(); err != nil {
		return err
	}
	return p.bus.enable(true)
}

// Close blanks the panel and releases the lines
func (p *Panel) Close() error {
	if err := p.Clear(); err != nil {
		return err
	}
	if err := p.Show(); err != nil {
		p.logger.Warn("failed to blank panel", "err", err)
	}
	return p.bus.Close()
}
