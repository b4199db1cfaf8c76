package hub75

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Pins is the BCM numbering of every HUB75 signal
type Pins struct {
	Chip string

	R1, G1, B1 int
	R2, G2, B2 int

	CLK int
	OE  int
	LAT int

	A, B, C, D, E int
}

// AdafruitBonnet is the Adafruit RGB Matrix Bonnet pin map
var AdafruitBonnet = Pins{
	Chip: "gpiochip0",
	R1:   5,
	G1:   13,
	B1:   6,
	R2:   12,
	G2:   16,
	B2:   23,
	CLK:  17,
	OE:   4,
	LAT:  21,
	A:    22,
	B:    26,
	C:    27,
	D:    20,
	E:    24,
}

// bus drives the panel signals
type bus interface {
	// data sets the six colour lines
	data(values []int) error
	// address selects the row pair being driven
	address(row int) error
	clock() error
	latch() error
	// enable turns the row drivers on or off; OE is active low
	enable(on bool) error
	Close() error
}

// gpioBus drives the panel through GPIO character-device lines
type gpioBus struct {
	colour *gpiocdev.Lines
	addr   *gpiocdev.Lines
	clk    *gpiocdev.Line
	oe     *gpiocdev.Line
	lat    *gpiocdev.Line

	addrValues []int
}

func openGPIOBus(p Pins) (*gpioBus, error) {
	b := &gpioBus{addrValues: make([]int, 5)}
	var err error

	b.colour, err = gpiocdev.RequestLines(p.Chip, []int{p.R1, p.G1, p.B1, p.R2, p.G2, p.B2},
		gpiocdev.AsOutput(0, 0, 0, 0, 0, 0), gpiocdev.WithConsumer("ledclock"))
	if err != nil {
		return nil, fmt.Errorf("failed to request colour lines: %w", err)
	}
	b.addr, err = gpiocdev.RequestLines(p.Chip, []int{p.A, p.B, p.C, p.D, p.E},
		gpiocdev.AsOutput(0, 0, 0, 0, 0), gpiocdev.WithConsumer("ledclock"))
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to request address lines: %w", err)
	}
	if b.clk, err = gpiocdev.RequestLine(p.Chip, p.CLK, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("ledclock")); err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to request CLK line %d: %w", p.CLK, err)
	}
	// start with the output disabled
	if b.oe, err = gpiocdev.RequestLine(p.Chip, p.OE, gpiocdev.AsOutput(1), gpiocdev.WithConsumer("ledclock")); err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to request OE line %d: %w", p.OE, err)
	}
	if b.lat, err = gpiocdev.RequestLine(p.Chip, p.LAT, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("ledclock")); err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to request LAT line %d: %w", p.LAT, err)
	}
	return b, nil
}

func (b *gpioBus) data(values []int) error {
	return b.colour.SetValues(values)
}

func (b *gpioBus) address(row int) error {
	for i := range b.addrValues {
		b.addrValues[i] = (row >> i) & 1
	}
	return b.addr.SetValues(b.addrValues)
}

func (b *gpioBus) clock() error {
	if err := b.clk.SetValue(1); err != nil {
		return err
	}
	return b.clk.SetValue(0)
}

func (b *gpioBus) latch() error {
	if err := b.lat.SetValue(1); err != nil {
		return err
	}
	return b.lat.SetValue(0)
}

func (b *gpioBus) enable(on bool) error {
	if on {
		return b.oe.SetValue(0)
	}
	return b.oe.SetValue(1)
}

// Close releases every requested line
func (b *gpioBus) Close() error {
	var errs []error
	if b.colour != nil {
		errs = append(errs, b.colour.Close())
	}
	if b.addr != nil {
		errs = append(errs, b.addr.Close())
	}
	for _, l := range []*gpiocdev.Line{b.clk, b.oe, b.lat} {
		if l != nil {
			errs = append(errs, l.Close())
		}
	}
	return errors.Join(errs...)
}
