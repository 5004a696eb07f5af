//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads the buttons from actual hardware using the Linux GPIO
// character device.
type RealReader struct {
	chip      *gpiocdev.Chip
	hourPin   *gpiocdev.Line
	minutePin *gpiocdev.Line
}

// NewRealReader creates a button reader for actual Raspberry Pi hardware.
// Both pins are configured as inputs with pull-ups; a pressed button pulls
// the line low.
func NewRealReader(pinHour, pinMinute int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	hourLine, err := chip.RequestLine(pinHour, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request hour pin %d: %w", pinHour, err)
	}

	minuteLine, err := chip.RequestLine(pinMinute, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		hourLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request minute pin %d: %w", pinMinute, err)
	}

	return &RealReader{
		chip:      chip,
		hourPin:   hourLine,
		minutePin: minuteLine,
	}, nil
}

// Read returns the logical pressed state of both buttons.
// Inverts raw GPIO: raw low (0) = pressed, raw high (1) = released.
func (r *RealReader) Read() (bool, bool, error) {
	hourRaw, err := r.hourPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read hour pin: %w", err)
	}

	minuteRaw, err := r.minutePin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read minute pin: %w", err)
	}

	return hourRaw == 0, minuteRaw == 0, nil
}

// Close releases GPIO resources.
func (r *RealReader) Close() error {
	var errs []error

	if r.hourPin != nil {
		if err := r.hourPin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close hour pin: %w", err))
		}
	}
	if r.minutePin != nil {
		if err := r.minutePin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close minute pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
