//go:build !linux

package display

import (
	"errors"

	"github.com/PumpMagic/WordClock/internal/words"
)

// RealDriver is not available on non-Linux platforms.
type RealDriver struct{}

// NewRealDriver returns an error on non-Linux platforms.
func NewRealDriver(pinData, pinClock, pinLatch, pinOE int) (*RealDriver, error) {
	return nil, errors.New("display: not supported on this platform (requires Linux)")
}

// Render is not implemented on non-Linux platforms.
func (d *RealDriver) Render(words.Set) error {
	return errors.New("display: not supported")
}

// SetBrightness is not implemented on non-Linux platforms.
func (d *RealDriver) SetBrightness(float64) error {
	return errors.New("display: not supported")
}

// Close is not implemented on non-Linux platforms.
func (d *RealDriver) Close() error {
	return nil
}
