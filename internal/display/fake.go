package display

import "github.com/PumpMagic/WordClock/internal/words"

// FakeDriver records renders for test assertions.
type FakeDriver struct {
	// Renders contains every set passed to Render, in order.
	Renders []words.Set

	// Brightness holds the last value passed to SetBrightness.
	Brightness float64

	// RenderError, if set, will be returned by Render.
	RenderError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeDriver creates a FakeDriver.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{Brightness: 1.0}
}

// Render records the set.
func (f *FakeDriver) Render(s words.Set) error {
	if f.RenderError != nil {
		return f.RenderError
	}
	f.Renders = append(f.Renders, s)
	return nil
}

// Last returns the most recent render, or false if none happened.
func (f *FakeDriver) Last() (words.Set, bool) {
	if len(f.Renders) == 0 {
		return 0, false
	}
	return f.Renders[len(f.Renders)-1], true
}

// SetBrightness records the brightness.
func (f *FakeDriver) SetBrightness(b float64) error {
	f.Brightness = b
	return nil
}

// Close marks the driver as closed.
func (f *FakeDriver) Close() error {
	f.Closed = true
	return nil
}
