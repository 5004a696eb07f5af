//go:build linux

package display

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/PumpMagic/WordClock/internal/words"
)

// pwmPeriod is the software-PWM frame for the output-enable line. 2 ms gives
// a 500 Hz refresh, comfortably above flicker.
const pwmPeriod = 2 * time.Millisecond

// RealDriver drives the shift-register chain on actual hardware.
type RealDriver struct {
	chip  *gpiocdev.Chip
	data  *gpiocdev.Line
	clock *gpiocdev.Line
	latch *gpiocdev.Line
	oe    *gpiocdev.Line

	mu         sync.Mutex
	brightness float64
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewRealDriver requests the four shift-register control lines and starts
// the brightness PWM at full intensity.
func NewRealDriver(pinData, pinClock, pinLatch, pinOE int) (*RealDriver, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	d := &RealDriver{
		chip:       chip,
		brightness: 1.0,
		done:       make(chan struct{}),
	}

	lines := []struct {
		pin  int
		name string
		dst  **gpiocdev.Line
	}{
		{pinData, "data", &d.data},
		{pinClock, "clock", &d.clock},
		{pinLatch, "latch", &d.latch},
		{pinOE, "output-enable", &d.oe},
	}
	for _, l := range lines {
		line, err := chip.RequestLine(l.pin, gpiocdev.AsOutput(0))
		if err != nil {
			d.closeLines()
			return nil, fmt.Errorf("request %s pin %d: %w", l.name, l.pin, err)
		}
		*l.dst = line
	}

	d.wg.Add(1)
	go d.pwmLoop()
	return d, nil
}

// Render shifts the 24-bit frame out MSB-first and pulses the latch so all
// outputs change at once.
func (d *RealDriver) Render(s words.Set) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	f := frame(s)
	for i := registerBits - 1; i >= 0; i-- {
		bit := 0
		if f&(1<<uint(i)) != 0 {
			bit = 1
		}
		if err := d.data.SetValue(bit); err != nil {
			return fmt.Errorf("set data line: %w", err)
		}
		if err := d.pulse(d.clock); err != nil {
			return fmt.Errorf("clock bit %d: %w", i, err)
		}
	}
	if err := d.pulse(d.latch); err != nil {
		return fmt.Errorf("latch frame: %w", err)
	}
	return nil
}

func (d *RealDriver) pulse(line *gpiocdev.Line) error {
	if err := line.SetValue(1); err != nil {
		return err
	}
	return line.SetValue(0)
}

// SetBrightness changes the PWM duty cycle on the output-enable line.
func (d *RealDriver) SetBrightness(b float64) error {
	if b < 0 || b > 1 {
		return fmt.Errorf("brightness %v out of range [0, 1]", b)
	}
	d.mu.Lock()
	d.brightness = b
	d.mu.Unlock()
	return nil
}

// pwmLoop chops the active-low output-enable line to dim the LEDs. The
// registers keep their state; only the enable is modulated.
func (d *RealDriver) pwmLoop() {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		default:
		}

		d.mu.Lock()
		b := d.brightness
		d.mu.Unlock()

		on := time.Duration(b * float64(pwmPeriod))
		switch {
		case on >= pwmPeriod:
			d.oe.SetValue(0) // enabled
			time.Sleep(pwmPeriod)
		case on <= 0:
			d.oe.SetValue(1) // disabled
			time.Sleep(pwmPeriod)
		default:
			d.oe.SetValue(0)
			time.Sleep(on)
			d.oe.SetValue(1)
			time.Sleep(pwmPeriod - on)
		}
	}
}

// Close blanks the face, stops the PWM and releases GPIO resources.
func (d *RealDriver) Close() error {
	d.Render(0)
	close(d.done)
	d.wg.Wait()
	d.oe.SetValue(1)
	return d.closeLines()
}

func (d *RealDriver) closeLines() error {
	var errs []error
	for _, line := range []*gpiocdev.Line{d.data, d.clock, d.latch, d.oe} {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if d.chip != nil {
		if err := d.chip.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
