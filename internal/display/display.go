// Package display drives the word clock's LED matrix. The face's words are
// lit through a chain of three 74HC595 shift registers; the real driver
// bit-bangs them over the Linux GPIO character device. The fake records
// renders for tests.
package display

import (
	"time"

	"github.com/PumpMagic/WordClock/internal/words"
)

// Driver renders a set of lit words. Render is assumed infallible at the
// logical level; errors are hardware transfer failures only.
type Driver interface {
	// Render lights exactly the given words.
	Render(words.Set) error

	// SetBrightness sets the backlight intensity, 0.0 (off) to 1.0 (full).
	SetBrightness(float64) error

	// Close blanks the display and releases GPIO resources.
	Close() error
}

// Default pin assignments for the shift-register chain (BCM numbering).
const (
	DefaultPinData  = 17
	DefaultPinClock = 27
	DefaultPinLatch = 22
	DefaultPinOE    = 24 // output enable, active low; PWMed for brightness
)

// registerBits is how many outputs the chain has.
const registerBits = 24

// wordBit maps each word to its output position on the chain. The wiring
// follows the face layout top-left to bottom-right.
var wordBit = map[words.Word]uint{
	words.Quarter: 0,
	words.Twenty:  1,
	words.FiveMin: 2,
	words.Half:    3,
	words.TenMin:  4,
	words.Minutes: 5,
	words.Past:    6,
	words.To:      7,
	words.One:     8,
	words.Two:     9,
	words.Three:   10,
	words.Four:    11,
	words.Five:    12,
	words.Six:     13,
	words.Seven:   14,
	words.Eight:   15,
	words.Nine:    16,
	words.Ten:     17,
	words.Eleven:  18,
	words.Twelve:  19,
	words.Oclock:  20,
}

// frame serializes a word set into the 24-bit pattern shifted out to the
// registers, bit 0 first on the wire after the MSB-first shift.
func frame(s words.Set) uint32 {
	var f uint32
	for _, w := range words.All() {
		if s.Has(w) {
			f |= 1 << wordBit[w]
		}
	}
	return f
}

// SelfTest walks every word on the face in reading order, lights the whole
// frame at once, then blanks it. Run at startup so a dead LED or a wiring
// fault shows up before the clock settles into normal display.
func SelfTest(d Driver, step time.Duration) error {
	var all words.Set
	for _, w := range words.All() {
		all |= words.Of(w)
		if err := d.Render(words.Of(w)); err != nil {
			return err
		}
		time.Sleep(step)
	}
	if err := d.Render(all); err != nil {
		return err
	}
	time.Sleep(step)
	return d.Render(0)
}
