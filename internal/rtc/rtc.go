// Package rtc provides access to the battery-backed real-time clock.
// The real implementation drives a DS3231 over I2C; the fake allows testing
// without hardware.
package rtc

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates the chip is absent or not responding. There is no
// in-package recovery: callers keep the last known time and carry on.
var ErrUnavailable = errors.New("rtc unavailable")

// Time is a time of day as stored in the chip.
type Time struct {
	Hour   int // 0-23
	Minute int // 0-59
	Second int // 0-59
}

// Epoch is written to the chip when it reports backup-power loss. The driver
// pairs it with the fixed date 2017-01-01.
var Epoch = Time{Hour: 0, Minute: 0, Second: 0}

// Valid reports whether every field is in range.
func (t Time) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 &&
		t.Minute >= 0 && t.Minute < 60 &&
		t.Second >= 0 && t.Second < 60
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Device is the clock-source boundary the core logic depends on.
type Device interface {
	// ReadTime returns the chip's current time.
	ReadTime() (Time, error)

	// WriteTime sets the chip's time. Clears any power-loss condition.
	WriteTime(Time) error

	// LostPower reports whether the chip lost backup power since the last
	// WriteTime, meaning its time cannot be trusted.
	LostPower() (bool, error)
}
