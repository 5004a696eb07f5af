// Package logic contains the word clock's core timekeeping logic: button
// debounce and auto-repeat, local time edits, and the RTC synchronization
// policy. This package performs no GPIO or display I/O; the RTC is reached
// only through the rtc.Device interface so tests can script it.
package logic

import "github.com/PumpMagic/WordClock/internal/rtc"

// Millis is a monotonically increasing millisecond counter. All elapsed-time
// comparisons subtract two Millis values; unsigned arithmetic keeps the
// result correct across counter wraparound for any interval shorter than
// half the counter's range.
type Millis uint32

// elapsed returns how many milliseconds have passed since a recorded
// counter value, tolerating wraparound.
func elapsed(now, since Millis) Millis {
	return now - since
}

// ButtonID identifies one of the two adjustment buttons.
type ButtonID int

const (
	ButtonHour ButtonID = iota
	ButtonMinute
)

func (b ButtonID) String() string {
	switch b {
	case ButtonHour:
		return "hour"
	case ButtonMinute:
		return "minute"
	}
	return "unknown"
}

// EventType labels a state change worth reporting.
type EventType string

const (
	EventHourAdvance   EventType = "HOUR_ADVANCE"   // hour button edit applied
	EventMinuteAdvance EventType = "MINUTE_ADVANCE" // minute button edit applied
	EventRTCWrite      EventType = "RTC_WRITE"      // deferred edit pushed to the chip
	EventRTCSync       EventType = "RTC_SYNC"       // poll moved the displayed time
)

// Event records one state change and the canonical time after it.
type Event struct {
	Type EventType
	Time rtc.Time
}

// Input is one tick's worth of raw button samples.
type Input struct {
	Now           Millis
	HourPressed   bool // raw level, already inverted to logical pressed
	MinutePressed bool
}

// EventCounts tracks totals since startup for heartbeats and the status page.
type EventCounts struct {
	HourAdvances   int
	MinuteAdvances int
	RTCReads       int
	RTCWrites      int
	RTCErrors      int
}

// Config holds the core timing parameters, all in milliseconds.
type Config struct {
	// Debounce is how long a raw level must hold steady before it is
	// trusted.
	Debounce Millis

	// Repeat is the auto-repeat period while a button stays held.
	Repeat Millis

	// Poll is how often the RTC is re-read when no local edit is pending.
	Poll Millis

	// InactionDelay is how long after the last button edit the canonical
	// time is written back to the RTC. Every edit re-arms it, so a burst
	// of presses results in a single write.
	InactionDelay Millis
}

// DefaultConfig returns the reference timings.
func DefaultConfig() Config {
	return Config{
		Debounce:      50,
		Repeat:        1000,
		Poll:          5000,
		InactionDelay: 5000,
	}
}
