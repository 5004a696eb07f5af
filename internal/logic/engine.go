package logic

import (
	"fmt"

	"github.com/PumpMagic/WordClock/internal/rtc"
	"github.com/PumpMagic/WordClock/internal/words"
)

// Engine owns the canonical time and advances the whole core once per tick:
// both button machines first, then the sync scheduler. The canonical time is
// mutated only here; callers on a single goroutine need no locking.
type Engine struct {
	cfg Config
	dev rtc.Device

	current   rtc.Time
	hourBtn   *button
	minuteBtn *button

	// Deferred write-back state. pendingWrite is set by an edit and
	// cleared only by a successful RTC write, so a stale poll can never
	// overwrite an unsaved edit.
	pendingWrite bool
	writeArmedAt Millis // write happens InactionDelay after this
	lastEdit     Millis // counter value when Second was last reset to 0

	lastRead Millis

	counts EventCounts
}

// Result is what one tick produced. When Render is set, Words holds the face
// to display.
type Result struct {
	Render bool
	Words  words.Set
	Events []Event
}

// NewEngine initializes the canonical time from the chip. If the chip lost
// backup power its time is untrustworthy, so it is first reset to the fixed
// epoch. Exactly one read establishes the canonical time before the first
// render; the poll timer is seeded to now so the next read waits a full
// interval.
func NewEngine(dev rtc.Device, cfg Config, now Millis) (*Engine, error) {
	e := &Engine{
		cfg:       cfg,
		dev:       dev,
		hourBtn:   newButton(ButtonHour),
		minuteBtn: newButton(ButtonMinute),
		lastRead:  now,
	}

	lost, err := dev.LostPower()
	if err != nil {
		return nil, fmt.Errorf("check power-loss flag: %w", err)
	}
	if lost {
		if err := dev.WriteTime(rtc.Epoch); err != nil {
			return nil, fmt.Errorf("reset clock after power loss: %w", err)
		}
		e.counts.RTCWrites++
		rtcOps.WithLabelValues("write").Inc()
	}

	t, err := dev.ReadTime()
	if err != nil {
		return nil, fmt.Errorf("initial clock read: %w", err)
	}
	e.current = t
	e.counts.RTCReads++
	rtcOps.WithLabelValues("read").Inc()
	return e, nil
}

// Tick runs one iteration of the core loop. Button edits are applied before
// the sync decision, so a press on the same tick as a due write is included
// in it (and, because edits re-arm the delay, actually defers it). A non-nil
// error means an RTC transfer failed; the canonical time keeps its last
// value and the caller should log and carry on.
func (e *Engine) Tick(in Input) (Result, error) {
	now := in.Now
	var res Result
	ticks.Inc()

	if e.hourBtn.step(now, in.HourPressed, e.cfg) {
		e.current.Hour = (e.current.Hour + 1) % 24
		e.counts.HourAdvances++
		e.edited(now, &res, EventHourAdvance)
	}
	if e.minuteBtn.step(now, in.MinutePressed, e.cfg) {
		e.current.Minute++
		if e.current.Minute == 60 {
			e.current.Minute = 0
			e.current.Hour = (e.current.Hour + 1) % 24
		}
		e.counts.MinuteAdvances++
		e.edited(now, &res, EventMinuteAdvance)
	}

	var err error
	switch {
	case e.pendingWrite:
		// Rule 1: push the local edit to the chip once the user has gone
		// quiet, and never mid-hold.
		if elapsed(now, e.writeArmedAt) >= e.cfg.InactionDelay &&
			!e.hourBtn.active() && !e.minuteBtn.active() {
			err = e.writeBack(now, &res)
		}
	case elapsed(now, e.lastRead) >= e.cfg.Poll:
		// Rule 2: periodic re-read. Unreachable while an edit is pending,
		// so a stale chip time never clobbers it.
		err = e.poll(now, &res)
	}

	if res.Render {
		res.Words = words.Encode(e.current.Hour, e.current.Minute)
		renders.Inc()
	}
	return res, err
}

// edited applies the bookkeeping shared by both advance events.
func (e *Engine) edited(now Millis, res *Result, typ EventType) {
	e.current.Second = 0
	e.pendingWrite = true
	e.writeArmedAt = now
	e.lastEdit = now
	res.Render = true
	res.Events = append(res.Events, Event{Type: typ, Time: e.current})
	buttonEvents.WithLabelValues(typ.button()).Inc()
}

func (e *Engine) writeBack(now Millis, res *Result) error {
	t := e.current
	// Seconds were zeroed at the last edit; write back what has actually
	// elapsed since then.
	sec := int(elapsed(now, e.lastEdit) / 1000)
	if sec > 59 {
		sec = 59
	}
	t.Second = sec

	if err := e.dev.WriteTime(t); err != nil {
		e.counts.RTCErrors++
		rtcErrors.Inc()
		// Leave pendingWrite set and back off a full delay before retrying.
		e.writeArmedAt = now
		return fmt.Errorf("write time to rtc: %w", err)
	}
	e.current = t
	e.pendingWrite = false
	e.counts.RTCWrites++
	rtcOps.WithLabelValues("write").Inc()
	res.Events = append(res.Events, Event{Type: EventRTCWrite, Time: e.current})
	return nil
}

func (e *Engine) poll(now Millis, res *Result) error {
	// Advance the poll timer even on failure so a dead chip is retried
	// once per interval, not on every tick.
	e.lastRead = now

	t, err := e.dev.ReadTime()
	if err != nil {
		e.counts.RTCErrors++
		rtcErrors.Inc()
		return fmt.Errorf("read time from rtc: %w", err)
	}
	moved := t.Hour != e.current.Hour || t.Minute != e.current.Minute
	e.current = t
	e.counts.RTCReads++
	rtcOps.WithLabelValues("read").Inc()
	res.Render = true
	if moved {
		res.Events = append(res.Events, Event{Type: EventRTCSync, Time: e.current})
	}
	return nil
}

func (t EventType) button() string {
	if t == EventHourAdvance {
		return "hour"
	}
	return "minute"
}

// Current returns the canonical time.
func (e *Engine) Current() rtc.Time {
	return e.current
}

// Words returns the face for the canonical time.
func (e *Engine) Words() words.Set {
	return words.Encode(e.current.Hour, e.current.Minute)
}

// PendingWrite reports whether a local edit has not yet reached the chip.
func (e *Engine) PendingWrite() bool {
	return e.pendingWrite
}

// Counts returns the event totals since startup.
func (e *Engine) Counts() EventCounts {
	return e.counts
}
