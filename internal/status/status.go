// Package status provides a thread-safe status tracker for the word clock
// daemon. It is read by HTTP handlers and serialized into MQTT lifecycle
// payloads.
package status

import (
	"sync"
	"time"

	"github.com/PumpMagic/WordClock/internal/logic"
	"github.com/PumpMagic/WordClock/internal/rtc"
	"github.com/PumpMagic/WordClock/internal/words"
)

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	DebounceMs  int64
	RepeatMs    int64
	PollMs      int64
	InactionMs  int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	I2CBus      string
	Brightness  float64
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Time          rtc.Time
	Face          words.Set
	PendingWrite  bool
	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the displayed time, lit words, pending-write flag and event
// counts. Called from the run loop on every tick.
func (t *Tracker) Update(tm rtc.Time, face words.Set, pending bool, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.Time = tm
	t.snap.Face = face
	t.snap.PendingWrite = pending
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
