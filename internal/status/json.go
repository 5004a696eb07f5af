package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Time          string     `json:"time"`
	Face          string     `json:"face"`
	Words         []string   `json:"words"`
	PendingWrite  bool       `json:"pending_write"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	HourAdvances   int `json:"hour_advances"`
	MinuteAdvances int `json:"minute_advances"`
	RTCReads       int `json:"rtc_reads"`
	RTCWrites      int `json:"rtc_writes"`
	RTCErrors      int `json:"rtc_errors"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs      int64   `json:"tick_ms"`
	DebounceMs  int64   `json:"debounce_ms"`
	RepeatMs    int64   `json:"repeat_ms"`
	PollMs      int64   `json:"poll_ms"`
	InactionMs  int64   `json:"inaction_ms"`
	HeartbeatMs int64   `json:"heartbeat_ms"`
	Broker      string  `json:"broker"`
	HTTPAddr    string  `json:"http_addr"`
	I2CBus      string  `json:"i2c_bus"`
	Brightness  float64 `json:"brightness"`
}

func buildInner(snap Snapshot) StatusInner {
	lit := snap.Face.Words()
	names := make([]string, len(lit))
	for i, w := range lit {
		names[i] = w.String()
	}

	return StatusInner{
		Time:          snap.Time.String(),
		Face:          snap.Face.String(),
		Words:         names,
		PendingWrite:  snap.PendingWrite,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			HourAdvances:   snap.Counts.HourAdvances,
			MinuteAdvances: snap.Counts.MinuteAdvances,
			RTCReads:       snap.Counts.RTCReads,
			RTCWrites:      snap.Counts.RTCWrites,
			RTCErrors:      snap.Counts.RTCErrors,
		},
		Config: ConfigJSON{
			TickMs:      snap.Config.TickMs,
			DebounceMs:  snap.Config.DebounceMs,
			RepeatMs:    snap.Config.RepeatMs,
			PollMs:      snap.Config.PollMs,
			InactionMs:  snap.Config.InactionMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			I2CBus:      snap.Config.I2CBus,
			Brightness:  snap.Config.Brightness,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
