package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/PumpMagic/WordClock/internal/logic"
	"github.com/PumpMagic/WordClock/internal/rtc"
)

func TestFormatPayload(t *testing.T) {
	at := time.Date(2026, 3, 14, 7, 25, 2, 0, time.UTC)
	event := logic.Event{
		Type: logic.EventMinuteAdvance,
		Time: rtc.Time{Hour: 7, Minute: 25, Second: 0},
	}

	data, err := FormatPayload(at, event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if p.Clock.Timestamp != "2026-03-14T07:25:02Z" {
		t.Errorf("timestamp = %q", p.Clock.Timestamp)
	}
	if p.Clock.Event != "MINUTE_ADVANCE" {
		t.Errorf("event = %q", p.Clock.Event)
	}
	if p.Clock.Time != "07:25:00" {
		t.Errorf("time = %q", p.Clock.Time)
	}
	if p.Clock.Face != "TWENTY FIVE PAST SEVEN" {
		t.Errorf("face = %q, want TWENTY FIVE PAST SEVEN", p.Clock.Face)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var p SystemPayload
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if p.System.Event != "SHUTDOWN" || p.System.Reason != "SIGTERM" {
		t.Errorf("payload = %+v", p.System)
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"system":{"custom":true}}`)
	event := SystemEvent{Event: "STARTUP", RawPayload: raw}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("got %s, want the raw payload unchanged", data)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()
	at := time.Date(2026, 3, 14, 7, 25, 0, 0, time.UTC)
	event := logic.Event{Type: logic.EventHourAdvance, Time: rtc.Time{Hour: 8}}

	if err := f.Publish(at, event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Events) != 1 || f.Events[0].Type != logic.EventHourAdvance {
		t.Errorf("Events = %v", f.Events)
	}
	if len(f.Payloads) != 1 {
		t.Errorf("recorded %d payloads, want 1", len(f.Payloads))
	}

	if err := f.PublishSystem(SystemEvent{Event: "HEARTBEAT"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.SystemEvents) != 1 {
		t.Errorf("SystemEvents = %v", f.SystemEvents)
	}

	f.Reset()
	if len(f.Events) != 0 || len(f.SystemEvents) != 0 {
		t.Error("Reset should clear recorded events")
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("broker down")

	err := f.Publish(time.Now(), logic.Event{Type: logic.EventHourAdvance})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(f.Events) != 0 {
		t.Error("failed publish should not be recorded")
	}
}
