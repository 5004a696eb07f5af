package logic

import "testing"

// drive feeds the machine a constant raw level every millisecond over
// [from, to) and returns the counter values at which events fired.
func drive(b *button, cfg Config, from, to Millis, raw bool) []Millis {
	var fires []Millis
	for now := from; now != to; now++ {
		if b.step(now, raw, cfg) {
			fires = append(fires, now)
		}
	}
	return fires
}

func TestButtonBounceProducesNoEvents(t *testing.T) {
	cfg := DefaultConfig()
	b := newButton(ButtonHour)

	// Toggle the raw level every 5 ms for 200 ms: faster than the 50 ms
	// debounce, so nothing should fire.
	raw := false
	for now := Millis(0); now < 200; now++ {
		if now%5 == 0 {
			raw = !raw
		}
		if b.step(now, raw, cfg) {
			t.Fatalf("event fired at %d during bounce", now)
		}
	}

	// Let the level settle released; the machine must return to idle.
	if fires := drive(b, cfg, 200, 300, false); len(fires) != 0 {
		t.Fatalf("events fired after bounce settled released: %v", fires)
	}
	if b.active() {
		t.Error("button still active after bounce evaporated")
	}
}

func TestButtonPressFiresOnceThenRepeats(t *testing.T) {
	cfg := DefaultConfig()
	b := newButton(ButtonMinute)

	// Released and settled before the press.
	drive(b, cfg, 0, 100, false)

	fires := drive(b, cfg, 100, 3000, true)
	want := []Millis{150, 1150, 2150}
	if len(fires) != len(want) {
		t.Fatalf("fired at %v, want %v", fires, want)
	}
	for i := range want {
		if fires[i] != want[i] {
			t.Errorf("fire %d at %d, want %d", i, fires[i], want[i])
		}
	}
	if !b.active() {
		t.Error("held button should be active")
	}
}

func TestButtonReleaseStopsRepeats(t *testing.T) {
	cfg := DefaultConfig()
	b := newButton(ButtonHour)

	drive(b, cfg, 0, 100, false)
	if fires := drive(b, cfg, 100, 400, true); len(fires) != 1 {
		t.Fatalf("press: fired %v, want exactly one event", fires)
	}

	// Release; after the debounce interval the machine is idle again and
	// no repeat ever fires.
	if fires := drive(b, cfg, 400, 2000, false); len(fires) != 0 {
		t.Fatalf("events fired after release: %v", fires)
	}
	if b.active() {
		t.Error("released button should be idle")
	}

	// A second press fires its own immediate event.
	fires := drive(b, cfg, 2000, 2100, true)
	if len(fires) != 1 || fires[0] != 2050 {
		t.Errorf("second press fired at %v, want [2050]", fires)
	}
}

func TestButtonShortTapStillFires(t *testing.T) {
	cfg := DefaultConfig()
	b := newButton(ButtonHour)

	drive(b, cfg, 0, 100, false)
	// Held for 60 ms: longer than debounce, shorter than repeat. Exactly
	// one event; debounce delays recognition but never drops a press.
	fires := drive(b, cfg, 100, 160, true)
	fires = append(fires, drive(b, cfg, 160, 1500, false)...)
	if len(fires) != 1 || fires[0] != 150 {
		t.Errorf("fired at %v, want [150]", fires)
	}
}

func TestButtonCounterWraparound(t *testing.T) {
	cfg := DefaultConfig()
	b := newButton(ButtonMinute)

	// Start 100 ms before the counter wraps. Elapsed-time comparisons use
	// unsigned subtraction, so the press must settle and repeat across the
	// wrap exactly as it would anywhere else.
	start := Millis(0)
	start -= 100
	drive(b, cfg, start, start+20, false)

	fires := drive(b, cfg, start+20, start+1200, true)
	want := []Millis{start + 70, start + 1070}
	if len(fires) != len(want) {
		t.Fatalf("fired at %v, want %v", fires, want)
	}
	for i := range want {
		if fires[i] != want[i] {
			t.Errorf("fire %d at %d (wrapped), want %d", i, fires[i], want[i])
		}
	}
}
