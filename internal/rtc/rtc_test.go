package rtc

import (
	"errors"
	"testing"
)

func TestBCDRoundTrip(t *testing.T) {
	for v := 0; v < 60; v++ {
		b := toBCD(v)
		if got := fromBCD(b); got != v {
			t.Errorf("toBCD(%d)=%#02x, fromBCD=%d", v, b, got)
		}
	}
	// Spot-check the encoding itself, not just the round trip.
	if got := toBCD(59); got != 0x59 {
		t.Errorf("toBCD(59)=%#02x, want 0x59", got)
	}
	if got := fromBCD(0x23); got != 23 {
		t.Errorf("fromBCD(0x23)=%d, want 23", got)
	}
}

func TestTimeValid(t *testing.T) {
	valid := []Time{{0, 0, 0}, {23, 59, 59}, {12, 30, 15}}
	for _, tm := range valid {
		if !tm.Valid() {
			t.Errorf("%v should be valid", tm)
		}
	}
	invalid := []Time{{24, 0, 0}, {-1, 0, 0}, {0, 60, 0}, {0, 0, 60}}
	for _, tm := range invalid {
		if tm.Valid() {
			t.Errorf("%v should be invalid", tm)
		}
	}
}

func TestTimeString(t *testing.T) {
	if got := (Time{Hour: 7, Minute: 5, Second: 0}).String(); got != "07:05:00" {
		t.Errorf("got %q, want 07:05:00", got)
	}
}

func TestFakeDeviceWriteClearsLostPower(t *testing.T) {
	f := NewFakeDevice(Time{Hour: 3})
	f.Lost = true

	lost, err := f.LostPower()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lost {
		t.Fatal("expected lost power")
	}

	if err := f.WriteTime(Epoch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lost, _ = f.LostPower()
	if lost {
		t.Error("WriteTime should clear the power-loss condition")
	}
	if len(f.Writes) != 1 || f.Writes[0] != Epoch {
		t.Errorf("Writes = %v, want [%v]", f.Writes, Epoch)
	}

	got, err := f.ReadTime()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Epoch {
		t.Errorf("ReadTime = %v, want %v", got, Epoch)
	}
}

func TestFakeDeviceErrors(t *testing.T) {
	f := NewFakeDevice(Time{})
	f.ReadErr = ErrUnavailable
	if _, err := f.ReadTime(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ReadTime error = %v, want ErrUnavailable", err)
	}
	f.WriteErr = ErrUnavailable
	if err := f.WriteTime(Time{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("WriteTime error = %v, want ErrUnavailable", err)
	}
	if f.Reads != 0 || len(f.Writes) != 0 {
		t.Error("failed calls should not be counted")
	}
}
