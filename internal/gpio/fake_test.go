package gpio

import (
	"errors"
	"testing"
)

func TestFakeReaderRead(t *testing.T) {
	samples := []Sample{
		{Hour: true, Minute: false},
		{Hour: false, Minute: true},
		{Hour: true, Minute: true},
	}

	f := NewFakeReader(samples)

	hour, minute, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hour != true || minute != false {
		t.Errorf("sample 0: expected (true, false), got (%v, %v)", hour, minute)
	}

	hour, minute, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hour != false || minute != true {
		t.Errorf("sample 1: expected (false, true), got (%v, %v)", hour, minute)
	}

	hour, minute, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hour != true || minute != true {
		t.Errorf("sample 2: expected (true, true), got (%v, %v)", hour, minute)
	}

	// Fourth read should repeat the last sample.
	hour, minute, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hour != true || minute != true {
		t.Errorf("sample 3 (repeat): expected (true, true), got (%v, %v)", hour, minute)
	}
}

func TestFakeReaderNoSamples(t *testing.T) {
	f := NewFakeReader(nil)

	_, _, err := f.Read()
	if err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader([]Sample{{Hour: true, Minute: true}})
	f.ReadError = errors.New("simulated error")

	_, _, err := f.Read()
	if err == nil {
		t.Error("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeReaderReset(t *testing.T) {
	samples := []Sample{
		{Hour: true, Minute: false},
		{Hour: false, Minute: true},
	}

	f := NewFakeReader(samples)

	f.Read()
	f.Close()
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Reset()
	if f.Closed {
		t.Error("Reset should clear Closed")
	}

	hour, minute, _ := f.Read()
	if hour != true || minute != false {
		t.Errorf("after reset: expected (true, false), got (%v, %v)", hour, minute)
	}
}
