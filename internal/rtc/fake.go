package rtc

// FakeDevice is a test double backed by an in-memory time.
type FakeDevice struct {
	// Now is the time the device reports.
	Now Time

	// Lost controls LostPower until the next successful WriteTime.
	Lost bool

	// ReadErr, WriteErr and LostErr, if set, are returned by the
	// corresponding method.
	ReadErr  error
	WriteErr error
	LostErr  error

	// Reads counts successful ReadTime calls.
	Reads int

	// Writes records every successful WriteTime argument in order.
	Writes []Time
}

// NewFakeDevice creates a FakeDevice reporting the given time.
func NewFakeDevice(now Time) *FakeDevice {
	return &FakeDevice{Now: now}
}

// ReadTime returns the fake's current time.
func (f *FakeDevice) ReadTime() (Time, error) {
	if f.ReadErr != nil {
		return Time{}, f.ReadErr
	}
	f.Reads++
	return f.Now, nil
}

// WriteTime records the write and clears the power-loss condition, like the
// real chip does.
func (f *FakeDevice) WriteTime(t Time) error {
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.Now = t
	f.Lost = false
	f.Writes = append(f.Writes, t)
	return nil
}

// LostPower reports the scripted power-loss condition.
func (f *FakeDevice) LostPower() (bool, error) {
	if f.LostErr != nil {
		return false, f.LostErr
	}
	return f.Lost, nil
}
