package rtc

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// DS3231 register map (only the parts this driver touches).
const (
	ds3231Addr = 0x68

	regSeconds = 0x00 // seconds, minutes, hours follow in order
	regDate    = 0x03 // weekday, day, month, year
	regStatus  = 0x0F

	statusOSF = 0x80 // oscillator stopped: time is untrustworthy
	hour24Max = 0x3F // hour register mask in 24-hour mode
)

// DS3231 talks to a Maxim DS3231 RTC over I2C. The chip keeps time on a coin
// cell while the Pi is off.
type DS3231 struct {
	bus i2c.BusCloser
	dev i2c.Dev
}

// NewDS3231 opens the named I2C bus ("" for the first available) and returns
// a driver for the DS3231 on it.
func NewDS3231(busName string) (*DS3231, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}
	return &DS3231{bus: bus, dev: i2c.Dev{Bus: bus, Addr: ds3231Addr}}, nil
}

// ReadTime reads the seconds, minutes and hours registers in one transaction.
func (d *DS3231) ReadTime() (Time, error) {
	var buf [3]byte
	if err := d.dev.Tx([]byte{regSeconds}, buf[:]); err != nil {
		return Time{}, fmt.Errorf("%w: read time registers: %v", ErrUnavailable, err)
	}
	t := Time{
		Second: fromBCD(buf[0] & 0x7F),
		Minute: fromBCD(buf[1] & 0x7F),
		Hour:   fromBCD(buf[2] & hour24Max),
	}
	if !t.Valid() {
		return Time{}, fmt.Errorf("%w: nonsense time registers %02x:%02x:%02x", ErrUnavailable, buf[2], buf[1], buf[0])
	}
	return t, nil
}

// WriteTime sets the chip in 24-hour mode and clears the oscillator-stop
// flag. The calendar is pinned to 2017-01-01 (a Sunday): the clock face has
// no date, so only the time-of-day registers matter.
func (d *DS3231) WriteTime(t Time) error {
	if !t.Valid() {
		return fmt.Errorf("write time %v: out of range", t)
	}
	buf := []byte{
		regSeconds,
		toBCD(t.Second),
		toBCD(t.Minute),
		toBCD(t.Hour), // bit 6 clear selects 24-hour mode
		1,             // weekday: Sunday
		toBCD(1),      // day
		toBCD(1),      // month
		toBCD(17),     // year (2017)
	}
	if err := d.dev.Tx(buf, nil); err != nil {
		return fmt.Errorf("%w: write time registers: %v", ErrUnavailable, err)
	}

	var status [1]byte
	if err := d.dev.Tx([]byte{regStatus}, status[:]); err != nil {
		return fmt.Errorf("%w: read status register: %v", ErrUnavailable, err)
	}
	if status[0]&statusOSF != 0 {
		if err := d.dev.Tx([]byte{regStatus, status[0] &^ statusOSF}, nil); err != nil {
			return fmt.Errorf("%w: clear oscillator-stop flag: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// LostPower reads the oscillator-stop flag.
func (d *DS3231) LostPower() (bool, error) {
	var status [1]byte
	if err := d.dev.Tx([]byte{regStatus}, status[:]); err != nil {
		return false, fmt.Errorf("%w: read status register: %v", ErrUnavailable, err)
	}
	return status[0]&statusOSF != 0, nil
}

// Close releases the I2C bus.
func (d *DS3231) Close() error {
	return d.bus.Close()
}

func toBCD(v int) byte {
	return byte(v/10)<<4 | byte(v%10)
}

func fromBCD(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}
