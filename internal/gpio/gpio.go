// Package gpio reads the two time-adjust push buttons.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Reader samples the raw button levels.
type Reader interface {
	// Read returns the logical levels of the hour and minute buttons.
	// The buttons are wired active-low (a press pulls the line to ground);
	// implementations invert so true always means pressed.
	Read() (hourPressed, minutePressed bool, err error)

	// Close releases GPIO resources.
	Close() error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinHour   = 5
	DefaultPinMinute = 6
)
