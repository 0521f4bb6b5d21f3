package led

import "errors"

// Domain-specific errors for LED drivers.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrIndexOutOfRange is returned when a LED index is outside [0, NumLeds).
	ErrIndexOutOfRange = errors.New("led: index out of range")

	// ErrInvalidColor is returned when a colour string cannot be parsed.
	ErrInvalidColor = errors.New("led: invalid colour")

	// ErrClosed is returned when writing to a closed driver.
	ErrClosed = errors.New("led: driver closed")

	// ErrNoLines is returned when a GPIO strip is configured without lines.
	ErrNoLines = errors.New("led: no gpio lines configured")
)
