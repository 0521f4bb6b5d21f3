package led

// Strip is the device abstraction the animation engine renders through.
//
// Implementations own the physical transport; the engine only issues the
// calls below and never retains device state beyond NumLeds.
//
// Thread Safety: a Strip is driven by one animation at a time. Callers
// that expose a strip to multiple writers must serialise access
// themselves (the player does).
type Strip interface {
	// NumLeds returns the number of addressable LEDs on the strip.
	NumLeds() int

	// SetLed sets the colour of a single LED. When show is false the
	// write is buffered until the next Show call, allowing a whole
	// frame to be flushed at once.
	SetLed(index int, c Color, show bool) error

	// Fill sets every LED to the same colour and shows immediately.
	Fill(c Color) error

	// Show flushes writes that were deferred with show=false.
	Show() error
}
