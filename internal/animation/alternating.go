package animation

import (
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

// defaultAlternatingDelay is the hold time per parity frame.
const defaultAlternatingDelay = 500 * time.Millisecond

// Alternating lights the even-indexed LEDs, then the odd-indexed ones,
// flipping parity each frame. Every LED is lit in exactly one of the
// two phases. One even+odd pair is one cycle in one-shot mode. The
// strip is blanked when the run ends.
type Alternating struct {
	base

	// Color is the colour of the lit parity set.
	Color led.Color

	// Delay is the hold time per frame.
	Delay time.Duration
}

// NewAlternating creates an alternating even/odd pattern in the given
// colour.
func NewAlternating(strip led.Strip, color led.Color) *Alternating {
	return &Alternating{
		base:  newBase(strip),
		Color: color,
		Delay: defaultAlternatingDelay,
	}
}

// Start runs parity frames until stopped, timed out, or — in one-shot
// mode — one even+odd pair has completed.
func (a *Alternating) Start(timeout time.Duration, oneShot bool) error {
	a.stop.Clear()
	deadline := deadlineFrom(timeout)

	evens := true
	if err := a.strip.Fill(led.Black); err != nil {
		return err
	}

	for !a.stop.IsSet() {
		// Stage the whole frame, then flush it in one Show so both
		// parity sets change together.
		for i := 0; i < a.strip.NumLeds(); i++ {
			c := led.Black
			if (evens && i%2 == 0) || (!evens && i%2 == 1) {
				c = a.Color
			}
			if err := a.strip.SetLed(i, c, false); err != nil {
				return err
			}
		}
		if err := a.strip.Show(); err != nil {
			return err
		}
		a.stop.Wait(a.Delay)
		evens = !evens

		if oneShot && evens { // both phases shown
			a.stop.Set()
		} else if expired(deadline) {
			a.stop.Set()
		}
	}

	return a.strip.Fill(led.Black)
}
