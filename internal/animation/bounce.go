package animation

import (
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

// Bounce fills the strip in the requested colour, then fills it off in
// the opposite direction, repeating until it times out or is stopped —
// the off sweep chasing back gives the bounce visual. The original
// direction is restored after each pair, and the net effect always
// ends off. Cycle semantics match Refill.
type Bounce struct {
	base

	// FillColor is the colour of the lit half of each cycle.
	FillColor led.Color

	fill *Fill
}

// NewBounce creates a bounce in the given colour and starting direction.
func NewBounce(strip led.Strip, fillColor led.Color, reverse bool) *Bounce {
	return &Bounce{
		base:      newBase(strip),
		FillColor: fillColor,
		fill:      NewFill(strip, fillColor, reverse),
	}
}

// SetLogger sets the logger on the composite and its inner fill.
func (a *Bounce) SetLogger(logger Logger) {
	a.base.SetLogger(logger)
	a.fill.SetLogger(logger)
}

// Start runs colour+reversed-off fill pairs until stopped, timed out,
// or — in one-shot mode — one full pair has completed.
func (a *Bounce) Start(timeout time.Duration, oneShot bool) error {
	a.stop.Clear()
	deadline := deadlineFrom(timeout)

	for !a.stop.IsSet() {
		a.fill.FillColor = a.FillColor
		if err := a.fill.Start(0, true); err != nil {
			return err
		}

		// Off sweep runs against the colour sweep's direction; both
		// colour and direction are restored once the pair is done.
		a.fill.Reverse = !a.fill.Reverse
		a.fill.FillColor = led.Black
		var err error
		if !a.stop.IsSet() {
			err = a.fill.Start(0, true)
		}
		a.fill.Reverse = !a.fill.Reverse
		a.fill.FillColor = a.FillColor
		if err != nil {
			return err
		}

		if oneShot {
			a.stop.Set()
		} else if expired(deadline) {
			a.stop.Set()
		}
	}

	// Same off-state guarantee as Refill for interrupted pairs.
	return a.strip.Fill(led.Black)
}

// Stop requests termination, interrupting the in-flight fill sub-run.
func (a *Bounce) Stop() {
	a.stop.Set()
	a.fill.Stop()
}
