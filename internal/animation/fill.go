package animation

import (
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

// defaultFillDelay is the wait between consecutive LED writes.
const defaultFillDelay = 50 * time.Millisecond

// Fill sets every LED to the same colour in sequence, optionally in
// reverse order. It is the one persistent pattern: it runs exactly one
// pass regardless of timeout or one-shot mode and leaves its result
// lit. Requests for continuous or deadline-bound runs are logged as
// unsupported and executed with the fixed single-pass semantics — this
// asymmetry is part of the visual contract and is kept deliberately.
type Fill struct {
	base

	// FillColor is the colour written to every LED. Composites retune
	// it between runs.
	FillColor led.Color

	// Reverse fills from the far end when true.
	Reverse bool

	// StepDelay is the wait between LED writes.
	StepDelay time.Duration
}

// NewFill creates a fill in the given colour and direction.
func NewFill(strip led.Strip, fillColor led.Color, reverse bool) *Fill {
	return &Fill{
		base:      newBase(strip),
		FillColor: fillColor,
		Reverse:   reverse,
		StepDelay: defaultFillDelay,
	}
}

// Start runs a single fill pass. The conventional call is
// Start(0, true); anything else is flagged and ignored. A concurrent
// Stop interrupts the pass early, leaving the LEDs written so far lit.
func (a *Fill) Start(timeout time.Duration, oneShot bool) error {
	a.stop.Clear()

	if !oneShot || timeout != 0 {
		a.logger.Warn("fill animation runs a single pass; timeout and repeat requests are ignored",
			"timeout", timeout,
			"one_shot", oneShot,
		)
	}

	n := a.strip.NumLeds()
	for k := 0; k < n && !a.stop.IsSet(); k++ {
		i := k
		if a.Reverse {
			i = n - 1 - k
		}
		if err := a.strip.SetLed(i, a.FillColor, true); err != nil {
			return err
		}
		a.stop.Wait(a.StepDelay)
	}

	return nil
}
