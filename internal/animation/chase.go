package animation

import (
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

// defaultChaseDelay is the dwell time on each LED during a sweep.
const defaultChaseDelay = 100 * time.Millisecond

// Chase lights one LED at a time in index order, wrapping back to the
// start, until it times out or is stopped. One full sweep over the
// strip is one cycle in one-shot mode. The strip is blanked when the
// run ends.
type Chase struct {
	base

	// Foreground is the colour of the active LED.
	Foreground led.Color

	// Background is the colour of inactive LEDs (off by default).
	Background led.Color

	// StepDelay is the dwell time on each LED.
	StepDelay time.Duration
}

// NewChase creates a chase with the given foreground and background
// colours.
func NewChase(strip led.Strip, foreground, background led.Color) *Chase {
	return &Chase{
		base:       newBase(strip),
		Foreground: foreground,
		Background: background,
		StepDelay:  defaultChaseDelay,
	}
}

// Start runs sweeps until stopped, timed out, or — in one-shot mode —
// one full sweep has completed.
func (a *Chase) Start(timeout time.Duration, oneShot bool) error {
	a.stop.Clear()
	deadline := deadlineFrom(timeout)

	if err := a.strip.Fill(a.Background); err != nil {
		return err
	}

	for !a.stop.IsSet() {
		for i := 0; i < a.strip.NumLeds() && !a.stop.IsSet(); i++ {
			if err := a.strip.SetLed(i, a.Foreground, true); err != nil {
				return err
			}
			a.stop.Wait(a.StepDelay)
			if err := a.strip.SetLed(i, a.Background, true); err != nil {
				return err
			}
		}
		if oneShot {
			a.stop.Set()
		} else if expired(deadline) {
			a.stop.Set()
		}
	}

	return a.strip.Fill(led.Black)
}
