package animation

import (
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

// Breathe default tuning.
const (
	defaultBreatheStep  = 0.05
	defaultBreatheDelay = 50 * time.Millisecond
)

// Breathe dims every LED up and down through the base colour until it
// times out or is stopped. One full up-and-down sweep is one cycle in
// one-shot mode. The strip is blanked when the run ends.
type Breathe struct {
	base

	// Color is the base colour; per-frame output is Color scaled by
	// the current brightness.
	Color led.Color

	// Step is the brightness increment per frame, reversed at the
	// [0, 1] bounds.
	Step float64

	// StepDelay is the wait between frames.
	StepDelay time.Duration
}

// NewBreathe creates a breathing fade in the given colour.
func NewBreathe(strip led.Strip, color led.Color) *Breathe {
	return &Breathe{
		base:      newBase(strip),
		Color:     color,
		Step:      defaultBreatheStep,
		StepDelay: defaultBreatheDelay,
	}
}

// Start runs the fade until stopped, timed out, or — in one-shot mode —
// brightness has reached full once and returned to zero.
func (a *Breathe) Start(timeout time.Duration, oneShot bool) error {
	a.stop.Clear()
	deadline := deadlineFrom(timeout)

	brightness := 0.0
	step := a.Step
	ending := false

	for !a.stop.IsSet() {
		if brightness >= 1 { // going down
			step = -a.Step
		} else if brightness <= 0 {
			step = a.Step
		}
		brightness += step

		if err := a.strip.Fill(a.Color.Scaled(brightness)); err != nil {
			return err
		}
		a.stop.Wait(a.StepDelay)

		switch {
		case oneShot && brightness >= 1:
			ending = true
		case ending && brightness <= 0:
			a.stop.Set()
		case expired(deadline):
			a.stop.Set()
		}
	}

	return a.strip.Fill(led.Black)
}
