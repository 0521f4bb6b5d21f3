package animation

import (
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

// Refill fills the strip in the requested colour, then fills it off
// again in the same direction, repeating until it times out or is
// stopped. One colour+off pair is one cycle in one-shot mode. The net
// effect always ends off.
//
// Refill owns a single Fill instance and retunes its colour between
// sub-runs; Stop is forwarded so the in-flight sub-run is interrupted
// within one wait step.
type Refill struct {
	base

	// FillColor is the colour of the lit half of each cycle.
	FillColor led.Color

	fill *Fill
}

// NewRefill creates a refill in the given colour and direction.
func NewRefill(strip led.Strip, fillColor led.Color, reverse bool) *Refill {
	return &Refill{
		base:      newBase(strip),
		FillColor: fillColor,
		fill:      NewFill(strip, fillColor, reverse),
	}
}

// SetLogger sets the logger on the composite and its inner fill.
func (a *Refill) SetLogger(logger Logger) {
	a.base.SetLogger(logger)
	a.fill.SetLogger(logger)
}

// Start runs colour+off fill pairs until stopped, timed out, or — in
// one-shot mode — one full pair has completed.
func (a *Refill) Start(timeout time.Duration, oneShot bool) error {
	a.stop.Clear()
	deadline := deadlineFrom(timeout)

	for !a.stop.IsSet() {
		a.fill.FillColor = a.FillColor
		if err := a.fill.Start(0, true); err != nil {
			return err
		}
		if !a.stop.IsSet() {
			a.fill.FillColor = led.Black
			err := a.fill.Start(0, true)
			a.fill.FillColor = a.FillColor
			if err != nil {
				return err
			}
		}
		if oneShot {
			a.stop.Set()
		} else if expired(deadline) {
			a.stop.Set()
		}
	}

	// An interrupted pair may leave LEDs lit; the off state is part of
	// the pattern's contract, so blank immediately rather than sweep.
	return a.strip.Fill(led.Black)
}

// Stop requests termination, interrupting the in-flight fill sub-run.
func (a *Refill) Stop() {
	a.stop.Set()
	a.fill.Stop()
}
