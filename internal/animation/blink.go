package animation

import (
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

// Blink default tuning.
const (
	defaultNumBlinks     = 2
	defaultBlinkOn       = 250 * time.Millisecond
	defaultBlinkOff      = 500 * time.Millisecond
	defaultBlinkLeadIn   = 500 * time.Millisecond
	defaultBlinkInterval = 2 * time.Second
)

// Blink flashes the whole strip a fixed number of times. One burst of
// NumBlinks flashes is one cycle; the Repeat flag — not one-shot mode —
// decides whether bursts continue, separated by a longer pause. The
// strip is blanked when the run ends.
type Blink struct {
	base

	// Color is the flash colour.
	Color led.Color

	// NumBlinks is the number of flashes per burst.
	NumBlinks int

	// Repeat keeps bursts running (until timeout or Stop) when true;
	// otherwise a single burst runs and the pattern stops.
	Repeat bool

	// OnDuration is how long the strip stays lit per flash.
	OnDuration time.Duration

	// OffDuration is the dark gap between flashes.
	OffDuration time.Duration

	// LeadIn is the dark pause before the first burst.
	LeadIn time.Duration

	// CyclePause is the gap between repeated bursts.
	CyclePause time.Duration
}

// NewBlink creates a blink burst in the given colour. numBlinks values
// below one fall back to the default of two.
func NewBlink(strip led.Strip, color led.Color, numBlinks int, repeat bool) *Blink {
	if numBlinks < 1 {
		numBlinks = defaultNumBlinks
	}
	return &Blink{
		base:        newBase(strip),
		Color:       color,
		NumBlinks:   numBlinks,
		Repeat:      repeat,
		OnDuration:  defaultBlinkOn,
		OffDuration: defaultBlinkOff,
		LeadIn:      defaultBlinkLeadIn,
		CyclePause:  defaultBlinkInterval,
	}
}

// Start runs blink bursts until stopped, timed out, one-shot completes
// a burst, or — with Repeat false — the single burst finishes.
func (a *Blink) Start(timeout time.Duration, oneShot bool) error {
	a.stop.Clear()
	deadline := deadlineFrom(timeout)

	if err := a.strip.Fill(led.Black); err != nil {
		return err
	}
	a.stop.Wait(a.LeadIn)

	for !a.stop.IsSet() {
		for i := 0; i < a.NumBlinks && !a.stop.IsSet(); i++ {
			if err := a.strip.Fill(a.Color); err != nil {
				return err
			}
			a.stop.Wait(a.OnDuration)
			if err := a.strip.Fill(led.Black); err != nil {
				return err
			}
			a.stop.Wait(a.OffDuration)
		}

		switch {
		case oneShot:
			a.stop.Set()
		case a.Repeat:
			a.stop.Wait(a.CyclePause)
		default:
			a.stop.Set()
		}
		if expired(deadline) {
			a.stop.Set()
		}
	}

	return a.strip.Fill(led.Black)
}
