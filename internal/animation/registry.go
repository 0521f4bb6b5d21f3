package animation

import (
	"fmt"
	"sort"

	"github.com/strandlabs/strand-core/internal/led"
)

// Params carries the construction parameters a caller supplies when
// selecting a pattern by name. Each pattern reads only the fields it
// documents; the rest are ignored.
type Params struct {
	// Color is the base colour for breathe, blink and alternating.
	Color led.Color `json:"color" yaml:"color"`

	// Foreground is the active-LED colour for chase.
	Foreground led.Color `json:"foreground" yaml:"foreground"`

	// Background is the inactive-LED colour for chase (off by default).
	Background led.Color `json:"background" yaml:"background"`

	// FillColor is the sweep colour for fill, refill and bounce.
	FillColor led.Color `json:"fill_color" yaml:"fill_color"`

	// Reverse sweeps from the far end for fill, refill and bounce.
	Reverse bool `json:"reverse" yaml:"reverse"`

	// NumBlinks is the flashes per blink burst (default 2).
	NumBlinks int `json:"num_blinks" yaml:"num_blinks"`

	// Repeat keeps blink bursts running.
	Repeat bool `json:"repeat" yaml:"repeat"`
}

// Builder constructs a pattern instance bound to a strip.
type Builder func(strip led.Strip, p Params) Animation

// builders is the static name→constructor table. It is populated once
// and never mutated; no dynamic registration is supported.
var builders = map[string]Builder{
	"breathe": func(s led.Strip, p Params) Animation {
		return NewBreathe(s, p.Color)
	},
	"chase": func(s led.Strip, p Params) Animation {
		return NewChase(s, p.Foreground, p.Background)
	},
	"fill": func(s led.Strip, p Params) Animation {
		return NewFill(s, p.FillColor, p.Reverse)
	},
	"refill": func(s led.Strip, p Params) Animation {
		return NewRefill(s, p.FillColor, p.Reverse)
	},
	"bounce": func(s led.Strip, p Params) Animation {
		return NewBounce(s, p.FillColor, p.Reverse)
	},
	"blink": func(s led.Strip, p Params) Animation {
		return NewBlink(s, p.Color, p.NumBlinks, p.Repeat)
	},
	"alternating": func(s led.Strip, p Params) Animation {
		return NewAlternating(s, p.Color)
	},
}

// New constructs the named pattern bound to the given strip.
//
// Returns:
//   - Animation: Ready instance; call Start to run it
//   - error: ErrUnknownAnimation if the name is not registered
func New(name string, strip led.Strip, p Params) (Animation, error) {
	builder, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	return builder(strip, p), nil
}

// Known reports whether name is a registered pattern.
func Known(name string) bool {
	_, ok := builders[name]
	return ok
}

// Names returns the registered pattern names, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
