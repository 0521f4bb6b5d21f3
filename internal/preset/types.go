package preset

import (
	"time"

	"github.com/strandlabs/strand-core/internal/animation"
)

// Preset is a named, persisted animation configuration.
type Preset struct {
	// ID is the unique identifier (pre-xxxxxxxx, generated on create).
	ID string `json:"id"`

	// Name is the unique human-chosen name (slug form, e.g. "boot-glow").
	Name string `json:"name"`

	// Animation is the registered animation this preset runs.
	Animation string `json:"animation"`

	// Params carries the animation parameters (colours, counts, flags).
	Params animation.Params `json:"params"`

	// Timeout bounds the run duration. Zero means no deadline.
	Timeout time.Duration `json:"timeout"`

	// OneShot runs a single cycle instead of looping.
	OneShot bool `json:"one_shot"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
