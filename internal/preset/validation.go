package preset

import (
	"fmt"
	"regexp"

	"github.com/strandlabs/strand-core/internal/animation"
)

// Validation constants.
const (
	maxNameLength        = 50
	maxDescriptionLength = 500
	namePattern          = `^[a-z0-9]+(?:-[a-z0-9]+)*$`
)

var nameRegex = regexp.MustCompile(namePattern)

// Validate performs comprehensive validation on a preset.
// Returns an error wrapping ErrInvalidPreset describing the first
// failure found.
func Validate(p *Preset) error {
	if p == nil {
		return ErrInvalidPreset
	}

	if err := ValidateName(p.Name); err != nil {
		return err
	}

	if !animation.Known(p.Animation) {
		return fmt.Errorf("%w: unknown animation %q", ErrInvalidPreset, p.Animation)
	}

	if p.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidPreset)
	}

	if p.Params.NumBlinks < 0 {
		return fmt.Errorf("%w: num_blinks must not be negative", ErrInvalidPreset)
	}

	if len(p.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidPreset, maxDescriptionLength)
	}

	return nil
}

// ValidateName checks that a preset name is a valid slug.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPreset)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidPreset, maxNameLength)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: name must be lowercase letters, digits, and hyphens", ErrInvalidPreset)
	}
	return nil
}
