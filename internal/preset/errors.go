package preset

import "errors"

// Sentinel errors for preset operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrPresetNotFound is returned when a preset does not exist.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrPresetExists is returned when creating a preset whose ID or
	// name is already taken.
	ErrPresetExists = errors.New("preset already exists")

	// ErrInvalidPreset is returned when a preset fails validation.
	ErrInvalidPreset = errors.New("invalid preset")
)
