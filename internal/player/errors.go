package player

import "errors"

// Sentinel errors for player operations.
var (
	// ErrClosed is returned when playing on a closed player.
	ErrClosed = errors.New("player: closed")

	// ErrNotPlaying is returned by Stop when no run is in progress.
	ErrNotPlaying = errors.New("player: no animation playing")

	// ErrInvalidCommand is returned for malformed remote commands.
	ErrInvalidCommand = errors.New("player: invalid command")
)
