package player

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/strandlabs/strand-core/internal/animation"
	"github.com/strandlabs/strand-core/internal/preset"
)

// Command actions accepted on the player command topic.
const (
	ActionPlay = "play"
	ActionStop = "stop"
)

// presetLookupTimeout bounds the database read for preset commands.
const presetLookupTimeout = 5 * time.Second

// Command is the JSON payload accepted on strand/player/command.
//
// Either Animation or Preset selects what to play; Preset wins when
// both are set. Stop commands ignore every other field.
type Command struct {
	Action    string           `json:"action"`
	Animation string           `json:"animation,omitempty"`
	Preset    string           `json:"preset,omitempty"`
	Params    animation.Params `json:"params,omitempty"`
	TimeoutMs int64            `json:"timeout_ms,omitempty"`
	OneShot   bool             `json:"one_shot,omitempty"`
}

// PresetSource resolves presets by name. Satisfied by preset.Repository.
type PresetSource interface {
	GetByName(ctx context.Context, name string) (*preset.Preset, error)
}

// Commander translates remote commands into player calls.
// It implements the mqtt.MessageHandler signature via Handle.
type Commander struct {
	player  *Player
	presets PresetSource
	logger  Logger
}

// NewCommander creates a command handler for the player.
//
// Parameters:
//   - player: The player to drive
//   - presets: Preset lookup for preset commands (may be nil)
//   - logger: Logger instance (nil for no logging)
func NewCommander(player *Player, presets PresetSource, logger Logger) *Commander {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Commander{
		player:  player,
		presets: presets,
		logger:  logger,
	}
}

// Handle processes a single command payload.
//
// Parameters:
//   - topic: The topic the command arrived on (logged only)
//   - payload: JSON-encoded Command
//
// Returns:
//   - error: ErrInvalidCommand for malformed payloads, or the player error
func (c *Commander) Handle(topic string, payload []byte) error {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}

	c.logger.Debug("player command received", "topic", topic, "action", cmd.Action)

	switch cmd.Action {
	case ActionPlay:
		return c.handlePlay(cmd)
	case ActionStop:
		if err := c.player.Stop(); err != nil {
			// Stopping an idle player is not a remote-side mistake.
			c.logger.Debug("stop command with nothing playing")
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidCommand, cmd.Action)
	}
}

// handlePlay resolves the request and starts the run.
func (c *Commander) handlePlay(cmd Command) error {
	req, err := c.buildRequest(cmd)
	if err != nil {
		return err
	}

	if _, err := c.player.Play(req); err != nil {
		return fmt.Errorf("playing %q: %w", req.Animation, err)
	}
	return nil
}

// buildRequest converts a command into a play request, resolving the
// preset if one is named.
func (c *Commander) buildRequest(cmd Command) (Request, error) {
	if cmd.Preset != "" {
		if c.presets == nil {
			return Request{}, fmt.Errorf("%w: presets not available", ErrInvalidCommand)
		}

		ctx, cancel := context.WithTimeout(context.Background(), presetLookupTimeout)
		defer cancel()

		p, err := c.presets.GetByName(ctx, cmd.Preset)
		if err != nil {
			return Request{}, fmt.Errorf("resolving preset %q: %w", cmd.Preset, err)
		}
		return Request{
			Animation: p.Animation,
			Params:    p.Params,
			Timeout:   p.Timeout,
			OneShot:   p.OneShot,
			PresetID:  p.ID,
		}, nil
	}

	if cmd.Animation == "" {
		return Request{}, fmt.Errorf("%w: animation or preset is required", ErrInvalidCommand)
	}

	return Request{
		Animation: cmd.Animation,
		Params:    cmd.Params,
		Timeout:   time.Duration(cmd.TimeoutMs) * time.Millisecond,
		OneShot:   cmd.OneShot,
	}, nil
}
