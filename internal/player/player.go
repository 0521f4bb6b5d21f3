package player

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/strandlabs/strand-core/internal/animation"
	"github.com/strandlabs/strand-core/internal/led"
)

// Run outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeStopped   = "stopped"
	OutcomeTimeout   = "timeout"
	OutcomeError     = "error"
)

// recordTimeout bounds database writes from the run goroutine.
const recordTimeout = 5 * time.Second

// Logger is the logging interface the player uses.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Publisher is the interface for publishing player state and events
// to MQTT. State is published retained; events are fire-and-forget.
type Publisher interface {
	PublishState(payload []byte) error
	PublishEvent(eventType string, payload []byte) error
}

// Metrics is the interface for recording run telemetry.
type Metrics interface {
	WriteRunStarted(runID string, animation string)
	WriteRunFinished(runID string, animation string, outcome string, duration time.Duration)
}

// Recorder is the interface for persisting run history.
type Recorder interface {
	RecordStart(ctx context.Context, rec *RunRecord) error
	RecordFinish(ctx context.Context, id string, finishedAt time.Time, outcome string) error
}

// Broadcaster is the interface for pushing events to WebSocket clients.
type Broadcaster interface {
	Broadcast(channel string, payload any)
}

// Request describes an animation run to start.
type Request struct {
	// Animation is the registered pattern name.
	Animation string `json:"animation"`

	// Params carries the pattern parameters.
	Params animation.Params `json:"params"`

	// Timeout bounds the run duration. Zero means run until stopped.
	Timeout time.Duration `json:"timeout"`

	// OneShot runs a single cycle instead of looping.
	OneShot bool `json:"one_shot"`

	// PresetID records which preset produced this request, if any.
	PresetID string `json:"preset_id,omitempty"`
}

// Status describes what the player is currently doing.
type Status struct {
	Playing   bool       `json:"playing"`
	RunID     string     `json:"run_id,omitempty"`
	Animation string     `json:"animation,omitempty"`
	PresetID  string     `json:"preset_id,omitempty"`
	OneShot   bool       `json:"one_shot,omitempty"`
	TimeoutMs int64      `json:"timeout_ms,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// runFinishedEvent is the payload for run_finished events.
type runFinishedEvent struct {
	RunID      string `json:"run_id"`
	Animation  string `json:"animation"`
	PresetID   string `json:"preset_id,omitempty"`
	Outcome    string `json:"outcome"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// run tracks a single animation run from Play to completion.
type run struct {
	id        string
	animation string
	presetID  string
	anim      animation.Animation
	timeout   time.Duration
	oneShot   bool
	startedAt time.Time

	// stopRequested distinguishes a player-initiated stop from a
	// natural completion when Start returns.
	stopRequested atomic.Bool

	// done is closed when the run goroutine has fully finished.
	done chan struct{}
}

// Player runs animations on an LED strip, one at a time.
//
// Starting a new run stops and waits out the current one first, so the
// strip is never driven by two patterns at once.
//
// Thread Safety: All methods are safe for concurrent use.
type Player struct {
	strip  led.Strip
	logger Logger

	// Optional observers; nil is skipped.
	publisher Publisher
	metrics   Metrics
	recorder  Recorder
	hub       Broadcaster

	// playMu serialises Play/Stop/Close so run handover is atomic.
	playMu sync.Mutex

	// mu guards current and closed.
	mu      sync.RWMutex
	current *run
	closed  bool
}

// New creates a player for the given strip.
//
// Parameters:
//   - strip: The LED strip to run animations on
//   - logger: Logger instance (nil for no logging)
//   - publisher: MQTT publisher for state/events (may be nil)
//   - metrics: Run telemetry sink (may be nil)
//   - recorder: Run history store (may be nil)
//   - hub: WebSocket broadcaster (may be nil)
func New(strip led.Strip, logger Logger, publisher Publisher, metrics Metrics, recorder Recorder, hub Broadcaster) *Player {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Player{
		strip:     strip,
		logger:    logger,
		publisher: publisher,
		metrics:   metrics,
		recorder:  recorder,
		hub:       hub,
	}
}

// Play starts the requested animation, stopping the current run first.
//
// The new run executes on its own goroutine; Play returns as soon as it
// has been handed the strip.
//
// Returns:
//   - Status: The status of the freshly started run
//   - error: ErrClosed after Close, or animation.ErrUnknownAnimation
func (p *Player) Play(req Request) (Status, error) {
	anim, err := animation.New(req.Animation, p.strip, req.Params)
	if err != nil {
		return Status{}, err
	}
	if withLogger, ok := anim.(interface{ SetLogger(animation.Logger) }); ok {
		withLogger.SetLogger(p.logger)
	}

	p.playMu.Lock()
	defer p.playMu.Unlock()

	if err := p.stopCurrent(); err != nil {
		return Status{}, err
	}

	r := &run{
		id:        "run-" + uuid.NewString(),
		animation: req.Animation,
		presetID:  req.PresetID,
		anim:      anim,
		timeout:   req.Timeout,
		oneShot:   req.OneShot,
		startedAt: time.Now().UTC(),
		done:      make(chan struct{}),
	}

	p.mu.Lock()
	p.current = r
	p.mu.Unlock()

	p.logger.Info("animation starting",
		"run_id", r.id,
		"animation", r.animation,
		"one_shot", r.oneShot,
		"timeout", r.timeout,
	)

	p.notifyStarted(r)
	go p.runLoop(r)

	return statusOf(r), nil
}

// Stop stops the current run and waits for the strip to be released.
//
// Returns:
//   - error: ErrNotPlaying if no run is in progress
func (p *Player) Stop() error {
	p.playMu.Lock()
	defer p.playMu.Unlock()

	p.mu.RLock()
	r := p.current
	p.mu.RUnlock()
	if r == nil {
		return ErrNotPlaying
	}

	return p.stopCurrent()
}

// Status returns what the player is currently doing.
func (p *Player) Status() Status {
	p.mu.RLock()
	r := p.current
	p.mu.RUnlock()

	if r == nil {
		return Status{Playing: false}
	}
	return statusOf(r)
}

// Close stops any running animation and rejects future plays.
// Safe to call more than once.
func (p *Player) Close() error {
	p.playMu.Lock()
	defer p.playMu.Unlock()

	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.mu.RLock()
	r := p.current
	p.mu.RUnlock()
	if r != nil {
		r.stopRequested.Store(true)
		r.anim.Stop()
		<-r.done
	}
	return nil
}

// stopCurrent stops and waits out the current run. Caller holds playMu.
func (p *Player) stopCurrent() error {
	p.mu.RLock()
	r := p.current
	closed := p.closed
	p.mu.RUnlock()

	if closed {
		return ErrClosed
	}
	if r == nil {
		return nil
	}

	r.stopRequested.Store(true)
	r.anim.Stop()
	<-r.done
	return nil
}

// runLoop executes a single run on its own goroutine.
func (p *Player) runLoop(r *run) {
	defer close(r.done)

	err := r.anim.Start(r.timeout, r.oneShot)
	duration := time.Since(r.startedAt)

	outcome := OutcomeCompleted
	switch {
	case err != nil:
		outcome = OutcomeError
	case r.stopRequested.Load():
		outcome = OutcomeStopped
	case r.timeout > 0 && duration >= r.timeout:
		outcome = OutcomeTimeout
	}

	p.mu.Lock()
	if p.current == r {
		p.current = nil
	}
	p.mu.Unlock()

	if err != nil {
		p.logger.Error("animation failed",
			"run_id", r.id,
			"animation", r.animation,
			"error", err,
		)
	} else {
		p.logger.Info("animation finished",
			"run_id", r.id,
			"animation", r.animation,
			"outcome", outcome,
			"duration", duration,
		)
	}

	p.notifyFinished(r, outcome, duration, err)
}

// notifyStarted fans the run start out to the configured observers.
func (p *Player) notifyStarted(r *run) {
	if p.metrics != nil {
		p.metrics.WriteRunStarted(r.id, r.animation)
	}

	if p.recorder != nil {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := p.recorder.RecordStart(ctx, &RunRecord{
			ID:        r.id,
			Animation: r.animation,
			PresetID:  r.presetID,
			StartedAt: r.startedAt,
		}); err != nil {
			p.logger.Warn("recording run start failed", "run_id", r.id, "error", err)
		}
		cancel()
	}

	p.publishState(statusOf(r))
	p.publishEvent("run_started", statusOf(r))

	if p.hub != nil {
		p.hub.Broadcast("player", statusOf(r))
	}
}

// notifyFinished fans the run outcome out to the configured observers.
func (p *Player) notifyFinished(r *run, outcome string, duration time.Duration, runErr error) {
	if p.metrics != nil {
		p.metrics.WriteRunFinished(r.id, r.animation, outcome, duration)
	}

	if p.recorder != nil {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := p.recorder.RecordFinish(ctx, r.id, time.Now().UTC(), outcome); err != nil {
			p.logger.Warn("recording run finish failed", "run_id", r.id, "error", err)
		}
		cancel()
	}

	event := runFinishedEvent{
		RunID:      r.id,
		Animation:  r.animation,
		PresetID:   r.presetID,
		Outcome:    outcome,
		DurationMs: duration.Milliseconds(),
	}
	if runErr != nil {
		event.Error = runErr.Error()
	}

	p.publishState(p.Status())
	p.publishEvent("run_finished", event)

	if p.hub != nil {
		p.hub.Broadcast("player", event)
	}
}

// publishState publishes the retained player state to MQTT.
func (p *Player) publishState(status Status) {
	if p.publisher == nil {
		return
	}
	payload, err := json.Marshal(status)
	if err != nil {
		p.logger.Error("marshalling player state", "error", err)
		return
	}
	if err := p.publisher.PublishState(payload); err != nil {
		p.logger.Warn("publishing player state failed", "error", err)
	}
}

// publishEvent publishes a run lifecycle event to MQTT.
func (p *Player) publishEvent(eventType string, payload any) {
	if p.publisher == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("marshalling player event", "event", eventType, "error", err)
		return
	}
	if err := p.publisher.PublishEvent(eventType, data); err != nil {
		p.logger.Warn("publishing player event failed", "event", eventType, "error", err)
	}
}

// statusOf builds the Status snapshot for an active run.
func statusOf(r *run) Status {
	startedAt := r.startedAt
	return Status{
		Playing:   true,
		RunID:     r.id,
		Animation: r.animation,
		PresetID:  r.presetID,
		OneShot:   r.oneShot,
		TimeoutMs: r.timeout.Milliseconds(),
		StartedAt: &startedAt,
	}
}
