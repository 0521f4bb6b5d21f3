package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/strandlabs/strand-core/internal/animation"
	"github.com/strandlabs/strand-core/internal/player"
)

// maxQueryParamLen limits query parameter length to prevent DoS via oversized URL params.
const maxQueryParamLen = 100

// PlayRequest is the JSON body for POST /player/play.
type PlayRequest struct {
	Animation string           `json:"animation"`
	Params    animation.Params `json:"params"`
	TimeoutMs int64            `json:"timeout_ms"`
	OneShot   bool             `json:"one_shot"`
}

// handlePlayerStatus returns what the player is currently doing.
func (s *Server) handlePlayerStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.player.Status())
}

// handlePlay starts an animation, replacing any run in progress.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Animation == "" {
		writeBadRequest(w, "animation is required")
		return
	}
	if req.TimeoutMs < 0 {
		writeBadRequest(w, "timeout_ms must not be negative")
		return
	}

	status, err := s.player.Play(player.Request{
		Animation: req.Animation,
		Params:    req.Params,
		Timeout:   time.Duration(req.TimeoutMs) * time.Millisecond,
		OneShot:   req.OneShot,
	})
	if err != nil {
		s.writePlayError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, status)
}

// handleStop stops the current animation and blanks the strip.
func (s *Server) handleStop(w http.ResponseWriter, _ *http.Request) {
	if err := s.player.Stop(); err != nil {
		if errors.Is(err, player.ErrNotPlaying) {
			writeJSON(w, http.StatusOK, map[string]any{"stopped": false})
			return
		}
		writeInternalError(w, "failed to stop animation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stopped": true})
}

// handleListHistory returns past animation runs, newest first.
//
// Query parameters:
//   - animation: filter by animation name
//   - outcome: filter by outcome (completed, stopped, timeout, error)
//   - limit, offset: pagination (default 50, max 200)
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, map[string]any{"runs": []player.RunRecord{}, "count": 0})
		return
	}

	filter := player.HistoryFilter{
		Animation: r.URL.Query().Get("animation"),
		Outcome:   r.URL.Query().Get("outcome"),
	}
	if len(filter.Animation) > maxQueryParamLen || len(filter.Outcome) > maxQueryParamLen {
		writeBadRequest(w, "query parameter exceeds maximum length")
		return
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		writeBadRequest(w, "limit must be an integer")
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		writeBadRequest(w, "offset must be an integer")
		return
	}

	runs, err := s.history.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list run history", "error", err)
		writeInternalError(w, "failed to list run history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

// writePlayError maps player errors to HTTP responses.
func (s *Server) writePlayError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, animation.ErrUnknownAnimation):
		writeBadRequest(w, err.Error())
	case errors.Is(err, player.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, ErrCodeInternal, "player is shut down")
	default:
		s.logger.Error("failed to start animation", "error", err)
		writeInternalError(w, "failed to start animation")
	}
}

// queryInt parses an optional integer query parameter. Missing or empty
// values return zero.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
