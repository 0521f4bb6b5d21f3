package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/strandlabs/strand-core/internal/animation"
	"github.com/strandlabs/strand-core/internal/player"
	"github.com/strandlabs/strand-core/internal/preset"
)

// PresetRequest is the JSON body for creating or updating a preset.
// Pointer fields distinguish "not sent" from zero values on PATCH.
type PresetRequest struct {
	Name        *string           `json:"name"`
	Animation   *string           `json:"animation"`
	Params      *animation.Params `json:"params"`
	TimeoutMs   *int64            `json:"timeout_ms"`
	OneShot     *bool             `json:"one_shot"`
	Description *string           `json:"description"`
}

// apply copies the fields present in the request onto the preset.
func (req *PresetRequest) apply(p *preset.Preset) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Animation != nil {
		p.Animation = *req.Animation
	}
	if req.Params != nil {
		p.Params = *req.Params
	}
	if req.TimeoutMs != nil {
		p.Timeout = time.Duration(*req.TimeoutMs) * time.Millisecond
	}
	if req.OneShot != nil {
		p.OneShot = *req.OneShot
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
}

// handleListPresets returns all presets, optionally filtered by animation.
func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		writeNotFound(w, "preset store not configured")
		return
	}

	ctx := r.Context()

	if anim := r.URL.Query().Get("animation"); anim != "" {
		if len(anim) > maxQueryParamLen {
			writeBadRequest(w, "animation exceeds maximum length")
			return
		}
		presets, err := s.presets.ListByAnimation(ctx, anim)
		if err != nil {
			writeInternalError(w, "failed to list presets")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"presets": presets, "count": len(presets)})
		return
	}

	presets, err := s.presets.List(ctx)
	if err != nil {
		writeInternalError(w, "failed to list presets")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": presets, "count": len(presets)})
}

// handleGetPreset returns a single preset by ID.
func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		writeNotFound(w, "preset store not configured")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" || len(id) > maxQueryParamLen {
		writeBadRequest(w, "invalid preset ID")
		return
	}

	p, err := s.presets.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, preset.ErrPresetNotFound) {
			writeNotFound(w, "preset not found")
			return
		}
		writeInternalError(w, "failed to get preset")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// handleCreatePreset creates a new preset.
func (s *Server) handleCreatePreset(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		writeNotFound(w, "preset store not configured")
		return
	}

	var req PresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	var p preset.Preset
	req.apply(&p)

	if err := preset.Validate(&p); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := s.presets.Create(r.Context(), &p); err != nil {
		if errors.Is(err, preset.ErrPresetExists) {
			writeConflict(w, err.Error())
			return
		}
		writeInternalError(w, "failed to create preset")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// handleUpdatePreset partially updates a preset.
func (s *Server) handleUpdatePreset(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		writeNotFound(w, "preset store not configured")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" || len(id) > maxQueryParamLen {
		writeBadRequest(w, "invalid preset ID")
		return
	}

	existing, err := s.presets.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, preset.ErrPresetNotFound) {
			writeNotFound(w, "preset not found")
			return
		}
		writeInternalError(w, "failed to get preset")
		return
	}

	var req PresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	req.apply(existing)

	if err := preset.Validate(existing); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := s.presets.Update(r.Context(), existing); err != nil {
		switch {
		case errors.Is(err, preset.ErrPresetNotFound):
			writeNotFound(w, "preset not found")
		case errors.Is(err, preset.ErrPresetExists):
			writeConflict(w, err.Error())
		default:
			writeInternalError(w, "failed to update preset")
		}
		return
	}

	writeJSON(w, http.StatusOK, existing)
}

// handleDeletePreset removes a preset. Run history rows keep their
// preset reference nulled by the schema's ON DELETE SET NULL.
func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		writeNotFound(w, "preset store not configured")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" || len(id) > maxQueryParamLen {
		writeBadRequest(w, "invalid preset ID")
		return
	}

	if err := s.presets.Delete(r.Context(), id); err != nil {
		if errors.Is(err, preset.ErrPresetNotFound) {
			writeNotFound(w, "preset not found")
			return
		}
		writeInternalError(w, "failed to delete preset")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handlePlayPreset starts the animation a preset describes.
func (s *Server) handlePlayPreset(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		writeNotFound(w, "preset store not configured")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" || len(id) > maxQueryParamLen {
		writeBadRequest(w, "invalid preset ID")
		return
	}

	p, err := s.presets.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, preset.ErrPresetNotFound) {
			writeNotFound(w, "preset not found")
			return
		}
		writeInternalError(w, "failed to get preset")
		return
	}

	status, err := s.player.Play(player.Request{
		Animation: p.Animation,
		Params:    p.Params,
		Timeout:   p.Timeout,
		OneShot:   p.OneShot,
		PresetID:  p.ID,
	})
	if err != nil {
		s.writePlayError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, status)
}
