package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.withRequestID)
	r.Use(s.withLogging)
	r.Use(s.withRecovery)
	r.Use(s.withCORS)
	r.Use(s.withBodyLimit)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health and system info
		r.Get("/health", s.handleHealth)
		r.Get("/system", s.handleSystemInfo)

		// Animation catalogue
		r.Get("/animations", s.handleListAnimations)

		// Player endpoints
		r.Route("/player", func(r chi.Router) {
			r.Get("/", s.handlePlayerStatus)
			r.Post("/play", s.handlePlay)
			r.Post("/stop", s.handleStop)
			r.Get("/history", s.handleListHistory)
		})

		// Preset endpoints
		r.Route("/presets", func(r chi.Router) {
			r.Get("/", s.handleListPresets)
			r.Post("/", s.handleCreatePreset)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetPreset)
				r.Patch("/", s.handleUpdatePreset)
				r.Delete("/", s.handleDeletePreset)
				r.Post("/play", s.handlePlayPreset)
			})
		})

		// Strip snapshot (memory driver only)
		r.Get("/strip", s.handleStripSnapshot)

		// WebSocket
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
