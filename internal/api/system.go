package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/strandlabs/strand-core/internal/animation"
	"github.com/strandlabs/strand-core/internal/led"
)

// SystemInfo represents the system info response.
type SystemInfo struct {
	Timestamp     string         `json:"timestamp"`
	Version       string         `json:"version"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Runtime       RuntimeMetrics `json:"runtime"`
	Strip         StripInfo      `json:"strip"`
	WebSocket     WSMetrics      `json:"websocket"`
	MQTT          MQTTMetrics    `json:"mqtt"`
}

// RuntimeMetrics contains Go runtime statistics.
type RuntimeMetrics struct {
	Goroutines    int     `json:"goroutines"`
	MemoryAllocMB float64 `json:"memory_alloc_mb"`
	MemoryTotalMB float64 `json:"memory_total_mb"`
	NumGC         uint32  `json:"num_gc"`
}

// StripInfo describes the attached LED strip.
type StripInfo struct {
	Driver  string `json:"driver"`
	NumLeds int    `json:"num_leds"`
}

// WSMetrics contains WebSocket hub statistics.
type WSMetrics struct {
	ConnectedClients int `json:"connected_clients"`
}

// MQTTMetrics contains MQTT client statistics.
type MQTTMetrics struct {
	Connected bool `json:"connected"`
}

// bytesPerMB converts bytes to megabytes.
const bytesPerMB = 1024 * 1024

// handleSystemInfo returns version, uptime, runtime stats, and the state
// of the strip and transports.
func (s *Server) handleSystemInfo(w http.ResponseWriter, _ *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	info := SystemInfo{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Runtime: RuntimeMetrics{
			Goroutines:    runtime.NumGoroutine(),
			MemoryAllocMB: float64(mem.Alloc) / bytesPerMB,
			MemoryTotalMB: float64(mem.TotalAlloc) / bytesPerMB,
			NumGC:         mem.NumGC,
		},
		Strip: StripInfo{
			Driver:  stripDriverName(s.strip),
			NumLeds: s.strip.NumLeds(),
		},
	}

	if s.hub != nil {
		info.WebSocket.ConnectedClients = s.hub.ClientCount()
	}
	if s.mqtt != nil {
		info.MQTT.Connected = s.mqtt.IsConnected()
	}

	writeJSON(w, http.StatusOK, info)
}

// handleListAnimations returns the registered animation names.
func (s *Server) handleListAnimations(w http.ResponseWriter, _ *http.Request) {
	names := animation.Names()
	writeJSON(w, http.StatusOK, map[string]any{
		"animations": names,
		"count":      len(names),
	})
}

// handleStripSnapshot returns the currently shown frame.
//
// Only the memory driver keeps a readable copy of the frame; GPIO
// hardware is write-only, so this endpoint returns 404 for it.
func (s *Server) handleStripSnapshot(w http.ResponseWriter, _ *http.Request) {
	mem, ok := s.strip.(*led.Memory)
	if !ok {
		writeNotFound(w, "frame snapshots require the memory driver")
		return
	}

	frame := mem.Snapshot()
	preview := FramePreview{
		NumLeds:    len(frame),
		Colors:     make([]string, len(frame)),
		Generation: mem.Generation(),
	}
	for i, c := range frame {
		preview.Colors[i] = c.Hex()
	}

	writeJSON(w, http.StatusOK, preview)
}

// stripDriverName reports which driver backs the strip.
func stripDriverName(strip led.Strip) string {
	switch strip.(type) {
	case *led.Memory:
		return "memory"
	case *led.GPIO:
		return "gpio"
	default:
		return "unknown"
	}
}
