// Package logging provides structured logging for Strand Core on top of
// log/slog.
//
// Records are JSON in production and text during development, carry the
// service name and version on every entry, and are filtered by the level
// set in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Components derive their own logger with With:
//
//	log := logging.New(cfg.Logging, version)
//	playerLog := log.With("component", "player")
//	playerLog.Info("animation started", "animation", "breathe")
//
// Never log secrets or broker credentials.
package logging
