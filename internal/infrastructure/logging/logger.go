package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/strandlabs/strand-core/internal/infrastructure/config"
)

// serviceName is stamped on every record so logs from several controllers
// can be told apart once aggregated.
const serviceName = "strand-core"

// Logger wraps *slog.Logger. Packages depend on this wrapper rather than
// on slog directly, which keeps handler setup in one place.
type Logger struct {
	*slog.Logger
}

// levels maps the config.yaml level names onto slog levels.
var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// New builds a Logger from the logging section of config.yaml. Format
// selects JSON or text records, output selects stdout or stderr, and
// every record carries the service name and version.
func New(cfg config.LoggingConfig, version string) *Logger {
	out := io.Writer(os.Stdout)
	if strings.EqualFold(cfg.Output, "stderr") {
		out = os.Stderr
	}
	return &Logger{Logger: slog.New(newHandler(out, cfg, version))}
}

func newHandler(w io.Writer, cfg config.LoggingConfig, version string) slog.Handler {
	opts := &slog.HandlerOptions{Level: levelFor(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return h.WithAttrs([]slog.Attr{
		slog.String("service", serviceName),
		slog.String("version", version),
	})
}

// levelFor resolves a config level name, defaulting to info when the name
// is unknown so a typo in config.yaml never silences the log.
func levelFor(name string) slog.Level {
	if lvl, ok := levels[strings.ToLower(name)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// With returns a Logger carrying extra default attributes, typically a
// component tag:
//
//	playerLog := log.With("component", "player")
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default is the bootstrap logger used before config.yaml has been read:
// JSON to stdout at info level.
func Default() *Logger {
	return New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}, "dev")
}
