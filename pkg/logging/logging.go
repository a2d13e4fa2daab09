// Package logging sets up the process-wide slog logger. Every entry carries
// the service name, build version and a per-run session ID so log lines from
// one terminal session can be grouped.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"knowva_cli/pkg/config"
	"knowva_cli/pkg/version"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	serviceName    = "knowva_cli"
	defaultLogFile = serviceName + ".log"

	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// Init installs a logger writing to a rotating file as the slog default.
// The terminal belongs to the UI, so nothing is written to stdout or stderr.
// When the log directory cannot be created the returned logger discards
// everything and the error is reported to the caller.
func Init(cfg config.Config) (*slog.Logger, error) {
	out, err := openWriter(cfg.LogFile)

	h := newHandler(cfg.LogFormat, out, &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)})
	logger := slog.New(h).With(
		slog.String("service", serviceName),
		slog.String("version", version.Summary()),
		slog.String("session", uuid.NewString()),
	)
	slog.SetDefault(logger)
	return logger, err
}

// logPath returns the file Init writes to for a configured path.
func logPath(configured string) string {
	if p := strings.TrimSpace(configured); p != "" {
		return p
	}
	return filepath.Join(config.BaseDir(), "logs", defaultLogFile)
}

func openWriter(configured string) (io.Writer, error) {
	path := logPath(configured)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return io.Discard, err
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}, nil
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
