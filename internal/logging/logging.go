// Package logging builds the application's structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Boetie78/website-audits-sub000/internal/config"
)

// New returns a slog.Logger configured from LoggingConfig. When OutputPath
// is a file path the log is written there with rotation and mirrored to
// stdout; "stdout" and "stderr" write to the corresponding stream only.
func New(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer
	switch cfg.OutputPath {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o750); err != nil {
			slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error(
				"failed to create log directory", "path", cfg.OutputPath, "error", err,
			)
			out = os.Stdout
			break
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.OutputPath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotator)
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == "text" {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}
