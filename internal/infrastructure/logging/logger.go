package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
)

// SlogLogger adapts log/slog to the application's PlanLogger interface
type SlogLogger struct {
	logger *slog.Logger
	closer io.Closer
}

// NewLogger builds a logger from configuration.
// Call Close when the logger writes to a file.
func NewLogger(cfg config.LoggingConfig) (*SlogLogger, error) {
	var (
		out    io.Writer
		closer io.Closer
	)

	switch cfg.Output {
	case "stderr", "":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("logging: file_path is required when output is file")
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logging: failed to open log file: %w", err)
		}
		out = f
		closer = f
	default:
		return nil, fmt.Errorf("logging: unsupported output %q", cfg.Output)
	}

	return NewLoggerWithWriter(out, cfg, closer), nil
}

// NewLoggerWithWriter builds a logger writing to w
func NewLoggerWithWriter(w io.Writer, cfg config.LoggingConfig, closer io.Closer) *SlogLogger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &SlogLogger{logger: slog.New(handler), closer: closer}
}

// Log implements common.PlanLogger
func (l *SlogLogger) Log(level, message string, metadata map[string]interface{}) {
	args := make([]any, 0, len(metadata)*2)
	for key, value := range metadata {
		args = append(args, key, value)
	}
	l.logger.Log(context.Background(), parseLevel(level), message, args...)
}

// Close releases the log file, if any
func (l *SlogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
