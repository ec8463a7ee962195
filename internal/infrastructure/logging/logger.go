package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/andrescamacho/cardarb-go/internal/domain/pricing"
	"github.com/andrescamacho/cardarb-go/internal/infrastructure/config"
)

// New builds a slog logger from configuration. The returned closer releases
// the log file when output is "file" and is a no-op otherwise.
func New(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}

	return NewWithWriter(cfg, out), closer, nil
}

// NewWithWriter builds a slog logger writing to w.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SlogAdapter implements the pricing Logger port on top of slog.
type SlogAdapter struct {
	logger *slog.Logger
}

func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Log writes one record. Metadata keys are emitted in sorted order.
func (a *SlogAdapter) Log(level, message string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, metadata[k]))
	}
	a.logger.Log(context.Background(), portLevel(level), message, attrs...)
}

func portLevel(level string) slog.Level {
	switch level {
	case pricing.LevelDebug:
		return slog.LevelDebug
	case pricing.LevelWarning:
		return slog.LevelWarn
	case pricing.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
