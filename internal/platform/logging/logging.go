// Package logging builds the service's slog logger and carries request-scoped
// loggers through context.
//
//	logger := logging.New(cfg.Log, os.Stderr, slog.String("service", name))
//	ctx = logging.WithLogger(ctx, logger.With(slog.String("request_id", id)))
//	logging.FromContext(ctx).InfoContext(ctx, "collection loaded")
//
// Error logs name the operation and carry the full error chain:
//
//	logger.ErrorContext(ctx, "fetch attempt failed",
//	    slog.String("operation", "loader.fetch"),
//	    slog.Int("attempt", attempt),
//	    slog.Any("error", err),
//	)
//
// Every record passes through the redaction layer in redact.go before it is
// written.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/jsamuelsen11/company-directory/internal/platform/config"
)

type contextKey struct{}

// New returns a logger writing to w in the configured format ("text", or JSON
// for anything else). Debug level also records the source location. attrs
// are attached to every record.
func New(cfg config.LogConfig, w io.Writer, attrs ...slog.Attr) *slog.Logger {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   level <= slog.LevelDebug,
		ReplaceAttr: redactAttr,
	}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	if len(attrs) > 0 {
		h = h.WithAttrs(attrs)
	}
	return slog.New(h)
}

// ParseLevel reads a level name such as "debug" or "WARN". Anything it cannot
// read yields info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// With returns a context whose logger carries args in addition to whatever
// the context logger already had.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns logger, or a discarding logger when it is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}
