// Package logging defines the structured-logging interface used across the
// service and its slog and zerolog backends.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rs/zerolog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are key-value pairs:
//
//	log.Info(ctx, "user created", "id", id, "email", email)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

// Supported backends for New.
const (
	BackendSlogJSON = "slog-json"
	BackendSlogText = "slog-text"
	BackendZerolog  = "zerolog"
)

// New builds a Logger writing to w with the named backend.
func New(backend string, w io.Writer) (Logger, error) {
	switch backend {
	case BackendSlogJSON, "":
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil))), nil
	case BackendSlogText:
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, nil))), nil
	case BackendZerolog:
		return NewZerologLogger(zerolog.New(w).With().Timestamp().Logger()), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
