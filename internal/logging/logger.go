// Package logging defines the minimal structured-logging interface used by the HTTP
// layer and the server bootstrap. The core engine does not log.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are key-value
// pairs, e.g.:
//
//	log.Info(ctx, "listening", "addr", addr)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}
