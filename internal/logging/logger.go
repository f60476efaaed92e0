// Package logging is the structured logger of twr. The zap backend writes
// JSON lines and the slog backend writes text, either to stderr or to a
// size-rotated file.
package logging

import "context"

// Logger takes a message plus alternating key/value pairs:
//
//	log.Info(ctx, "summary ready", "title", title, "language", lang)
//
// A request id stored in ctx with WithRequestID is added to every record.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries args.
	With(args ...any) Logger
}
