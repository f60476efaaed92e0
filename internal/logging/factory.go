package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	BackendZap  = "zap"
	BackendSlog = "slog"
)

// Options selects the logging backend and its destination.
type Options struct {
	// Backend is BackendZap (JSON lines) or BackendSlog (text).
	Backend string
	// Level is one of debug, info, warn, error.
	Level string
	// File, when set, sends logs to a size-rotated file instead of stderr.
	File string
}

// New builds a Logger from opts. The returned closer flushes and releases
// the log destination.
func New(opts Options) (Logger, func() error, error) {
	w, closeWriter := writer(opts.File)

	switch opts.Backend {
	case "", BackendZap:
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(levelOrDefault(opts.Level))); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), level)
		zl := NewZapLogger(zap.New(core))
		return zl, func() error {
			_ = zl.Sync()
			return closeWriter()
		}, nil

	case BackendSlog:
		var level slog.Level
		if err := level.UnmarshalText([]byte(levelOrDefault(opts.Level))); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
		return NewSlogLogger(slog.New(h)), closeWriter, nil

	default:
		return nil, nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

func levelOrDefault(level string) string {
	if level == "" {
		return "info"
	}
	return level
}

func writer(file string) (io.Writer, func() error) {
	if file == "" {
		return os.Stderr, func() error { return nil }
	}
	rotator := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	return rotator, rotator.Close
}
