// Package logger provides structured logging with trace correlation.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the global logger instance
var Logger *slog.Logger = slog.Default()

// GlobalContext is the global ContextLogger instance
var GlobalContext = NewContextLogger(Logger)

// Options controls logger initialization.
type Options struct {
	Level       string
	// Format is "json" or "text". Anything else falls back to JSON.
	Format      string
	Output      io.Writer
	OTelEnabled bool
	ServiceName string
}

// Init initializes a logger with trace context support
func Init(opts Options) *slog.Logger {
	level := parseLevel(opts.Level)
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var handler slog.Handler = NewTraceContextHandler(newBaseHandler(out, opts.Format, level))
	if opts.OTelEnabled {
		handler = NewMultiHandler(handler, NewOTelHandler(opts.ServiceName))
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
	GlobalContext = NewContextLogger(Logger)

	Logger.Info("Logger initialized", "level", level.String(), "format", formatName(opts.Format), "otel", opts.OTelEnabled)

	return Logger
}

// InitLogger initializes the logger with defaults from the environment.
func InitLogger() *slog.Logger {
	return Init(Options{Level: os.Getenv("LOG_LEVEL"), Format: os.Getenv("LOG_FORMAT")})
}

func newBaseHandler(out io.Writer, format string, level slog.Level) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatName(format) == "text" {
		return slog.NewTextHandler(out, handlerOpts)
	}
	return slog.NewJSONHandler(out, handlerOpts)
}

func formatName(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return "text"
	}
	return "json"
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
