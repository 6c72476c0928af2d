package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a deliberately small, framework-agnostic logging interface.
// Components depend on this rather than on slog directly so tests can swap
// in a recording double.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning.
	Warn(msg string, fields ...Field)

	// Error logs an error.
	Error(msg string, fields ...Field)

	// With returns a child logger with persistent fields.
	With(fields ...Field) Logger
}

// Field is a simple key/value pair for structured logging fields.
type Field struct {
	Key   string
	Value interface{}
}

// SlogLogger implements Logger on top of a *slog.Logger.
type SlogLogger struct {
	l *slog.Logger
}

// Options controls how NewLogger builds its handler.
type Options struct {
	// Format is "json" or "text". Anything else falls back to text.
	Format string
	// Level is "debug", "info", "warn" or "error". Empty means warn.
	Level string
	// App names the program and is attached to every record as "app" when
	// non-empty. Packages tag their own records with "component".
	App string
}

// NewLogger returns a Logger writing to w. The visit body goes to stdout, so
// callers normally pass os.Stderr here.
func NewLogger(w io.Writer, opts Options) *SlogLogger {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		lvl = slog.LevelWarn
	}

	hopts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}

	l := slog.New(handler)
	if opts.App != "" {
		l = l.With("app", opts.App)
	}
	return &SlogLogger{l: l}
}

// ParseLevel maps a config string onto a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", level)
	}
}

func (s *SlogLogger) Debug(msg string, fields ...Field) {
	s.l.Debug(msg, attrs(fields)...)
}

func (s *SlogLogger) Info(msg string, fields ...Field) {
	s.l.Info(msg, attrs(fields)...)
}

func (s *SlogLogger) Warn(msg string, fields ...Field) {
	s.l.Warn(msg, attrs(fields)...)
}

func (s *SlogLogger) Error(msg string, fields ...Field) {
	s.l.Error(msg, attrs(fields)...)
}

func (s *SlogLogger) With(fields ...Field) Logger {
	return &SlogLogger{l: s.l.With(attrs(fields)...)}
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(string, ...Field) {}
func (Nop) Info(string, ...Field)  {}
func (Nop) Warn(string, ...Field)  {}
func (Nop) Error(string, ...Field) {}
func (n Nop) With(...Field) Logger { return n }
