// Package log configures the structured logger shared by the commands.
//
// A [Logger] wraps [slog.Logger] with a text or JSON handler chosen at
// construction. The zero value discards everything.
package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Level is the minimum severity a Logger emits.
type Level slog.Level

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// DefaultLevel keeps routine progress quiet.
const DefaultLevel = LevelWarn

func (l Level) String() string { return strings.ToLower(slog.Level(l).String()) }

// ParseLevel parses "debug", "info", "warn" or "error" in any case. Other
// values yield [DefaultLevel].
func ParseLevel(s string) Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return DefaultLevel
	}
	return Level(l)
}

// Format is the encoding of log records.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is human readable.
const DefaultFormat = FormatText

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses "text" or "json". Other values yield [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return DefaultFormat
	}
}

type config struct {
	output io.Writer
	level  Level
	format Format
}

// Option adjusts a Logger under construction.
type Option func(config) config

// WithLevel sets the minimum level.
func WithLevel(l Level) Option {
	return func(c config) config { c.level = l; return c }
}

// WithFormat sets the record encoding.
func WithFormat(f Format) Option {
	return func(c config) config { c.format = f; return c }
}

// Logger is a configured slog.Logger.
type Logger struct {
	*slog.Logger
	config
}

// Make returns a Logger writing to w, by default at [DefaultLevel] in
// [DefaultFormat].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := config{output: w, level: DefaultLevel, format: DefaultFormat}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// Discard returns a Logger that drops every record.
func Discard() Logger {
	return Make(io.Discard, WithLevel(LevelError+1))
}

// Level returns the minimum level.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}
	return l.level
}

// Format returns the record encoding.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}
	return l.format
}

// With returns a Logger that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}
	return Logger{Logger: slog.New(l.Handler().WithAttrs(attrs)), config: l.config}
}

// Enabled reports whether records at level are emitted.
func (l Logger) Enabled(level Level) bool {
	return l.Logger != nil && l.Logger.Enabled(context.Background(), slog.Level(level))
}

// Debug logs at debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) { l.log(LevelDebug, msg, attrs) }

// Info logs at info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) { l.log(LevelInfo, msg, attrs) }

// Warn logs at warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) { l.log(LevelWarn, msg, attrs) }

// Error logs at error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) { l.log(LevelError, msg, attrs) }

func (l Logger) log(level Level, msg string, attrs []slog.Attr) {
	if l.Logger == nil {
		return
	}
	l.LogAttrs(context.Background(), slog.Level(level), msg, attrs...)
}

func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.Level(c.level)}
	if c.format == FormatJSON {
		return slog.NewJSONHandler(c.output, opts)
	}
	return slog.NewTextHandler(c.output, opts)
}
