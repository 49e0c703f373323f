// Package logging is the structured logger shared by eqt's commands, the
// viewer and the file watcher. Entries are JSON on stderr unless a console
// format is asked for. A nil *Logger is a valid, silent logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New. The zero value logs JSON at info level to stderr.
type Options struct {
	Level         string    // trace, debug, info, warn or error; case-insensitive
	HumanReadable bool      // colourless console lines instead of JSON
	Writer        io.Writer // nil means os.Stderr, keeping stdout for command output
}

// Logger carries a configured zerolog logger.
type Logger struct {
	base zerolog.Logger
}

// New builds a Logger. An unknown level is an error.
func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	base := zerolog.New(sink(opts)).Level(level).With().Timestamp().Logger()
	return &Logger{base: base}, nil
}

func parseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", name, err)
	}
	return level, nil
}

// sink picks the destination and, for console output, wraps it in a
// zerolog.ConsoleWriter with short wall-clock timestamps.
func sink(opts Options) io.Writer {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	if !opts.HumanReadable {
		return w
	}
	return zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.Kitchen}
}

// Nop discards every entry.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// With returns a derived logger carrying key=value.
func (l *Logger) With(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Interface(key, value).Logger()}
}

// WithFields is With for several keys at once.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}
	return &Logger{base: builder.Logger()}
}

// Debug, Info and Warn write a plain entry at their level.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Msg(msg)
}

func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
}

func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
}

// Error writes an error entry including err when non-nil.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}

// Warnf is Warn with an error attached, for recoverable failures.
func (l *Logger) Warnf(err error, msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Err(err).Msg(msg)
}
