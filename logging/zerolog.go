// Package logging provides a zerolog-backed implementation of the printf
// style logger the auth and cache packages expect.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Pretty enables human-friendly console output. Leave false in
	// production to emit pure JSON.
	Pretty bool
	// Output is the writer logs are sent to. Defaults to os.Stdout.
	Output io.Writer
	// Component tags every line, e.g. "auth.session".
	Component string
}

// Adapter satisfies the Logger interfaces in the auth and cache packages.
type Adapter struct {
	log zerolog.Logger
}

// New builds an Adapter from the given options.
func New(opts Options) *Adapter {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log := zerolog.New(out).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()

	if opts.Component != "" {
		log = log.With().Str("component", opts.Component).Logger()
	}

	return &Adapter{log: log}
}

// WithComponent derives a logger tagged for a subsystem.
func (a *Adapter) WithComponent(name string) *Adapter {
	return &Adapter{log: a.log.With().Str("component", name).Logger()}
}

func (a *Adapter) Debug(format string, args ...any) {
	a.log.Debug().Msgf(format, args...)
}

func (a *Adapter) Info(format string, args ...any) {
	a.log.Info().Msgf(format, args...)
}

func (a *Adapter) Error(format string, args ...any) {
	a.log.Error().Msgf(format, args...)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
