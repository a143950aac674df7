// Package logging builds the zerolog loggers used across tada.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger that writes JSON lines to file at the given level.
//
// The terminal belongs to the UI, so an empty file yields a disabled logger
// instead of one writing to stdout. The returned func closes the file.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	if file == "" {
		return zerolog.Nop(), closer, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}
	closer = func() { _ = f.Close() }

	l := zerolog.New(f).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}

// Component creates a new logger with a component identifier.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
