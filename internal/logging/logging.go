// Package logging constructs the zerolog loggers used across the binaries.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON lines to stdout, tagged with the
// component name.
func New(component string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().
		Timestamp().
		Str("component", component).
		Logger()
}
