package scenekit

import (
	"os"

	"github.com/rs/zerolog"
)

// Option augments how a document is loaded and logged.
type Option func(*Content)

// WithLogger replaces the document's logger. The default writes to the
// global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Content) {
		c.log = logger
	}
}

// WithPrettyLog switches the document's logger to human-readable console
// output. Intended for interactive tooling.
func WithPrettyLog() Option {
	return func(c *Content) {
		c.log = c.log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
