// Package logging builds the diagnostic logger with charmbracelet/log.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the diagnostic logger.
type Options struct {
	Debug           bool
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns quiet defaults: warnings and errors only.
func DefaultOptions() Options {
	return Options{
		Prefix: "todo",
	}
}

// New returns a logger writing to w. Debug records are only emitted when
// opts.Debug is set, so normal command output stays clean.
func New(w io.Writer, opts Options) *log.Logger {
	level := log.WarnLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}
