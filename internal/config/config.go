// Package config handles application configuration and setup.
package config

import (
	"runtime"

	"github.com/retroenv/nesrominfo/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger for the verbosity selected by the flags.
// Debug logging takes precedence over quiet mode.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case flags.Debug:
		cfg.Level = log.DebugLevel
	case flags.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Normalize fills in defaults for options that were not set.
func Normalize(opts *options.Program) {
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
}
