// Package config holds the conformance layer's launch options, loaded
// from XR_CONFORMANCE_* environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Options control validation behavior per category.
type Options struct {
	// Strict promotes warning findings to errors.
	Strict bool `envconfig:"STRICT" default:"false"`
	// ContinueOnError keeps the run going after the first error.
	// When false the first error aborts the run.
	ContinueOnError bool `envconfig:"CONTINUE_ON_ERROR" default:"true"`
	// EventAudit enables the event-stream auditor. Disable for
	// runtime regression triage.
	EventAudit bool `envconfig:"EVENT_AUDIT" default:"true"`
	// LogLevel selects the layer's log verbosity.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads options from the environment.
func Load() (*Options, error) {
	var opts Options
	if err := envconfig.Process("XR_CONFORMANCE", &opts); err != nil {
		return nil, fmt.Errorf("load conformance options: %w", err)
	}
	return &opts, nil
}

// LoadOrDefault reads options from the environment, falling back to
// defaults on error.
func LoadOrDefault() *Options {
	opts, err := Load()
	if err != nil {
		return Default()
	}
	return opts
}

// Default returns the default options.
func Default() *Options {
	return &Options{
		Strict:          false,
		ContinueOnError: true,
		EventAudit:      true,
		LogLevel:        "info",
	}
}
