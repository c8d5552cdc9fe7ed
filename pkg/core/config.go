package core

import (
	"time"
)

// TimeoutConfig bounds the component callbacks the router invokes.
type TimeoutConfig struct {
	ComponentMount  time.Duration
	ComponentRender time.Duration
	ComponentEvent  time.Duration
	ComponentInfo   time.Duration
}

// DefaultTimeoutConfig returns the default callback timeouts.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		ComponentMount:  5 * time.Second,
		ComponentRender: 2 * time.Second,
		ComponentEvent:  3 * time.Second,
		ComponentInfo:   3 * time.Second,
	}
}

// orDefault returns d, or def when d is not positive.
func orDefault(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}

// Normalize fills unset fields with defaults.
func (c TimeoutConfig) Normalize() TimeoutConfig {
	def := DefaultTimeoutConfig()
	return TimeoutConfig{
		ComponentMount:  orDefault(c.ComponentMount, def.ComponentMount),
		ComponentRender: orDefault(c.ComponentRender, def.ComponentRender),
		ComponentEvent:  orDefault(c.ComponentEvent, def.ComponentEvent),
		ComponentInfo:   orDefault(c.ComponentInfo, def.ComponentInfo),
	}
}
