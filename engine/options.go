// File: engine/options.go
// Package engine defines functional options for engine startup.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// Option customizes engine initialization.
type Option func(*Config)

// WithWorkers overrides CPU detection with a fixed worker count.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithLogger replaces the default stderr logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithConnectTimeout sets the pending-connect deadline. Zero disables
// the deadline entirely.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ConnectTimeout = d
	}
}

// WithDeadThreshold sets how many all-failed attempts an address
// accrues before selection starts skipping it.
func WithDeadThreshold(n int64) Option {
	return func(c *Config) {
		c.DeadThreshold = n
	}
}

// WithTCPNoDelay toggles TCP_NODELAY on outbound sockets.
func WithTCPNoDelay(enable bool) Option {
	return func(c *Config) {
		c.NoDelay = enable
	}
}

// WithPinWorkers toggles pinning worker threads to CPUs.
func WithPinWorkers(enable bool) Option {
	return func(c *Config) {
		c.PinWorkers = enable
	}
}
