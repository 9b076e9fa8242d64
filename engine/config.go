// File: engine/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package engine

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds parameters immutable per run. Zero values defer to the
// defaults below.
type Config struct {
	Workers        int           // Worker event loops; 0 means one per available CPU
	DeadThreshold  int64         // Attempts before an always-failing address is skipped
	ConnectTimeout time.Duration // Deadline for pending connects; 0 disables it
	SweepInterval  time.Duration // How often pending-connect deadlines are checked
	NoDelay        bool          // Set TCP_NODELAY on every outbound socket
	PinWorkers     bool          // Pin each worker thread to a CPU
	Logger         zerolog.Logger
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		Workers:        0,                      // detect CPUs at start
		DeadThreshold:  10,                     // skip after >10 attempts, all failed
		ConnectTimeout: 10 * time.Second,       // fail connects stuck longer than this
		SweepInterval:  500 * time.Millisecond, // deadline check cadence
		NoDelay:        true,                   // latency over batching
		PinWorkers:     false,                  // scheduler placement by default
		Logger:         zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
}
