// File: internal/loop/metrics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide counters shared by all workers. Plain atomics, updated on
// the hot path; the snapshot view is for monitoring only and makes no
// cross-counter consistency promise.

package loop

import "sync/atomic"

// Metrics aggregates activity across every worker of one engine.
type Metrics struct {
	CmdConnects   atomic.Int64
	CmdTerminates atomic.Int64
	CmdUnknown    atomic.Int64

	ConnAttempts atomic.Int64
	ConnsOpened  atomic.Int64
	ConnsClosed  atomic.Int64
	ConnFailures atomic.Int64

	BytesSent atomic.Uint64
}

// Snapshot returns the current counter values keyed for monitoring.
func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"cmd_connects":   m.CmdConnects.Load(),
		"cmd_terminates": m.CmdTerminates.Load(),
		"cmd_unknown":    m.CmdUnknown.Load(),
		"conn_attempts":  m.ConnAttempts.Load(),
		"conns_opened":   m.ConnsOpened.Load(),
		"conns_closed":   m.ConnsClosed.Load(),
		"conn_failures":  m.ConnFailures.Load(),
		"bytes_sent":     m.BytesSent.Load(),
	}
}
