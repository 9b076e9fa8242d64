//go:build linux
// +build linux

// File: internal/loop/connection.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Outbound connection state machine. A connection is owned by exactly one
// worker and lives entirely on that worker's goroutine; all fields are
// accessed without synchronization.

package loop

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-tcpgen/api"
	"github.com/momentics/hioload-tcpgen/internal/sock"
)

// connection tracks one outbound socket from connect initiation to
// teardown. remote and slot are stable indexes into the worker's pool
// and arena; no back-pointers are kept.
type connection struct {
	fd     int
	remote int // pool / health table index
	slot   int // arena index, assigned by adopt

	offset int    // payload cursor; Chunk wraps it past the buffer end
	sent   uint64 // bytes transmitted over this connection's lifetime

	established bool
	deadline    time.Time // pending-connect deadline; zero means none
}

// onWritable services one write-readiness event. The first such event
// after a non-blocking connect doubles as the connect outcome: a clean
// write means established, an error surfaces the connect failure.
func (w *Worker) onWritable(c *connection, _ api.IOEvents) {
	if w.terminating {
		// Termination outranks transmission on every event.
		w.teardown(c)
		return
	}

	chunk, base := w.source.Chunk(c.offset)
	n, err := unix.Write(c.fd, chunk)
	if err != nil {
		switch {
		case sock.IsTransient(err):
			// Retry on the next readiness event.
		case errors.Is(err, unix.EPIPE), errors.Is(err, unix.ECONNRESET):
			w.health.Entry(c.remote).RecordFailure()
			w.metrics.ConnFailures.Add(1)
			w.log.Warn().Str("remote", w.pool.String(c.remote)).Msg("connection closed by peer")
			w.teardown(c)
		default:
			// Most commonly a failed asynchronous connect reporting in.
			w.connectFailed(c.remote, err)
			w.teardown(c)
		}
		return
	}

	if !c.established {
		c.established = true
		c.deadline = time.Time{}
		w.pendingConnects--
	}
	c.offset = base + n
	c.sent += uint64(n)
	w.metrics.BytesSent.Add(uint64(n))
}
