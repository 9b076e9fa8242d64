// File: api/control.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Control-channel contract between the coordinator and the worker pool.

package api

import "io"

// Command bytes understood by workers. Each byte written into the control
// channel is consumed by exactly one worker: whichever event loop the kernel
// wakes first wins the read. Any other byte is logged and discarded.
const (
	// CmdConnect asks some worker to open one new outbound connection.
	CmdConnect byte = 'c'

	// CmdTerminate asks some worker to begin graceful termination. One byte
	// terminates one worker; the coordinator must send as many as there are
	// workers to stop them all.
	CmdTerminate byte = 'b'
)

// Control is the write end of the shared control channel. It is safe for
// concurrent use by multiple coordinator goroutines; writes block when the
// channel is full, which is the natural backpressure on command issue rate.
//
// Closing the handle closes the channel's write side. Workers observe
// end-of-file on their next read and begin graceful termination, so Close
// doubles as a broadcast shutdown request.
type Control interface {
	io.Writer
	io.Closer

	// RequestConnection writes a single CmdConnect byte.
	RequestConnection() error

	// RequestConnections writes n CmdConnect bytes.
	RequestConnections(n int) error

	// TerminateWorker writes a single CmdTerminate byte.
	TerminateWorker() error
}
