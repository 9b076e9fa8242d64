// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Defines the abstract interface for the per-worker event demultiplexer
// that drives non-blocking socket I/O (epoll on Linux).

package api

// IOEvents is a bitmask of readiness conditions reported for a descriptor.
type IOEvents uint32

const (
	// EventRead indicates the descriptor is ready for reading.
	EventRead IOEvents = 1 << iota
	// EventWrite indicates the descriptor is ready for writing.
	EventWrite
	// EventError indicates an error condition on the descriptor.
	EventError
	// EventHangup indicates the peer closed its end of the connection.
	EventHangup
)

// IOCallback is invoked by the reactor when a registered descriptor
// becomes ready. It runs on the reactor's polling goroutine.
type IOCallback func(events IOEvents)

// Reactor multiplexes readiness notifications for registered descriptors
// and dispatches them to callbacks, one event at a time.
//
// A Reactor instance belongs to exactly one worker goroutine: Register,
// Modify, Unregister and Poll must all be called from that goroutine.
// This contract removes internal locking from the hot path.
type Reactor interface {
	// Register adds a descriptor with an interest set and its callback.
	Register(fd int, events IOEvents, cb IOCallback) error

	// Modify replaces the interest set of a registered descriptor.
	Modify(fd int, events IOEvents) error

	// Unregister removes a descriptor. Pending events for it within the
	// current poll batch are dropped.
	Unregister(fd int) error

	// Poll blocks up to timeoutMs (-1 blocks indefinitely) for readiness,
	// dispatches callbacks inline, and returns the number of events handled.
	Poll(timeoutMs int) (int, error)

	// Close releases the poller backend. Registered descriptors are not
	// closed; their lifetime belongs to the caller.
	Close() error
}
