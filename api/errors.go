// Package api holds the shared contracts of the hioload-tcpgen engine:
// control-channel command bytes, the reactor abstraction driving each
// worker's event loop, worker exit reports, and common error values.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package api

import "errors"

// Common errors used across the library.
var (
	// ErrNotSupported marks functionality unavailable on this platform.
	ErrNotSupported = errors.New("tcpgen: not supported on this platform")

	// ErrEmptyPool rejects an address pool with no entries.
	ErrEmptyPool = errors.New("tcpgen: address pool is empty")

	// ErrEmptyPayload rejects a zero-length payload buffer.
	ErrEmptyPayload = errors.New("tcpgen: payload is empty")

	// ErrEngineStopped is returned for control writes after the handle
	// has been closed.
	ErrEngineStopped = errors.New("tcpgen: engine stopped")

	// ErrFDAlreadyRegistered is returned when registering a descriptor
	// twice with the same reactor.
	ErrFDAlreadyRegistered = errors.New("tcpgen: fd already registered")

	// ErrFDNotRegistered is returned for operations on a descriptor the
	// reactor does not know.
	ErrFDNotRegistered = errors.New("tcpgen: fd not registered")
)
