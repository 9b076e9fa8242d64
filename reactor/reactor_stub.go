//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub for platforms without a poll-mode backend.

package reactor

import "github.com/momentics/hioload-tcpgen/api"

// New reports that no reactor backend exists on this platform.
func New() (api.Reactor, error) {
	return nil, api.ErrNotSupported
}
