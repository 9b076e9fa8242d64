//go:build !linux
// +build !linux

// File: internal/sock/rlimit_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sock

import "github.com/momentics/hioload-tcpgen/api"

// MaxOpenFiles is unsupported off Linux.
func MaxOpenFiles() (uint64, error) {
	return 0, api.ErrNotSupported
}

// RaiseFileLimit is unsupported off Linux.
func RaiseFileLimit() (uint64, error) {
	return 0, api.ErrNotSupported
}
