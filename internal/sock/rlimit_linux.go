//go:build linux
// +build linux

// File: internal/sock/rlimit_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sock

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MaxOpenFiles returns the current soft limit on open file
// descriptors. Used for operator-facing diagnostics when the
// descriptor table fills up.
func MaxOpenFiles() (uint64, error) {
	var lim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		return 0, fmt.Errorf("getrlimit RLIMIT_NOFILE: %w", err)
	}
	return lim.Cur, nil
}

// RaiseFileLimit lifts the soft RLIMIT_NOFILE up to the hard limit and
// returns the resulting soft value. High connection counts exhaust the
// default soft limit almost immediately.
func RaiseFileLimit() (uint64, error) {
	var lim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		return 0, fmt.Errorf("getrlimit RLIMIT_NOFILE: %w", err)
	}
	if lim.Cur >= lim.Max {
		return lim.Cur, nil
	}
	lim.Cur = lim.Max
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		return 0, fmt.Errorf("setrlimit RLIMIT_NOFILE: %w", err)
	}
	return lim.Cur, nil
}
