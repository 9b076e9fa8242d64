//go:build linux
// +build linux

// File: internal/sock/sock_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sock

import (
	"errors"

	"golang.org/x/sys/unix"
)

// OpenStream creates a non-blocking TCP socket for the given address
// family. Creation failures and connect failures are reported
// separately because callers account for them differently.
func OpenStream(family int, noDelay bool) (int, error) {
	fd, err := unix.Socket(family, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, unix.IPPROTO_TCP)
	if err != nil {
		return -1, err
	}
	if noDelay {
		// Best effort: a socket that cannot take TCP_NODELAY can
		// still carry traffic.
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	}
	return fd, nil
}

// BeginConnect initiates a non-blocking connect on fd. inProgress
// reports that the attempt is still in flight and its outcome will
// arrive as write readiness; it is the expected outcome, not an error.
// The descriptor stays open on failure; closing it is the caller's job.
func BeginConnect(fd int, sa unix.Sockaddr) (inProgress bool, err error) {
	switch err := unix.Connect(fd, sa); {
	case err == nil:
		return false, nil
	case errors.Is(err, unix.EINPROGRESS), errors.Is(err, unix.EINTR):
		return true, nil
	default:
		return false, err
	}
}

// SocketError drains the pending error slot of fd. A zero errno maps
// to nil.
func SocketError(fd int) error {
	v, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return err
	}
	if v == 0 {
		return nil
	}
	return unix.Errno(v)
}

// IsTableFull reports whether err means the process or system ran out
// of file descriptors. Such a state never heals on retry within the
// same run, so callers treat it as fatal.
func IsTableFull(err error) bool {
	return errors.Is(err, unix.ENFILE) || errors.Is(err, unix.EMFILE)
}

// IsTransient reports whether a read or write on a non-blocking socket
// should simply be retried on the next readiness event.
func IsTransient(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EINTR)
}
