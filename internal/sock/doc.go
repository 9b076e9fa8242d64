// File: internal/sock/doc.go
// Package sock
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Low-level socket plumbing for the traffic generator: non-blocking
// stream socket creation, connect initiation, sockaddr conversion and
// file-descriptor limit management. Linux-only; other platforms get
// ErrNotSupported stubs.

package sock
