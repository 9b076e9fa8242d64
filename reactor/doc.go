// Package reactor provides the poll-mode event demultiplexer behind each
// worker's event loop: an epoll(7) implementation on Linux and a stub that
// reports api.ErrNotSupported elsewhere.
//
// A reactor instance is single-goroutine by contract (one per worker);
// see api.Reactor for the ownership rules.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package reactor
