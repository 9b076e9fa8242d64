//go:build linux
// +build linux

// File: engine/control.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Write end of the shared control pipe. Writes block when the pipe is
// full, which is the natural backpressure on command issue rate.

package engine

import (
	"bytes"
	"errors"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-tcpgen/api"
)

// pipeControl implements api.Control over the pipe's write descriptor.
type pipeControl struct {
	mu     sync.Mutex
	fd     int
	closed bool
}

// Write pushes raw command bytes into the channel, retrying interrupted
// and partial writes until everything is queued.
func (p *pipeControl) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, api.ErrEngineStopped
	}
	total := 0
	for total < len(b) {
		n, err := unix.Write(p.fd, b[total:])
		if n > 0 {
			total += n
		}
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return total, err
		}
	}
	return total, nil
}

// RequestConnection asks some worker to open one connection.
func (p *pipeControl) RequestConnection() error {
	_, err := p.Write([]byte{api.CmdConnect})
	return err
}

// RequestConnections asks for n connections with a single write.
func (p *pipeControl) RequestConnections(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := p.Write(bytes.Repeat([]byte{api.CmdConnect}, n))
	return err
}

// TerminateWorker asks exactly one worker to begin graceful shutdown.
func (p *pipeControl) TerminateWorker() error {
	_, err := p.Write([]byte{api.CmdTerminate})
	return err
}

// Close shuts the write side. Workers observe end-of-file on their next
// read and terminate. Closing twice is harmless.
func (p *pipeControl) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return unix.Close(p.fd)
}
