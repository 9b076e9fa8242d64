//go:build !linux
// +build !linux

// File: engine/engine_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package engine

import (
	"github.com/momentics/hioload-tcpgen/api"
	"github.com/momentics/hioload-tcpgen/remote"
)

// Engine is a placeholder on platforms without epoll support.
type Engine struct{}

// Start is unsupported off Linux.
func Start(pool *remote.Pool, data []byte, opts ...Option) (*Engine, error) {
	return nil, api.ErrNotSupported
}

func (e *Engine) Control() api.Control     { return nil }
func (e *Engine) Workers() int             { return 0 }
func (e *Engine) Stats() map[string]any    { return nil }
func (e *Engine) Wait() []api.WorkerReport { return nil }

func (e *Engine) Shutdown() ([]api.WorkerReport, error) {
	return nil, api.ErrNotSupported
}
