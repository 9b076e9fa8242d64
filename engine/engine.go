//go:build linux
// +build linux

// File: engine/engine.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package engine

import (
	"errors"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-tcpgen/affinity"
	"github.com/momentics/hioload-tcpgen/api"
	"github.com/momentics/hioload-tcpgen/internal/loop"
	"github.com/momentics/hioload-tcpgen/payload"
	"github.com/momentics/hioload-tcpgen/remote"
)

// Engine aggregates the worker pool behind the control handle.
type Engine struct {
	ctl       *pipeControl
	controlRD int

	workers []*loop.Worker
	reports []api.WorkerReport
	wg      sync.WaitGroup
	rdOnce  sync.Once

	metrics *loop.Metrics
}

// Start validates the inputs, builds the control channel and launches
// one worker per available CPU (or per WithWorkers). Invalid inputs
// come back as errors; a broken runtime environment (control channel
// or event loop creation failing) is fatal to the process.
func Start(pool *remote.Pool, data []byte, opts ...Option) (*Engine, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if pool == nil || pool.Len() == 0 {
		return nil, api.ErrEmptyPool
	}
	src, err := payload.NewSource(data)
	if err != nil {
		return nil, err
	}

	nworkers := cfg.Workers
	if nworkers <= 0 {
		nworkers = affinity.AvailableCPUs()
	}
	log := cfg.Logger
	log.Info().
		Int("workers", nworkers).
		Int("remotes", pool.Len()).
		Int("payload_bytes", src.Len()).
		Msg("starting traffic engine")

	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		log.Fatal().Err(err).Msg("cannot create control channel")
	}
	if err := unix.SetNonblock(fds[0], true); err != nil {
		log.Fatal().Err(err).Msg("cannot configure control channel")
	}

	e := &Engine{
		ctl:       &pipeControl{fd: fds[1]},
		controlRD: fds[0],
		reports:   make([]api.WorkerReport, nworkers),
		metrics:   &loop.Metrics{},
	}

	cpus := affinity.AvailableCPUs()
	for i := 0; i < nworkers; i++ {
		pin := -1
		if cfg.PinWorkers {
			pin = i % cpus
		}
		w, err := loop.NewWorker(loop.Params{
			Index:          i,
			ControlFD:      fds[0],
			Pool:           pool,
			Source:         src,
			DeadThreshold:  cfg.DeadThreshold,
			ConnectTimeout: cfg.ConnectTimeout,
			SweepInterval:  cfg.SweepInterval,
			NoDelay:        cfg.NoDelay,
			PinCPU:         pin,
			Log:            log,
			Metrics:        e.metrics,
		})
		if err != nil {
			log.Fatal().Err(err).Int("thread", i).Msg("cannot create worker event loop")
		}
		e.workers = append(e.workers, w)
	}

	e.wg.Add(len(e.workers))
	for i, w := range e.workers {
		go func(i int, w *loop.Worker) {
			defer e.wg.Done()
			e.reports[i] = w.Run()
		}(i, w)
	}
	return e, nil
}

// Control returns the command handle shared by all coordinator
// goroutines.
func (e *Engine) Control() api.Control {
	return e.ctl
}

// Workers returns the worker count; the coordinator needs it to issue
// one terminate byte per worker.
func (e *Engine) Workers() int {
	return len(e.workers)
}

// Stats returns a point-in-time snapshot of engine-wide counters.
func (e *Engine) Stats() map[string]any {
	return e.metrics.Snapshot()
}

// Wait blocks until every worker has exited and returns their reports
// ordered by thread index. Safe to call more than once.
func (e *Engine) Wait() []api.WorkerReport {
	e.wg.Wait()
	e.rdOnce.Do(func() { unix.Close(e.controlRD) })
	out := make([]api.WorkerReport, len(e.reports))
	copy(out, e.reports)
	return out
}

// Shutdown requests termination of every worker and waits for the
// reports. The control handle is closed afterwards; the engine cannot
// be reused.
func (e *Engine) Shutdown() ([]api.WorkerReport, error) {
	for range e.workers {
		if err := e.ctl.TerminateWorker(); err != nil {
			if errors.Is(err, api.ErrEngineStopped) {
				// Write end already closed: workers are terminating
				// on end-of-file.
				break
			}
			return nil, err
		}
	}
	reports := e.Wait()
	_ = e.ctl.Close()
	return reports, nil
}
