//go:build linux
// +build linux

// File: internal/loop/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package loop

import (
	"fmt"
	"runtime"
	"time"

	"github.com/eapache/queue"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-tcpgen/affinity"
	"github.com/momentics/hioload-tcpgen/api"
	"github.com/momentics/hioload-tcpgen/internal/sock"
	"github.com/momentics/hioload-tcpgen/payload"
	"github.com/momentics/hioload-tcpgen/reactor"
	"github.com/momentics/hioload-tcpgen/remote"
)

// Params configures one worker. Pool, Source and Metrics are shared
// read-only or atomically; everything else becomes worker-local state.
type Params struct {
	Index     int
	ControlFD int

	Pool   *remote.Pool
	Source *payload.Source

	DeadThreshold  int64         // attempts before an always-failing address is skipped
	ConnectTimeout time.Duration // zero disables the pending-connect deadline
	SweepInterval  time.Duration
	NoDelay        bool
	PinCPU         int // CPU to pin the loop thread to; negative disables pinning

	Log     zerolog.Logger
	Metrics *Metrics
}

// Worker runs one event loop on one OS thread. It owns its reactor, its
// connection arena and its health table outright; no other goroutine
// touches them.
type Worker struct {
	idx     int
	reactor api.Reactor
	pool    *remote.Pool
	source  *payload.Source
	health  *remote.HealthTable
	picker  *remote.Picker

	controlFD int

	connectTimeout time.Duration
	sweepInterval  time.Duration
	noDelay        bool
	pinCPU         int

	log     zerolog.Logger
	metrics *Metrics

	conns []*connection // arena; nil entries are free slots
	free  *queue.Queue  // recycled arena indexes

	openConns       int
	pendingConnects int
	bytesOut        uint64
	terminating     bool
}

// NewWorker allocates the worker and its reactor. The worker is inert
// until Run is called; Run must execute on a dedicated goroutine.
func NewWorker(p Params) (*Worker, error) {
	r, err := reactor.New()
	if err != nil {
		return nil, fmt.Errorf("worker %d: %w", p.Index, err)
	}
	if p.DeadThreshold <= 0 {
		p.DeadThreshold = 10
	}
	if p.SweepInterval <= 0 {
		p.SweepInterval = 500 * time.Millisecond
	}
	if p.Metrics == nil {
		p.Metrics = &Metrics{}
	}
	table := remote.NewHealthTable(p.Pool.Len())
	return &Worker{
		idx:            p.Index,
		reactor:        r,
		pool:           p.Pool,
		source:         p.Source,
		health:         table,
		picker:         remote.NewPicker(table, uint64(p.Index), p.DeadThreshold),
		controlFD:      p.ControlFD,
		connectTimeout: p.ConnectTimeout,
		sweepInterval:  p.SweepInterval,
		noDelay:        p.NoDelay,
		pinCPU:         p.PinCPU,
		log:            p.Log.With().Int("thread", p.Index).Logger(),
		metrics:        p.Metrics,
		free:           queue.New(),
	}, nil
}

// Run drives the event loop until termination and returns the worker's
// final report. The calling goroutine is locked to its OS thread for the
// duration; the thread retires with the goroutine, so a pinned affinity
// mask never leaks back into the scheduler.
func (w *Worker) Run() api.WorkerReport {
	runtime.LockOSThread()

	if w.pinCPU >= 0 {
		if err := affinity.SetAffinity(w.pinCPU); err != nil {
			w.log.Warn().Err(err).Int("cpu", w.pinCPU).Msg("cannot pin worker thread")
		}
	}

	if err := w.reactor.Register(w.controlFD, api.EventRead, w.onControl); err != nil {
		w.log.Error().Err(err).Msg("cannot watch control channel")
		return w.exit()
	}

	for {
		if w.terminating && w.openConns == 0 {
			break
		}
		timeout := -1
		if w.pendingConnects > 0 || w.terminating {
			timeout = int(w.sweepInterval / time.Millisecond)
		}
		if _, err := w.reactor.Poll(timeout); err != nil {
			w.log.Error().Err(err).Msg("event loop poll failed")
			break
		}
		w.sweepDeadlines()
	}
	return w.exit()
}

// onControl consumes at most one command byte per readiness event. The
// control descriptor is shared by every worker: whichever loop the
// kernel wakes first wins the byte, the rest see EAGAIN.
func (w *Worker) onControl(_ api.IOEvents) {
	var buf [1]byte
	n, err := unix.Read(w.controlFD, buf[:])
	if err != nil {
		if sock.IsTransient(err) {
			w.log.Debug().Msg("control byte claimed by sibling worker")
			return
		}
		w.log.Warn().Err(err).Msg("control channel read failed")
		return
	}
	if n == 0 {
		// Write end closed: broadcast termination.
		w.log.Info().Msg("control channel closed, terminating")
		w.beginTermination()
		return
	}

	switch buf[0] {
	case api.CmdConnect:
		w.metrics.CmdConnects.Add(1)
		w.startConnection()
	case api.CmdTerminate:
		w.metrics.CmdTerminates.Add(1)
		w.log.Info().Msg("terminate command received")
		w.beginTermination()
	default:
		w.metrics.CmdUnknown.Add(1)
		w.log.Warn().Uint8("cmd", buf[0]).Msg("unknown control command")
	}
}

// beginTermination flips the worker into drain mode and stops command
// intake. Unconsumed bytes stay in the channel for sibling workers.
func (w *Worker) beginTermination() {
	if w.terminating {
		return
	}
	w.terminating = true
	if err := w.reactor.Unregister(w.controlFD); err != nil {
		w.log.Warn().Err(err).Msg("cannot stop control watcher")
	}
}

// startConnection opens one outbound connection toward the next picked
// address. Every exit path below leaves the worker consistent: either
// the connection is adopted into the arena or the descriptor is closed.
func (w *Worker) startConnection() {
	idx := w.picker.Pick()
	w.health.Entry(idx).RecordAttempt()
	w.metrics.ConnAttempts.Add(1)

	sa, family := sock.Sockaddr(w.pool.At(idx))
	fd, err := sock.OpenStream(family, w.noDelay)
	if err != nil {
		if sock.IsTableFull(err) {
			limit, _ := sock.MaxOpenFiles()
			w.log.Fatal().Err(err).Uint64("open_file_limit", limit).
				Msg("socket table is full, raise the open-file limit to at least twice the intended connection count")
		}
		// Transient resource trouble; a later connect command retries.
		return
	}

	inProgress, err := sock.BeginConnect(fd, sa)
	if err != nil {
		w.connectFailed(idx, err)
		unix.Close(fd)
		return
	}

	c := &connection{fd: fd, remote: idx, slot: -1, established: !inProgress}
	if inProgress && w.connectTimeout > 0 {
		c.deadline = time.Now().Add(w.connectTimeout)
	}
	if err := w.reactor.Register(fd, api.EventWrite, func(ev api.IOEvents) { w.onWritable(c, ev) }); err != nil {
		w.log.Error().Err(err).Str("remote", w.pool.String(idx)).Msg("cannot register connection")
		unix.Close(fd)
		return
	}
	w.adopt(c)
}

// connectFailed records a failed attempt against the address. Only the
// first failure per address is logged; a persistently unreachable host
// would otherwise flood the diagnostic stream.
func (w *Worker) connectFailed(idx int, err error) {
	st := w.health.Entry(idx)
	st.RecordFailure()
	w.metrics.ConnFailures.Add(1)
	if st.Failures == 1 {
		w.log.Warn().Err(err).Str("remote", w.pool.String(idx)).Msg("connection failed")
	}
}

// adopt places the connection into the arena, reusing a free slot when
// one exists.
func (w *Worker) adopt(c *connection) {
	if w.free.Length() > 0 {
		c.slot = w.free.Remove().(int)
		w.conns[c.slot] = c
	} else {
		c.slot = len(w.conns)
		w.conns = append(w.conns, c)
	}
	w.openConns++
	if !c.established {
		w.pendingConnects++
	}
	w.metrics.ConnsOpened.Add(1)
}

// teardown removes the connection from the reactor and the arena,
// folding its byte count into the worker aggregate. The watcher is
// always unregistered before the descriptor is closed, so a reused fd
// number can never inherit a stale registration.
func (w *Worker) teardown(c *connection) {
	if err := w.reactor.Unregister(c.fd); err != nil {
		w.log.Warn().Err(err).Int("fd", c.fd).Msg("cannot unregister connection")
	}
	unix.Close(c.fd)

	w.bytesOut += c.sent
	w.openConns--
	if !c.established {
		w.pendingConnects--
	}
	w.conns[c.slot] = nil
	w.free.Add(c.slot)
	w.metrics.ConnsClosed.Add(1)
}

// sweepDeadlines fails pending connects that outlived the configured
// timeout. Established connections are never swept.
func (w *Worker) sweepDeadlines() {
	if w.pendingConnects == 0 || w.connectTimeout <= 0 {
		return
	}
	now := time.Now()
	for _, c := range w.conns {
		if c == nil || c.established || c.deadline.IsZero() || now.Before(c.deadline) {
			continue
		}
		w.connectFailed(c.remote, unix.ETIMEDOUT)
		w.teardown(c)
	}
}

// exit tears down whatever the worker still owns, closes the reactor and
// assembles the final report. The shared control descriptor is left
// open; its lifetime belongs to the engine.
func (w *Worker) exit() api.WorkerReport {
	remaining := w.openConns
	for _, c := range w.conns {
		if c != nil {
			w.teardown(c)
		}
	}
	if err := w.reactor.Close(); err != nil {
		w.log.Warn().Err(err).Msg("cannot close reactor")
	}

	rep := api.WorkerReport{
		Thread:    w.idx,
		OpenConns: remaining,
		BytesSent: w.bytesOut,
		Remotes:   make([]api.RemoteStat, w.pool.Len()),
	}
	for i := range rep.Remotes {
		st := w.health.Entry(i)
		rep.Remotes[i] = api.RemoteStat{
			Addr:     w.pool.String(i),
			Attempts: st.Attempts,
			Failures: st.Failures,
		}
	}
	w.log.Info().
		Int("open_conns", remaining).
		Uint64("bytes_sent", w.bytesOut).
		Msg("exiting worker")
	return rep
}
