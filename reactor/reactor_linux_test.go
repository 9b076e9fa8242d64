//go:build linux
// +build linux

// File: reactor/reactor_linux_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor_test

import (
	"errors"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-tcpgen/api"
	"github.com/momentics/hioload-tcpgen/reactor"
)

// newPipe returns (read fd, write fd) and registers cleanup.
func newPipe(t *testing.T) (int, int) {
	t.Helper()
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func newReactor(t *testing.T) api.Reactor {
	t.Helper()
	r, err := reactor.New()
	if err != nil {
		t.Fatalf("reactor.New() error: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestReactor_ReadReadinessDispatch(t *testing.T) {
	r := newReactor(t)
	rd, wr := newPipe(t)

	var got api.IOEvents
	calls := 0
	if err := r.Register(rd, api.EventRead, func(ev api.IOEvents) {
		got = ev
		calls++
	}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Nothing readable yet.
	if n, err := r.Poll(0); err != nil || calls != 0 {
		t.Fatalf("Poll(0) = (%d, %v), calls = %d; want no dispatch", n, err, calls)
	}

	if _, err := unix.Write(wr, []byte{'x'}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := r.Poll(1000); err != nil {
		t.Fatalf("Poll error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("Expected exactly one dispatch, got %d", calls)
	}
	if got&api.EventRead == 0 {
		t.Errorf("Expected EventRead in dispatched events, got %v", got)
	}
}

func TestReactor_WriteReadinessDispatch(t *testing.T) {
	r := newReactor(t)
	_, wr := newPipe(t)

	calls := 0
	if err := r.Register(wr, api.EventWrite, func(ev api.IOEvents) {
		if ev&api.EventWrite == 0 {
			t.Errorf("Expected EventWrite, got %v", ev)
		}
		calls++
	}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// An empty pipe is immediately writable.
	if _, err := r.Poll(1000); err != nil {
		t.Fatalf("Poll error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected one write-readiness dispatch, got %d", calls)
	}
}

func TestReactor_RegistrationErrors(t *testing.T) {
	r := newReactor(t)
	rd, _ := newPipe(t)

	cb := func(api.IOEvents) {}
	if err := r.Register(rd, api.EventRead, cb); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := r.Register(rd, api.EventRead, cb); !errors.Is(err, api.ErrFDAlreadyRegistered) {
		t.Errorf("Expected ErrFDAlreadyRegistered, got %v", err)
	}
	if err := r.Modify(rd+1000, api.EventRead); !errors.Is(err, api.ErrFDNotRegistered) {
		t.Errorf("Expected ErrFDNotRegistered from Modify, got %v", err)
	}
	if err := r.Unregister(rd + 1000); !errors.Is(err, api.ErrFDNotRegistered) {
		t.Errorf("Expected ErrFDNotRegistered from Unregister, got %v", err)
	}
	if err := r.Unregister(rd); err != nil {
		t.Errorf("Unregister error: %v", err)
	}
}

func TestReactor_UnregisterStopsDispatch(t *testing.T) {
	r := newReactor(t)
	rd, wr := newPipe(t)

	calls := 0
	if err := r.Register(rd, api.EventRead, func(api.IOEvents) { calls++ }); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := r.Unregister(rd); err != nil {
		t.Fatalf("Unregister error: %v", err)
	}

	if _, err := unix.Write(wr, []byte{'x'}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := r.Poll(0); err != nil {
		t.Fatalf("Poll error: %v", err)
	}
	if calls != 0 {
		t.Errorf("Expected no dispatch after Unregister, got %d", calls)
	}
}

// TestReactor_UnregisterWithinBatch has two ready descriptors whose
// callbacks each unregister the other. Whichever fires first wins; the
// loser's queued event must be dropped, so exactly one callback runs.
func TestReactor_UnregisterWithinBatch(t *testing.T) {
	r := newReactor(t)
	_, wrA := newPipe(t)
	_, wrB := newPipe(t)

	calls := 0
	if err := r.Register(wrA, api.EventWrite, func(api.IOEvents) {
		calls++
		r.Unregister(wrB)
	}); err != nil {
		t.Fatalf("Register A error: %v", err)
	}
	if err := r.Register(wrB, api.EventWrite, func(api.IOEvents) {
		calls++
		r.Unregister(wrA)
	}); err != nil {
		t.Fatalf("Register B error: %v", err)
	}

	// Both pipes are writable, so one batch reports both.
	if _, err := r.Poll(1000); err != nil {
		t.Fatalf("Poll error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected exactly one callback (stale event dropped), got %d", calls)
	}
}
