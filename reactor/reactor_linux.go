//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll(7)-based reactor implementation and factory.

package reactor

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-tcpgen/api"
)

// maxEvents bounds one Poll batch. Level-triggered descriptors that stay
// ready simply show up again in the next batch.
const maxEvents = 128

// epollReactor implements api.Reactor using Linux epoll.
//
// The callback map is a plain map: the reactor belongs to one worker
// goroutine, and dispatch looks callbacks up at event time so that a
// descriptor unregistered earlier in the same batch is silently skipped.
type epollReactor struct {
	epfd      int
	callbacks map[int]api.IOCallback
	eventBuf  [maxEvents]unix.EpollEvent
}

// New constructs the platform reactor for Linux.
func New() (api.Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("reactor: epoll create: %w", err)
	}
	return &epollReactor{
		epfd:      epfd,
		callbacks: make(map[int]api.IOCallback),
	}, nil
}

// Register adds a descriptor to the epoll interest set.
func (r *epollReactor) Register(fd int, events api.IOEvents, cb api.IOCallback) error {
	if _, ok := r.callbacks[fd]; ok {
		return api.ErrFDAlreadyRegistered
	}
	ev := unix.EpollEvent{
		Events: eventsToEpoll(events),
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("reactor: epoll ctl add fd %d: %w", fd, err)
	}
	r.callbacks[fd] = cb
	return nil
}

// Modify replaces the interest set of a registered descriptor.
func (r *epollReactor) Modify(fd int, events api.IOEvents) error {
	if _, ok := r.callbacks[fd]; !ok {
		return api.ErrFDNotRegistered
	}
	ev := unix.EpollEvent{
		Events: eventsToEpoll(events),
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return fmt.Errorf("reactor: epoll ctl mod fd %d: %w", fd, err)
	}
	return nil
}

// Unregister removes a descriptor from the epoll interest set.
func (r *epollReactor) Unregister(fd int) error {
	if _, ok := r.callbacks[fd]; !ok {
		return api.ErrFDNotRegistered
	}
	delete(r.callbacks, fd)
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("reactor: epoll ctl del fd %d: %w", fd, err)
	}
	return nil
}

// Poll blocks up to timeoutMs (-1 blocks indefinitely) and dispatches
// readiness callbacks inline, one event at a time.
func (r *epollReactor) Poll(timeoutMs int) (int, error) {
	n, err := unix.EpollWait(r.epfd, r.eventBuf[:], timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("reactor: epoll wait: %w", err)
	}
	for i := 0; i < n; i++ {
		fd := int(r.eventBuf[i].Fd)
		cb, ok := r.callbacks[fd]
		if !ok {
			// Unregistered by an earlier callback in this batch.
			continue
		}
		cb(epollToEvents(r.eventBuf[i].Events))
	}
	return n, nil
}

// Close releases the epoll descriptor.
func (r *epollReactor) Close() error {
	return unix.Close(r.epfd)
}

// eventsToEpoll converts the interest bitmask to epoll flags.
func eventsToEpoll(events api.IOEvents) uint32 {
	var ep uint32
	if events&api.EventRead != 0 {
		ep |= unix.EPOLLIN
	}
	if events&api.EventWrite != 0 {
		ep |= unix.EPOLLOUT
	}
	return ep
}

// epollToEvents converts epoll flags to the readiness bitmask. Error and
// hangup conditions are always reported by epoll, interest or not.
func epollToEvents(ep uint32) api.IOEvents {
	var events api.IOEvents
	if ep&unix.EPOLLIN != 0 {
		events |= api.EventRead
	}
	if ep&unix.EPOLLOUT != 0 {
		events |= api.EventWrite
	}
	if ep&unix.EPOLLERR != 0 {
		events |= api.EventError
	}
	if ep&unix.EPOLLHUP != 0 {
		events |= api.EventHangup
	}
	return events
}
