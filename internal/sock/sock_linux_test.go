//go:build linux
// +build linux

// File: internal/sock/sock_linux_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sock

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"testing"

	"golang.org/x/sys/unix"
)

func listenerAddr(t *testing.T) (netip.AddrPort, net.Listener) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	return netip.AddrPortFrom(netip.MustParseAddr("127.0.0.1"), port), ln
}

// waitWritable blocks until fd reports write readiness or the timeout
// elapses.
func waitWritable(t *testing.T, fd int) {
	t.Helper()
	pfd := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}
	for {
		n, err := unix.Poll(pfd, 5000)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			t.Fatalf("poll: %v", err)
		}
		if n == 0 {
			t.Fatal("Expected write readiness within timeout")
		}
		return
	}
}

func TestSockaddr_Families(t *testing.T) {
	sa, family := Sockaddr(netip.MustParseAddrPort("192.0.2.7:4242"))
	if family != unix.AF_INET {
		t.Errorf("Expected AF_INET, got %d", family)
	}
	v4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		t.Fatalf("Expected *unix.SockaddrInet4, got %T", sa)
	}
	if v4.Port != 4242 || v4.Addr != [4]byte{192, 0, 2, 7} {
		t.Errorf("Unexpected sockaddr %+v", v4)
	}

	// IPv4-mapped IPv6 must collapse back to AF_INET.
	mapped := netip.AddrPortFrom(netip.MustParseAddr("::ffff:192.0.2.7"), 4242)
	if _, family := Sockaddr(mapped); family != unix.AF_INET {
		t.Errorf("Expected mapped address to use AF_INET, got %d", family)
	}

	sa, family = Sockaddr(netip.MustParseAddrPort("[2001:db8::1]:80"))
	if family != unix.AF_INET6 {
		t.Errorf("Expected AF_INET6, got %d", family)
	}
	if _, ok := sa.(*unix.SockaddrInet6); !ok {
		t.Errorf("Expected *unix.SockaddrInet6, got %T", sa)
	}
}

func startConnect(t *testing.T, ap netip.AddrPort, noDelay bool) (int, bool, error) {
	t.Helper()
	sa, family := Sockaddr(ap)
	fd, err := OpenStream(family, noDelay)
	if err != nil {
		t.Fatalf("OpenStream error: %v", err)
	}
	inProgress, err := BeginConnect(fd, sa)
	if err != nil {
		unix.Close(fd)
		return -1, false, err
	}
	return fd, inProgress, nil
}

func TestConnect_Succeeds(t *testing.T) {
	ap, ln := listenerAddr(t)
	defer ln.Close()

	fd, inProgress, err := startConnect(t, ap, true)
	if err != nil {
		t.Fatalf("connect error: %v", err)
	}
	defer unix.Close(fd)

	if inProgress {
		waitWritable(t, fd)
	}
	if err := SocketError(fd); err != nil {
		t.Errorf("Expected clean connect, got %v", err)
	}
}

func TestConnect_RefusedSurfacesViaSocketError(t *testing.T) {
	ap, ln := listenerAddr(t)
	ln.Close() // nobody listens on that port anymore

	fd, inProgress, err := startConnect(t, ap, false)
	if err != nil {
		// Some kernels fail loopback connects synchronously.
		if !errors.Is(err, unix.ECONNREFUSED) {
			t.Fatalf("Expected ECONNREFUSED, got %v", err)
		}
		return
	}
	defer unix.Close(fd)

	if inProgress {
		waitWritable(t, fd)
	}
	if err := SocketError(fd); !errors.Is(err, unix.ECONNREFUSED) {
		t.Errorf("Expected ECONNREFUSED from SO_ERROR, got %v", err)
	}
}

func TestErrClassifiers(t *testing.T) {
	if !IsTableFull(unix.ENFILE) || !IsTableFull(unix.EMFILE) {
		t.Error("Expected ENFILE/EMFILE to report table full")
	}
	if !IsTableFull(fmt.Errorf("socket: %w", unix.EMFILE)) {
		t.Error("Expected wrapped EMFILE to report table full")
	}
	if IsTableFull(unix.EAGAIN) {
		t.Error("Expected EAGAIN not to report table full")
	}

	for _, errno := range []unix.Errno{unix.EAGAIN, unix.EWOULDBLOCK, unix.EINTR} {
		if !IsTransient(errno) {
			t.Errorf("Expected %v to be transient", errno)
		}
	}
	if IsTransient(unix.ECONNRESET) {
		t.Error("Expected ECONNRESET not to be transient")
	}
}
