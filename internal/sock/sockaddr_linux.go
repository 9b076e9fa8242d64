//go:build linux
// +build linux

// File: internal/sock/sockaddr_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sock

import (
	"net"
	"net/netip"

	"golang.org/x/sys/unix"
)

// Sockaddr converts ap into the matching unix.Sockaddr and address
// family. IPv4-mapped IPv6 addresses are unmapped so that plain IPv4
// destinations never force an AF_INET6 socket.
func Sockaddr(ap netip.AddrPort) (unix.Sockaddr, int) {
	addr := ap.Addr().Unmap()
	if addr.Is4() {
		sa := &unix.SockaddrInet4{Port: int(ap.Port())}
		sa.Addr = addr.As4()
		return sa, unix.AF_INET
	}
	sa := &unix.SockaddrInet6{Port: int(ap.Port())}
	sa.Addr = addr.As16()
	if zone := addr.Zone(); zone != "" {
		if iface, err := net.InterfaceByName(zone); err == nil {
			sa.ZoneId = uint32(iface.Index)
		}
	}
	return sa, unix.AF_INET6
}
