// File: remote/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package remote

import (
	"net/netip"

	"github.com/momentics/hioload-tcpgen/api"
)

// Pool is an ordered, immutable list of resolved remote addresses. Name
// resolution happens before the pool is built; the engine never touches a
// resolver. A single Pool is shared read-only by every worker.
type Pool struct {
	addrs []netip.AddrPort
	strs  []string
}

// NewPool copies the given addresses into an immutable Pool. At least one
// address is required.
func NewPool(addrs []netip.AddrPort) (*Pool, error) {
	if len(addrs) == 0 {
		return nil, api.ErrEmptyPool
	}
	p := &Pool{
		addrs: make([]netip.AddrPort, len(addrs)),
		strs:  make([]string, len(addrs)),
	}
	copy(p.addrs, addrs)
	for i, a := range addrs {
		p.strs[i] = a.String()
	}
	return p, nil
}

// Len returns the number of addresses in the pool.
func (p *Pool) Len() int {
	return len(p.addrs)
}

// At returns the address at index i.
func (p *Pool) At(i int) netip.AddrPort {
	return p.addrs[i]
}

// String returns the cached display form of the address at index i.
func (p *Pool) String(i int) string {
	return p.strs[i]
}
