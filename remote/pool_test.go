// File: remote/pool_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package remote_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-tcpgen/api"
	"github.com/momentics/hioload-tcpgen/remote"
)

func TestNewPool_RejectsEmpty(t *testing.T) {
	_, err := remote.NewPool(nil)
	require.ErrorIs(t, err, api.ErrEmptyPool)
}

func TestPool_PreservesOrderAndFormats(t *testing.T) {
	addrs := []netip.AddrPort{
		netip.MustParseAddrPort("127.0.0.1:9000"),
		netip.MustParseAddrPort("[::1]:9001"),
		netip.MustParseAddrPort("10.0.0.7:80"),
	}
	p, err := remote.NewPool(addrs)
	require.NoError(t, err)

	require.Equal(t, 3, p.Len())
	for i, a := range addrs {
		require.Equal(t, a, p.At(i))
		require.Equal(t, a.String(), p.String(i))
	}
}

func TestPool_CopiesInput(t *testing.T) {
	addrs := []netip.AddrPort{netip.MustParseAddrPort("127.0.0.1:9000")}
	p, err := remote.NewPool(addrs)
	require.NoError(t, err)

	addrs[0] = netip.MustParseAddrPort("192.168.0.1:1")
	require.Equal(t, "127.0.0.1:9000", p.String(0))
	require.Equal(t, netip.MustParseAddrPort("127.0.0.1:9000"), p.At(0))
}
