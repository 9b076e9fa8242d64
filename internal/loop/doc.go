// File: internal/loop/doc.go
// Package loop
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-CPU worker event loops for the traffic generator. Each worker owns
// a reactor, an arena of outbound connections, a per-address health table
// and a cursor into the shared payload; the only structure shared between
// workers is the read end of the control channel, consumed competitively.

package loop
