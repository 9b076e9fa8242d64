// File: api/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-worker exit reports and remote-destination tallies.

package api

// RemoteStat is the final attempt/failure tally one worker accumulated
// against a single remote address. Failures never exceed Attempts.
type RemoteStat struct {
	Addr     string
	Attempts int64
	Failures int64
}

// WorkerReport is emitted once per worker, when its event loop exits.
// Aggregation across workers is the caller's concern.
type WorkerReport struct {
	// Thread is the worker index, in [0, worker count).
	Thread int

	// OpenConns is the number of connections still owned at exit.
	// Zero after a graceful termination.
	OpenConns int

	// BytesSent is the cumulative payload byte count the worker's
	// connections transmitted over their lifetimes.
	BytesSent uint64

	// Remotes holds per-destination tallies, indexed like the address pool.
	Remotes []RemoteStat
}
