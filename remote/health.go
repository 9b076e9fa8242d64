// File: remote/health.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-address attempt/failure counters. One table per worker; entries are
// only ever touched by the owning worker's goroutine, so access is plain.

package remote

// Health counts connection attempts and failures against one remote
// address, as observed by a single worker. Failures never exceed Attempts:
// every failure is recorded after the attempt that produced it, on the same
// goroutine.
type Health struct {
	Attempts int64
	Failures int64
}

// RecordAttempt notes one more connection attempt.
func (h *Health) RecordAttempt() {
	h.Attempts++
}

// RecordFailure notes that the most recent attempt (or an established
// connection derived from one) failed.
func (h *Health) RecordFailure() {
	h.Failures++
}

// Dead reports whether the address has been tried more than threshold
// times without a single success. Such destinations are skipped by the
// picker while any live alternative remains.
func (h *Health) Dead(threshold int64) bool {
	return h.Attempts > threshold && h.Failures == h.Attempts
}

// HealthTable owns one Health entry per pool address, indexed identically
// to the pool.
type HealthTable struct {
	entries []Health
}

// NewHealthTable allocates a zeroed table for n addresses.
func NewHealthTable(n int) *HealthTable {
	return &HealthTable{entries: make([]Health, n)}
}

// Len returns the number of entries.
func (t *HealthTable) Len() int {
	return len(t.entries)
}

// Entry returns the mutable entry at index i.
func (t *HealthTable) Entry(i int) *Health {
	return &t.entries[i]
}
