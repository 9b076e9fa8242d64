// Package remote holds the shared, immutable pool of destination addresses
// and the per-worker machinery that chooses among them: a health table
// counting connection attempts and failures per address, and a round-robin
// picker that skips destinations which have never once accepted a
// connection.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package remote
