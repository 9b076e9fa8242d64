// File: engine/doc.go
// Package engine
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Engine is the facade of the traffic generator. It owns the shared
// control channel, spawns one event-loop worker per available CPU, and
// aggregates their exit reports. Callers drive load by writing command
// bytes through the Control handle: 'c' opens one connection on some
// worker, 'b' terminates one worker.
//
// Only Linux is supported; Start returns api.ErrNotSupported elsewhere.

package engine
