// File: remote/picker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Round-robin address selection with a dead-destination skip heuristic.

package remote

// Picker chooses the next destination for one worker. It scans the health
// table round-robin from a monotonically advancing cursor, skipping
// addresses that look dead, and never probes more than Len entries per
// pick, so selection terminates even when every destination is down.
type Picker struct {
	table     *HealthTable
	cursor    uint64
	threshold int64
}

// NewPicker builds a picker over the worker's health table. offset is the
// worker index: giving each worker a distinct starting phase keeps the
// workers from all hammering the same address first.
func NewPicker(table *HealthTable, offset uint64, threshold int64) *Picker {
	return &Picker{table: table, cursor: offset, threshold: threshold}
}

// Pick returns the index of the chosen address.
//
// If it is known that a particular destination is broken, choose a working
// one right away. The cursor advances per probed candidate, so skipped
// entries also move it forward and the next Pick resumes past the choice.
// When all candidates look dead the last one probed is returned; forward
// progress is guaranteed.
func (p *Picker) Pick() int {
	n := uint64(p.table.Len())
	off := 0
	for probes := uint64(0); probes < n; probes++ {
		off = int(p.cursor % n)
		p.cursor++
		if p.table.Entry(off).Dead(p.threshold) {
			continue
		}
		break
	}
	return off
}
