//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux implementation over sched_getaffinity(2)/sched_setaffinity(2).

package affinity

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// availableCPUs counts the CPUs in the calling thread's affinity mask,
// which honours taskset/cpuset restrictions the online-processor count
// would overstate.
func availableCPUs() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	return set.Count()
}

// setAffinityPlatform pins the calling thread to a single CPU.
func setAffinityPlatform(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity to cpu %d: %w", cpuID, err)
	}
	return nil
}
