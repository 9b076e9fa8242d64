// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU parallelism detection and thread affinity.
// Platform-specific implementations live in separate files guarded by
// build tags (affinity_linux.go, affinity_stub.go).

package affinity

import "runtime"

// AvailableCPUs reports the degree of parallelism available to this
// process: the size of the scheduling affinity mask where the platform
// exposes one, otherwise the online processor count. The result is
// always at least 1. One worker thread is spawned per available CPU.
func AvailableCPUs() int {
	if n := availableCPUs(); n >= 1 {
		return n
	}
	return runtime.NumCPU()
}

// SetAffinity pins the current OS thread to a given logical CPU on
// supported platforms. The caller must hold runtime.LockOSThread for the
// pin to stay meaningful. On unsupported platforms it returns an error.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}
