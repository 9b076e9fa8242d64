//go:build !linux
// +build !linux

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for platforms without affinity support.

package affinity

import (
	"runtime"

	"github.com/momentics/hioload-tcpgen/api"
)

func availableCPUs() int {
	return runtime.NumCPU()
}

func setAffinityPlatform(cpuID int) error {
	return api.ErrNotSupported
}
