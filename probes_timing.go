// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/kata-containers/vmdetect/internal/cpu"
	"github.com/kata-containers/vmdetect/internal/platform"
)

// Thresholds for the three timing sub-tests implemented here: (a) spike,
// (b) spammer, and (d) cross-core sync (spec.md §4.3). Sub-test (c) is not
// implemented.
const (
	timingSpikeCycles     = 6000
	timingSpikeTrips      = 5
	timingSpikeIterations = 10
	timingSpammerCycles   = 5000
	timingSpammerSamples  = 1000
	timingSyncDeltaCycles = 5000
	timingSyncTrips       = 5
	timingSyncIterations  = 10
)

func probeTiming(e *Engine) bool {
	if !cpu.Supported() || runtime.GOARCH != "amd64" {
		return false
	}
	return timingSpikeTest() || timingSpammerTest() || timingSyncTest()
}

// timingSpikeTest is spec.md §4.3 sub-test (a): repeated rdtsc-cpuid-rdtsc
// deltas, counting how many iterations spike above the threshold.
func timingSpikeTest() bool {
	trips := 0
	for i := 0; i < timingSpikeIterations; i++ {
		start := platform.RDTSC()
		cpu.ID(0, 0)
		delta := platform.RDTSC() - start
		if delta >= timingSpikeCycles {
			trips++
		}
	}
	return trips >= timingSpikeTrips
}

// timingSpammerTest is spec.md §4.3 sub-test (b): a spammer goroutine
// pinned to one core hammers cpuid while the measurement goroutine on
// another core samples rdtsc-cpuid-rdtsc deltas; a high average suggests
// vm-exit overhead on every trapped cpuid.
func timingSpammerTest() bool {
	var stop int32
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		affinity := platform.PinThread(1)
		defer affinity.Restore()
		for atomic.LoadInt32(&stop) == 0 {
			cpu.ID(0, 0)
		}
	}()

	affinity := platform.PinThread(0)
	var total uint64
	for i := 0; i < timingSpammerSamples; i++ {
		start := platform.RDTSC()
		cpu.ID(0, 0)
		total += platform.RDTSC() - start
	}
	affinity.Restore()

	atomic.StoreInt32(&stop, 1)
	wg.Wait()

	avg := total / timingSpammerSamples
	return avg > timingSpammerCycles
}

// timingSyncTest is spec.md §4.3 sub-test (d): cross-core rdtsc deltas
// that are suspiciously small and consistent indicate synchronized vCPU
// TSCs rather than independent physical cores.
func timingSyncTest() bool {
	trips := 0
	for i := 0; i < timingSyncIterations; i++ {
		a := platform.PinThread(0)
		start := platform.RDTSC()
		a.Restore()

		b := platform.PinThread(1)
		delta := platform.RDTSC() - start
		b.Restore()

		if delta < timingSyncDeltaCycles {
			trips++
		}
	}
	return trips >= timingSyncTrips
}
