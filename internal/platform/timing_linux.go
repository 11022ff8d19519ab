// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build linux

package platform

import (
	"runtime"

	"golang.org/x/sys/unix"
)

type linuxAffinity struct {
	prev unix.CPUSet
}

func (a *linuxAffinity) Restore() {
	_ = unix.SchedSetaffinity(0, &a.prev)
	runtime.UnlockOSThread()
}

// PinThread locks the calling goroutine to its current OS thread and pins
// that thread to logical processor cpu, restoring the previous affinity
// mask on Restore(). Every exit path (including a panicking probe body)
// must call Restore() via defer, per spec.md §5's fault-guard invariant.
func PinThread(cpu int) Affinity {
	runtime.LockOSThread()

	var prev unix.CPUSet
	if err := unix.SchedGetaffinity(0, &prev); err != nil {
		runtime.UnlockOSThread()
		return noopAffinity{}
	}

	var want unix.CPUSet
	want.Set(cpu)
	if err := unix.SchedSetaffinity(0, &want); err != nil {
		runtime.UnlockOSThread()
		return noopAffinity{}
	}

	return &linuxAffinity{prev: prev}
}
