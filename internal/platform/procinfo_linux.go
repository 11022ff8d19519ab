// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build linux

package platform

import "github.com/prometheus/procfs"

// LogicalCPUCount reads /proc/cpuinfo through procfs rather than a
// hand-rolled bufio scan, matching the thread-count family of probes
// (spec.md §4.3 THREAD_COUNT/ODD_CPU_THREADS) to the kernel's own view of
// online processors.
func LogicalCPUCount() (int, bool) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return 0, false
	}
	info, err := fs.CPUInfo()
	if err != nil {
		return 0, false
	}
	return len(info), true
}
