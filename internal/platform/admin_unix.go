// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build !windows

package platform

import "golang.org/x/sys/unix"

// IsAdmin is true iff euid==0 or uid!=euid (spec.md §4.1).
func IsAdmin() bool {
	euid := unix.Geteuid()
	return euid == 0 || unix.Getuid() != euid
}
