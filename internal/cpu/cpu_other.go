// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build !amd64 && !386

package cpu

// ID returns all-zero registers on non-x86 targets; every probe built on
// top of it degrades to "unsupported" (spec.md §4.1), matching how the
// rest of the probe registry treats a missing platform primitive as a
// silent false rather than an error (spec.md §7).
func ID(leaf, subleaf uint32) Registers { return Registers{} }

// Supported reports whether this build target can execute CPUID at all.
func Supported() bool { return false }
