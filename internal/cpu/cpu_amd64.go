// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build amd64 || 386

package cpu

// cpuidAsm is implemented in cpuid_x86.s, the same leaf/sub-leaf-in,
// four-registers-out shape the Go standard library uses for its own
// internal/cpu/cpu_x86.s, since github.com/intel-go/cpuid does not expose
// a raw CPUID primitive under this package's pinned version.
//
//go:noescape
func cpuidAsm(leaf, subleaf uint32) (eax, ebx, ecx, edx uint32)

// ID invokes CPUID with the given leaf (EAX) and sub-leaf (ECX), returning
// the four output registers. Safe to call from any client code: CPUID is
// an unprivileged instruction on every x86 ring, so there is no UD/GP risk
// here (spec.md §4.1).
func ID(leaf, subleaf uint32) Registers {
	a, b, c, d := cpuidAsm(leaf, subleaf)
	return Registers{EAX: a, EBX: b, ECX: c, EDX: d}
}

// Supported reports whether this build target can execute CPUID at all.
func Supported() bool { return true }
