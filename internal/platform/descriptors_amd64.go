// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build amd64

package platform

//go:noescape
func sidtAsm(dst *byte)

//go:noescape
func sgdtAsm(dst *byte)

//go:noescape
func sldtAsm(dst *uint16)

//go:noescape
func vmwareBackdoorAsm(cmd uint32, out *[4]uint32)

//go:noescape
func xgetbvAsm(dst *uint64)

// SIDT returns the high byte of the IDTR's linear base address. Real
// hardware usually reports a base address whose high byte sits below
// 0xD0; several hypervisors relocate the IDT into a range that spills
// above that, which is why probes_instr.go classifies on this byte alone
// (spec.md §4.3).
func SIDT() (highByte byte, ok bool) {
	return runGuardedDescriptor(sidtAsm)
}

// SGDT is SIDT's GDTR counterpart.
func SGDT() (highByte byte, ok bool) {
	return runGuardedDescriptor(sgdtAsm)
}

// runGuardedDescriptor lays out a 10-byte IDTR/GDTR pseudo-descriptor (a
// 2-byte limit followed by an 8-byte linear base on amd64) and returns the
// base address's most significant byte.
func runGuardedDescriptor(asm func(*byte)) (byte, bool) {
	buf := make([]byte, 10)
	result, ok := Guard(func() bool {
		asm(&buf[0])
		return true
	})
	if !ok || !result {
		return 0, false
	}
	return buf[9], true
}

// SLDT returns the current LDT selector; a zero selector (no LDT loaded)
// is itself weak evidence, left to the caller to weigh.
func SLDT() (selector uint16, ok bool) {
	var sel uint16
	result, ok := Guard(func() bool {
		sldtAsm(&sel)
		return true
	})
	if !ok || !result {
		return 0, false
	}
	return sel, true
}

// SMSW and VPCInvalidTrip are 32-bit-x86-only probes (spec.md §4.3);
// see descriptors_386.go.
func SMSW() (uint16, bool)  { return 0, false }
func VPCInvalidTrip() bool { return false }

// vmwareBackdoorCmd is "VMXh" in EAX, the VMware backdoor's magic value.
const vmwareBackdoorCmd = 0x564D5868

// VMwareBackdoor issues the `in $0x5658, %eax` backdoor I/O ("VX" port)
// with EAX=VMXh and ECX selecting the get-version command (0x0a). Under
// VMware this returns without faulting and EBX echoes the magic value;
// on real hardware the restricted I/O port access raises #GP, caught by
// the fault guard (spec.md §4.3, §5).
func VMwareBackdoor() (eax, ebx, ecx, edx uint32, ok bool) {
	var regs [4]uint32
	result, guarded := Guard(func() bool {
		vmwareBackdoorAsm(0x0a, &regs) // get-version command
		return regs[1] == vmwareBackdoorCmd
	})
	if !guarded || !result {
		return 0, 0, 0, 0, false
	}
	return regs[0], regs[1], regs[2], regs[3], true
}

// XGetBV executes `xgetbv` with ECX=0 under the fault guard; a fault
// indicates the CR4.OSXSAVE-bit state some hypervisors leave inconsistent
// (spec.md §4.3's osxsave probe).
func XGetBV() (uint64, bool) {
	var v uint64
	result, ok := Guard(func() bool {
		xgetbvAsm(&v)
		return true
	})
	if !ok || !result {
		return 0, false
	}
	return v, true
}
