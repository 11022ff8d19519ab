// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build 386

package platform

//go:noescape
func sidtAsm(dst *byte)

//go:noescape
func sgdtAsm(dst *byte)

//go:noescape
func sldtAsm(dst *uint16)

//go:noescape
func smswAsm(dst *uint16)

//go:noescape
func vpcExtAsm(dst *uint32)

//go:noescape
func vmwareBackdoorAsm(cmd uint32, out *[4]uint32)

//go:noescape
func xgetbvAsm(dst *uint64)

// SIDT returns the high byte of the IDTR's 4-byte linear base (386: a
// 2-byte limit followed by a 4-byte base, six bytes total).
func SIDT() (byte, bool) { return runGuardedDescriptor32(sidtAsm) }

// SGDT is SIDT's GDTR counterpart.
func SGDT() (byte, bool) { return runGuardedDescriptor32(sgdtAsm) }

func runGuardedDescriptor32(asm func(*byte)) (byte, bool) {
	buf := make([]byte, 6)
	result, ok := Guard(func() bool {
		asm(&buf[0])
		return true
	})
	if !ok || !result {
		return 0, false
	}
	return buf[5], true
}

// SLDT returns the current LDT selector.
func SLDT() (uint16, bool) {
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

// SMSW returns the machine status word (the low bits of CR0), a 32-bit-only
// probe per spec.md §4.3.
func SMSW() (word uint16, ok bool) {
	var w uint16
	result, ok := Guard(func() bool {
		smswAsm(&w)
		return true
	})
	if !ok || !result {
		return 0, false
	}
	return w, true
}

// VPCInvalidTrip executes the "VPCEXT" illegal-instruction sequence
// (0F 3F 07 0B) that Connectix/Microsoft Virtual PC intercepted and
// answered rather than faulting; on real hardware it always raises #UD.
// ok==true with no fault is itself the positive signal.
func VPCInvalidTrip() bool {
	var magic uint32
	result, ok := Guard(func() bool {
		vpcExtAsm(&magic)
		return true
	})
	return ok && result
}

const vmwareBackdoorCmd = 0x564D5868

// VMwareBackdoor is the 386 counterpart of descriptors_amd64.go's.
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

// XGetBV is the 386 counterpart of descriptors_amd64.go's.
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
