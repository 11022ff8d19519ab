// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"regexp"
	"strings"

	"github.com/kata-containers/vmdetect/internal/cpu"
)

// cpuBrandMarkers is spec.md §4.3's cpu_brand substring table; "qemu"
// additionally attributes the signal to the QEMU brand.
var cpuBrandMarkers = []string{
	"qemu", "kvm", "virtual", "vm", "vbox", "virtualbox", "vmm", "monitor",
	"bhyve", "hyperv", "hypervisor", "hvisor", "parallels", "vmware", "hvm", "qnx",
}

var kgtSignatureRe = regexp.MustCompile(`EVMM|INTC`)

func probeVMID(e *Engine) bool {
	if !cpu.Supported() {
		return false
	}
	if e.hyperX() == hyperXArtifact {
		// The Microsoft Hv / Linux KVM Hv signatures are the Hyper-X
		// arbiter's own evidence (hyperx.go); counting them again here
		// would inflate the global score and keep finalizeBrand from
		// ever reporting HYPERV_ARTIFACT.
		return false
	}
	found := false
	for _, leaf := range []uint32{0x40000000, 0x40000001, 0x40000100} {
		if !cpu.IsLeafSupported(leaf) {
			continue
		}
		v := cpu.DecodeHypervisorVendor(cpu.HypervisorVendorString(leaf))
		if v.Found {
			found = true
			addBrandForVendorName(e, v.Name)
		}
	}
	return found
}

// addBrandForVendorName maps a cpu.HVVendor.Name to a scoreboard brand.
// "Microsoft Hv" and "Linux KVM Hv" are deliberately left to the Hyper-X
// arbiter, which owns that disambiguation (hyperx.go).
func addBrandForVendorName(e *Engine, name string) {
	switch name {
	case "bhyve":
		e.board.add(BrandBhyve)
	case "KVM":
		e.board.add(BrandKVM)
	case "QEMU":
		e.board.add(BrandQEMU)
	case "VMware":
		e.board.add(BrandVMware)
	case "VirtualBox":
		e.board.add(BrandVirtualBox)
	case "Xen":
		e.board.add(BrandXen)
	case "Parallels":
		e.board.add(BrandParallels)
	case "ACRN":
		e.board.add(BrandACRN)
	case "QNX":
		e.board.add(BrandQNX)
	case "NVMM":
		e.board.add(BrandNVMM)
	case "OpenBSD VMM":
		e.board.add(BrandOpenBSDVMM)
	case "Intel HAXM":
		e.board.add(BrandIntelHAXM)
	case "Unisys s-Par":
		e.board.add(BrandUnisysSPar)
	case "Lockheed Martin LMHS":
		e.board.add(BrandLMHS)
	case "Jailhouse":
		e.board.add(BrandJailhouse)
	case "Apple Virtualization":
		e.board.add(BrandAppleVZ)
	case "Intel KGT (Trusty)":
		e.board.add(BrandIntelKGT)
	case "Barevisor":
		e.board.add(BrandBarevisor)
	case "HyperPlatform":
		e.board.add(BrandHyperPlatform)
	case "MiniVisor":
		e.board.add(BrandMiniVisor)
	case "Intel TDX":
		e.board.add(BrandIntelTDX)
	case "LKVM":
		e.board.add(BrandLKVM)
	case "Neko Project II":
		e.board.add(BrandNekoProject)
	case "NoirVisor":
		e.board.add(BrandNoirVisor)
	}
}

func probeCPUBrand(e *Engine) bool {
	if !cpu.Supported() {
		return false
	}
	brand := strings.ToLower(cpu.BrandString())
	matched := false
	for _, marker := range cpuBrandMarkers {
		if strings.Contains(brand, marker) {
			matched = true
			if marker == "qemu" {
				e.board.add(BrandQEMU)
			}
		}
	}
	return matched
}

func probeHypervisorBit(e *Engine) bool {
	if !cpu.Supported() {
		return false
	}
	if e.hyperX() == hyperXArtifact {
		return false
	}
	return cpu.HasHypervisorBit()
}

func probeHypervisorStr(e *Engine) bool {
	if !cpu.Supported() {
		return false
	}
	if e.hyperX() == hyperXArtifact {
		return false
	}
	s := cpu.HypervisorVendorString(0x40000000)
	if len(s) < 8 {
		return false
	}
	tail := strings.TrimRight(s[len(s)-8:], "\x00")
	return len(tail) >= 4
}

func probeCPUIDSignature(e *Engine) bool {
	if !cpu.Supported() || !cpu.IsLeafSupported(0x40000001) {
		return false
	}
	name, ok := cpu.DecodeCPUIDSignature(cpu.ID(0x40000001, 0).EAX)
	if !ok {
		return false
	}
	switch name {
	case "Xbox NanoVisor":
		e.board.add(BrandNanoVisor)
	case "SimpleVisor":
		e.board.add(BrandSimpleVisor)
	}
	return true
}

// kvmBitmaskReservedMask is the set of bits KVM's paravirt CPUID leaf
// documents as always zero at 0x40000001 EAX (KVM_FEATURE bits 13-23 and
// 25-31 are reserved/unused by every released KVM).
const kvmBitmaskReservedMask = 0x7FF<<13 | 0x7F<<25

func probeKVMBitmask(e *Engine) bool {
	if !cpu.Supported() || !cpu.IsLeafSupported(0x40000001) {
		return false
	}
	eax := cpu.ID(0x40000001, 0).EAX
	vendor := cpu.HypervisorVendorString(0x40000000)
	if !strings.Contains(vendor, "KVM") {
		return false
	}
	if eax&kvmBitmaskReservedMask != 0 {
		return false
	}
	e.board.add(BrandKVM)
	return true
}

func probeKGTSignature(e *Engine) bool {
	if !cpu.Supported() || !cpu.IsLeafSupported(3) {
		return false
	}
	r := cpu.ID(3, 0)
	s := regsToASCII2(r.ECX, r.EDX)
	if !kgtSignatureRe.MatchString(s) {
		return false
	}
	if strings.Contains(s, "EVMM") && strings.Contains(s, "INTC") {
		e.board.add(BrandIntelKGT)
		return true
	}
	return false
}

func regsToASCII2(a, b uint32) string {
	buf := make([]byte, 0, 8)
	for _, r := range []uint32{a, b} {
		buf = append(buf, byte(r), byte(r>>8), byte(r>>16), byte(r>>24))
	}
	return string(buf)
}
