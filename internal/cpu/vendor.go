// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package cpu

import "strings"

// HVVendor is the result of decoding a hypervisor vendor string; it carries
// a display name rather than a BrandID so this package stays independent
// of the top-level brand table.
type HVVendor struct {
	Name  string
	Found bool
}

type vendorEntry struct {
	// exact is matched verbatim (12 bytes); sub is matched as a
	// substring when exact is empty.
	exact, sub string
	name       string
}

// hvVendorTable is spec.md §4.2's hypervisor-vendor-string table. Hyper-V's
// row intentionally does not disambiguate host vs guest vs Virtual PC;
// that is the Hyper-X arbiter's job (hyperx.go in the root package).
var hvVendorTable = []vendorEntry{
	{exact: "bhyve bhyve ", name: "bhyve"},
	{exact: "BHyVE BHyVE ", name: "bhyve"},
	{sub: "KVM", name: "KVM"},
	{exact: "TCGTCGTCGTCG", name: "QEMU"},
	{exact: "Microsoft Hv", name: "Microsoft Hv"},
	{exact: "Linux KVM Hv", name: "Linux KVM Hv"},
	{exact: "VMwareVMware", name: "VMware"},
	{exact: "VBoxVBoxVBox", name: "VirtualBox"},
	{exact: "XenVMMXenVMM", name: "Xen"},
	{exact: " prl hyperv ", name: "Parallels"},
	{exact: " lrpepyh  vr", name: "Parallels"},
	{exact: "ACRNACRNACRN", name: "ACRN"},
	{exact: " QNXQVMBSQG ", name: "QNX"},
	{sub: "QXNQSBMV", name: "QNX"},
	{exact: "___ NVMM ___", name: "NVMM"},
	{exact: "OpenBSDVMM58", name: "OpenBSD VMM"},
	{exact: "HAXMHAXMHAXM", name: "Intel HAXM"},
	{exact: "UnisysSpar64", name: "Unisys s-Par"},
	{exact: "SRESRESRESRE", name: "Lockheed Martin LMHS"},
	{exact: "Jailhouse\x00\x00\x00", name: "Jailhouse"},
	{sub: "Apple VZ", name: "Apple Virtualization"},
	{exact: "EVMMEVMMEVMM", name: "Intel KGT (Trusty)"},
	{exact: "Barevisor!\x00\x00", name: "Barevisor"},
	{sub: "PpyH", name: "HyperPlatform"},
	{exact: "MiniVisor\x00\x00\x00", name: "MiniVisor"},
	{exact: "IntelTDX    ", name: "Intel TDX"},
	{exact: "LKVMLKVMLKVM", name: "LKVM"},
	{exact: "Neko Project", name: "Neko Project II"},
	{exact: "NoirVisor ZT", name: "NoirVisor"},
}

// DecodeHypervisorVendor matches s (expected to be a 12-byte hypervisor
// vendor string from HypervisorVendorString) against the known table.
// Exact entries are checked before substring entries regardless of table
// order, so an exact signature that happens to contain another entry's
// substring (e.g. "Linux KVM Hv" containing "KVM") still resolves to its
// own, more specific name.
func DecodeHypervisorVendor(s string) HVVendor {
	for _, e := range hvVendorTable {
		if e.exact != "" && s == e.exact {
			return HVVendor{Name: e.name, Found: true}
		}
	}
	for _, e := range hvVendorTable {
		if e.exact == "" && strings.Contains(s, e.sub) {
			return HVVendor{Name: e.name, Found: true}
		}
	}
	return HVVendor{}
}

// cpuidSignatureTable is spec.md §4.3's CPUID_SIGNATURE probe table,
// matched against EAX of leaf 0x40000001.
var cpuidSignatureTable = map[uint32]string{
	0x766E6258: "Xbox NanoVisor", // "Xbnv" packed little-endian into EAX
	0x53687620: "SimpleVisor",    // " vhS" packed little-endian into EAX
}

// DecodeCPUIDSignature looks up eax (leaf 0x40000001 EAX) in the known
// signature table.
func DecodeCPUIDSignature(eax uint32) (string, bool) {
	name, ok := cpuidSignatureTable[eax]
	return name, ok
}
