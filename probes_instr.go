// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import "github.com/kata-containers/vmdetect/internal/platform"

// descriptorHighByteThreshold is the base-address high byte above which
// the sidt/sgdt probes classify the host as virtualized
// (spec.md §4.3: "above 0xD0 or 0xFF").
const descriptorHighByteThreshold = 0xD0

func probeSIDT(e *Engine) bool {
	hb, ok := platform.SIDT()
	if !ok {
		return false
	}
	return hb >= descriptorHighByteThreshold
}

func probeSGDT(e *Engine) bool {
	hb, ok := platform.SGDT()
	if !ok {
		return false
	}
	return hb >= descriptorHighByteThreshold
}

func probeSLDT(e *Engine) bool {
	sel, ok := platform.SLDT()
	if !ok {
		return false
	}
	return sel == 0
}

func probeSMSW(e *Engine) bool {
	word, ok := platform.SMSW()
	if !ok {
		return false
	}
	return word&0xFF00 != 0
}

func probeVPCInvalid(e *Engine) bool {
	if !platform.VPCInvalidTrip() {
		return false
	}
	e.board.add(BrandVirtualPC)
	return true
}

func probeVMwareBackdoor(e *Engine) bool {
	eax, ebx, _, _, ok := platform.VMwareBackdoor()
	if !ok {
		return false
	}
	if eax != 0 || ebx != 0 {
		e.board.add(BrandVMware)
	}
	return true
}

// vmwareBackdoorFamily maps the VMware backdoor's EBX/ECX family
// indicator (spec.md §4.3: "1=Express, 2=ESX, 3=GSX, 4=Workstation") to a
// brand.
var vmwareBackdoorFamily = map[uint32]BrandID{
	1: BrandVMwareExpress,
	2: BrandVMwareESX,
	3: BrandVMwareGSX,
	4: BrandVMwareWorkstation,
}

func probeVMwarePortMemory(e *Engine) bool {
	_, _, ecx, _, ok := platform.VMwareBackdoor()
	if !ok {
		return false
	}
	if brand, known := vmwareBackdoorFamily[ecx]; known {
		e.board.add(brand)
	}
	return true
}

func probeVMwareStr(e *Engine) bool {
	eax, ebx, _, _, ok := platform.VMwareBackdoor()
	if !ok {
		return false
	}
	if eax == 0x564D5868 && ebx == 0x564D5868 {
		e.board.add(BrandVMware)
		return true
	}
	return false
}

func probeOSXSAVE(e *Engine) bool {
	_, ok := platform.XGetBV()
	return !ok
}
