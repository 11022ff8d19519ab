// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"os"
	"runtime"
	"strings"

	"github.com/kata-containers/vmdetect/internal/platform"
)

// vmMACPrefixes are the OUI blocks IEEE has assigned to hypervisor vendors
// for their virtual NICs (spec.md §4.3 MAC_ADDRESS_CHECK).
var vmMACPrefixes = map[string]BrandID{
	"00:05:69": BrandVMware, "00:0C:29": BrandVMware, "00:1C:14": BrandVMware, "00:50:56": BrandVMware,
	"08:00:27": BrandVirtualBox,
	"00:03:FF": BrandHyperV, "00:15:5D": BrandHyperV,
	"00:16:3E": BrandXen,
	"52:54:00": BrandQEMU,
}

func brandForMAC(mac string) (BrandID, bool) {
	if len(mac) < 8 {
		return "", false
	}
	prefix := strings.ToUpper(mac[:8])
	b, ok := vmMACPrefixes[prefix]
	return b, ok
}

func probeHyperVHostname(e *Engine) bool {
	host, err := os.Hostname()
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(host), "hyperv")
}

// genericSandboxHostnames is a fixed set of hostnames commonly baked into
// sandbox/analysis VM images, distinct from the narrower hyperv-prefix
// check above.
var genericSandboxHostnames = []string{"sandbox", "malware", "cuckoo", "maltest", "test-pc"}

func probeGeneralHostname(e *Engine) bool {
	host, err := os.Hostname()
	if err != nil {
		return false
	}
	lower := strings.ToLower(host)
	for _, marker := range genericSandboxHostnames {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func probeCuckooDir(e *Engine) bool {
	if platform.Exists("/tmp/cuckoo") || platform.Exists(`C:\cuckoo`) {
		e.board.add(BrandCuckoo)
		return true
	}
	return false
}

func probeCuckooPipe(e *Engine) bool {
	if platform.Exists(`\\.\pipe\cuckoo`) || platform.Exists("/tmp/cuckoo.pipe") {
		e.board.add(BrandCuckoo)
		return true
	}
	return false
}

func probeNsjailPid(e *Engine) bool {
	text, ok := platform.ReadFileText("/proc/1/cgroup")
	return ok && strings.Contains(text, "nsjail")
}

var lspciQEMUMarkers = []string{"QEMU Virtual Machine", "Virtio", "1af4:"}

func probeLSPCI(e *Engine) bool {
	if runtime.GOOS != "linux" || !platform.LookPath("lspci") {
		return false
	}
	out, ok := platform.Run("lspci")
	if !ok {
		return false
	}
	for _, marker := range lspciQEMUMarkers {
		if strings.Contains(out, marker) {
			e.board.add(BrandQEMU)
			return true
		}
	}
	return false
}

func probeAMDSEV(e *Engine) bool {
	text, ok := platform.ReadFileText("/sys/module/kvm_amd/parameters/sev")
	return ok && strings.TrimSpace(text) == "1"
}

// unknownManufacturerMarkers are the DMI sys_vendor substrings the source
// treats as "generic/unbranded," itself weak evidence of a stripped-down VM
// firmware image rather than retail hardware.
var unknownManufacturerMarkers = []string{"To Be Filled By O.E.M.", "System manufacturer", "Default string"}

func probeUnknownManufacturer(e *Engine) bool {
	if runtime.GOOS != "linux" {
		return false
	}
	text, ok := platform.ReadFileText("/sys/devices/virtual/dmi/id/sys_vendor")
	if !ok {
		return false
	}
	for _, marker := range unknownManufacturerMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
