// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"context"
	"runtime"
	"strings"
	"time"

	systemdDbus "github.com/coreos/go-systemd/v22/dbus"
	"github.com/docker/go-units"
	"github.com/pbnjay/memory"

	"github.com/kata-containers/vmdetect/internal/platform"
)

var commandLogger = logger.WithField("subsystem", "probes.command")

// systemdVirtDBusTimeout bounds the system-bus round trip so a wedged
// systemd manager never stalls a full run (spec.md §5).
const systemdVirtDBusTimeout = 2 * time.Second

// probeSystemdVirt prefers querying systemd's own D-Bus property over
// shelling out to systemd-detect-virt, falling back to the binary when no
// bus connection is available (containers frequently lack one).
func probeSystemdVirt(e *Engine) bool {
	if runtime.GOOS != "linux" {
		return false
	}
	if v, ok := systemdVirtViaDBus(); ok {
		return v != "" && v != "none"
	}
	out, ok := platform.Run("systemd-detect-virt")
	if !ok {
		return false
	}
	out = strings.TrimSpace(out)
	return out != "" && out != "none"
}

func systemdVirtViaDBus() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), systemdVirtDBusTimeout)
	defer cancel()

	conn, err := systemdDbus.NewSystemConnectionContext(ctx)
	if err != nil {
		commandLogger.WithError(err).Debug("systemd dbus unavailable")
		return "", false
	}
	defer conn.Close()

	prop, err := conn.GetManagerProperty("Virtualization")
	if err != nil {
		commandLogger.WithError(err).Debug("Virtualization property read failed")
		return "", false
	}
	return strings.Trim(prop, `"`), true
}

// dmidecodeMarkers is the vendor-string table matched against dmidecode's
// text output. It overlaps with, but is not the same list as,
// probes_windows.go's vmStringMarkers used by the mssmbios probe.
var dmidecodeMarkers = []string{
	"INNOTEK GMBH", "VIRTUALBOX", "SUN MICROSYSTEMS", "VBOXVER",
	"VIRTUAL MACHINE", "VMWARE", "GOOGLE COMPUTE ENGINE", "QEMU", "KVM",
}

func probeDmidecode(e *Engine) bool {
	if !platform.LookPath("dmidecode") {
		return false
	}
	out, ok := platform.Run("dmidecode")
	if !ok {
		return false
	}
	upper := strings.ToUpper(out)
	for _, marker := range dmidecodeMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

func probeDmesg(e *Engine) bool {
	if !platform.LookPath("dmesg") {
		return false
	}
	out, ok := platform.Run("dmesg")
	if !ok {
		return false
	}
	if strings.Contains(out, "VMware") {
		e.board.add(BrandVMware)
		return true
	}
	return false
}

// lshwQEMUMarkers is spec.md §4.3's "three of four QEMU marker strings".
var lshwQEMUMarkers = []string{"QEMU Virtual CPU", "pc-i440fx", "Virtio", "virtio-pci"}

func probeLSHWQEMU(e *Engine) bool {
	if !platform.LookPath("lshw") {
		return false
	}
	out, ok := platform.Run("lshw")
	if !ok {
		return false
	}
	matches := 0
	for _, marker := range lshwQEMUMarkers {
		if strings.Contains(out, marker) {
			matches++
		}
	}
	if matches >= 3 {
		e.board.add(BrandQEMU)
		return true
	}
	return false
}

func probeIOREGGrep(e *Engine) bool {
	if runtime.GOOS != "darwin" || !platform.LookPath("ioreg") {
		return false
	}
	out, ok := platform.Run("ioreg -l")
	if !ok {
		return false
	}
	switch {
	case strings.Contains(out, "VirtualBox"):
		e.board.add(BrandVirtualBox)
		return true
	case strings.Contains(out, "VMware"):
		e.board.add(BrandVMware)
		return true
	case strings.Contains(out, "Parallels"):
		e.board.add(BrandParallels)
		return true
	}
	return false
}

func probeMacSIP(e *Engine) bool {
	if runtime.GOOS != "darwin" || !platform.LookPath("csrutil") {
		return false
	}
	out, ok := platform.Run("csrutil status")
	return ok && strings.Contains(strings.ToLower(out), "disabled")
}

func probeHWModel(e *Engine) bool {
	if runtime.GOOS != "darwin" || !platform.LookPath("sysctl") {
		return false
	}
	out, ok := platform.Run("sysctl hw.model")
	if !ok {
		return false
	}
	return !strings.Contains(out, "Mac")
}

// hwMemsizeCeilingBytes is spec.md §4.3's "macOS physical memory ≤ 4 GB".
const hwMemsizeCeilingBytes = 4 << 30

func probeHWMemsize(e *Engine) bool {
	if runtime.GOOS != "darwin" {
		return false
	}
	total := memory.TotalMemory()
	if total == 0 {
		return false
	}
	commandLogger.WithField("size", units.HumanSize(float64(total))).Debug("hw_memsize read")
	return total <= hwMemsizeCeilingBytes
}
