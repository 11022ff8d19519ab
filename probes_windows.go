// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build windows

package vmdetect

import (
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

var windowsLogger = logger.WithField("subsystem", "probes.windows")

// vmStringMarkers is the vendor-string table shared by the registry/SMBIOS
// probes in this file, the DMI equivalent of probes_command.go's
// dmidecodeMarkers.
var vmStringMarkers = []string{
	"VMWARE", "VIRTUALBOX", "VBOX", "QEMU", "KVM", "BOCHS", "XEN",
	"PARALLELS", "MICROSOFT CORPORATION", "INNOTEK",
}

func regString(root registry.Key, path, name string) (string, bool) {
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()
	v, _, err := k.GetStringValue(name)
	if err != nil {
		return "", false
	}
	return v, true
}

func regKeyExists(root registry.Key, path string) bool {
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	k.Close()
	return true
}

func regSubKeyNames(root registry.Key, path string) ([]string, bool) {
	k, err := registry.OpenKey(root, path, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, false
	}
	defer k.Close()
	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, false
	}
	return names, true
}

func containsAnyMarker(s string, markers []string) (string, bool) {
	upper := strings.ToUpper(s)
	for _, m := range markers {
		if strings.Contains(upper, m) {
			return m, true
		}
	}
	return "", false
}

func brandForMarker(marker string) BrandID {
	switch marker {
	case "VMWARE":
		return BrandVMware
	case "VIRTUALBOX", "VBOX", "INNOTEK":
		return BrandVirtualBox
	case "QEMU":
		return BrandQEMU
	case "KVM":
		return BrandKVM
	case "XEN":
		return BrandXen
	case "PARALLELS":
		return BrandParallels
	default:
		return BrandUnknown
	}
}

const biosRegistryPath = `HARDWARE\DESCRIPTION\System\BIOS`

// probeMSSMBIOS inspects the SMBIOS-derived BIOS vendor/product strings
// Windows mirrors into the registry at boot.
func probeMSSMBIOS(e *Engine) bool {
	for _, name := range []string{"SystemManufacturer", "SystemProductName", "BIOSVendor"} {
		v, ok := regString(registry.LOCAL_MACHINE, biosRegistryPath, name)
		if !ok {
			continue
		}
		if marker, found := containsAnyMarker(v, vmStringMarkers); found {
			e.board.add(brandForMarker(marker))
			return true
		}
	}
	return false
}

func probeFirmware(e *Engine) bool {
	for _, name := range []string{"BaseBoardManufacturer", "BaseBoardProduct"} {
		v, ok := regString(registry.LOCAL_MACHINE, biosRegistryPath, name)
		if ok {
			if marker, found := containsAnyMarker(v, vmStringMarkers); found {
				e.board.add(brandForMarker(marker))
				return true
			}
		}
	}
	return false
}

// probeDMIScan requires at least two of the five BIOS-table fields to carry
// a vendor marker, a stronger bar than the single-field MSSMBIOS/FIRMWARE
// probes.
func probeDMIScan(e *Engine) bool {
	fields := []string{"SystemManufacturer", "SystemProductName", "BIOSVendor", "BaseBoardManufacturer", "SystemFamily"}
	matches := 0
	var lastMarker string
	for _, name := range fields {
		v, ok := regString(registry.LOCAL_MACHINE, biosRegistryPath, name)
		if !ok {
			continue
		}
		if marker, found := containsAnyMarker(v, vmStringMarkers); found {
			matches++
			lastMarker = marker
		}
	}
	if matches >= 2 {
		e.board.add(brandForMarker(lastMarker))
		return true
	}
	return false
}

func probeSMBIOSVMBit(e *Engine) bool {
	v, ok := regString(registry.LOCAL_MACHINE, biosRegistryPath, "SystemFamily")
	return ok && strings.Contains(strings.ToUpper(v), "VIRTUAL MACHINE")
}

// probeNativeVHD reports whether the running OS was booted from a native
// VHD, which the source flags as a VM-adjacent (if not strictly
// hypervisor-backed) boot mode.
func probeNativeVHD(e *Engine) bool {
	return regKeyExists(registry.LOCAL_MACHINE, `SYSTEM\CurrentControlSet\Services\FsDepends\Parameters\VirtualDiskBootHostOs`)
}

func probeVirtualRegistry(e *Engine) bool {
	if regKeyExists(registry.LOCAL_MACHINE, `SOFTWARE\Oracle\VirtualBox Guest Additions`) {
		e.board.add(BrandVirtualBox)
		return true
	}
	if regKeyExists(registry.LOCAL_MACHINE, `SOFTWARE\VMware, Inc.\VMware Tools`) {
		e.board.add(BrandVMware)
		return true
	}
	return false
}

// vmDriverServiceNames maps a brand to the service names its guest drivers
// register under SYSTEM\CurrentControlSet\Services.
var vmDriverServiceNames = map[BrandID][]string{
	BrandVirtualBox: {"VBoxGuest", "VBoxMouse", "VBoxSF", "VBoxVideo"},
	BrandVMware:     {"vmci", "vmmouse", "vm3dmp", "vmhgfs"},
	BrandHyperV:     {"vmbus", "hyperkbd", "vmicheartbeat"},
}

func probeDriverNames(e *Engine) bool {
	names, ok := regSubKeyNames(registry.LOCAL_MACHINE, `SYSTEM\CurrentControlSet\Services`)
	if !ok {
		return false
	}
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	found := false
	for brand, services := range vmDriverServiceNames {
		for _, svc := range services {
			if present[svc] {
				e.board.add(brand)
				found = true
			}
		}
	}
	return found
}

func probeDiskSerialNumber(e *Engine) bool {
	v, ok := regString(registry.LOCAL_MACHINE,
		`HARDWARE\DEVICEMAP\Scsi\Scsi Port 0\Scsi Bus 0\Target Id 0\Logical Unit Id 0`, "Identifier")
	if !ok {
		return false
	}
	if marker, found := containsAnyMarker(v, vmStringMarkers); found {
		e.board.add(brandForMarker(marker))
		return true
	}
	return false
}

// probePortConnectors treats the complete absence of physical serial ports
// as weak evidence of a VM, mirroring the source's port-connector count.
func probePortConnectors(e *Engine) bool {
	names, ok := regSubKeyNames(registry.LOCAL_MACHINE, `HARDWARE\DEVICEMAP\SERIALCOMM`)
	return !ok || len(names) == 0
}

const displayAdapterClassKey = `SYSTEM\CurrentControlSet\Control\Class\{4d36e968-e325-11ce-bfc1-08002be10318}`

var gpuVMMarkers = []string{"VMWARE SVGA", "VIRTUALBOX GRAPHICS", "HYPER-V VIDEO", "QXL", "VIRTIO-GPU"}

func gpuAdapterDescriptions() []string {
	subkeys, ok := regSubKeyNames(registry.LOCAL_MACHINE, displayAdapterClassKey)
	if !ok {
		return nil
	}
	var descs []string
	for _, sub := range subkeys {
		if v, ok := regString(registry.LOCAL_MACHINE, displayAdapterClassKey+`\`+sub, "DriverDesc"); ok {
			descs = append(descs, v)
		}
	}
	return descs
}

func probeGPUVMStrings(e *Engine) bool {
	for _, desc := range gpuAdapterDescriptions() {
		if marker, found := containsAnyMarker(desc, gpuVMMarkers); found {
			e.board.addPoints(brandForDisplayMarker(marker), 1)
			return true
		}
	}
	return false
}

func brandForDisplayMarker(marker string) BrandID {
	switch marker {
	case "VMWARE SVGA":
		return BrandVMware
	case "VIRTUALBOX GRAPHICS":
		return BrandVirtualBox
	case "HYPER-V VIDEO":
		return BrandHyperV
	default:
		return BrandQEMU
	}
}

// probeGPUCapabilities looks for the reduced feature-level string
// (“Basic Render”) that virtualized/software GPU drivers advertise in
// place of a real adapter's hardware feature set.
func probeGPUCapabilities(e *Engine) bool {
	for _, desc := range gpuAdapterDescriptions() {
		if strings.Contains(strings.ToLower(desc), "basic render") ||
			strings.Contains(strings.ToLower(desc), "microsoft basic display") {
			return true
		}
	}
	return false
}

// pciVMVendorIDs maps a PCI vendor ID (as it appears in the Enum\PCI
// instance path, e.g. "VEN_15AD") to the brand it belongs to.
var pciVMVendorIDs = map[string]BrandID{
	"VEN_15AD": BrandVMware,
	"VEN_80EE": BrandVirtualBox,
	"VEN_1AF4": BrandQEMU, // virtio
	"VEN_1B36": BrandQEMU, // QEMU/KVM's own PCI bridge vendor
}

func probeVMDevices(e *Engine) bool {
	names, ok := regSubKeyNames(registry.LOCAL_MACHINE, `SYSTEM\CurrentControlSet\Enum\PCI`)
	if !ok {
		return false
	}
	found := false
	for _, n := range names {
		for ven, brand := range pciVMVendorIDs {
			if strings.Contains(strings.ToUpper(n), ven) {
				e.board.add(brand)
				found = true
			}
		}
	}
	return found
}

// vmDriverModuleNames is probeDriverNames' data reused against the live
// loaded-module list (EnumDeviceDrivers), a coarse stand-in for a real
// kernel pool-tag scan (spec.md §4.3's BAD_POOLS), which would otherwise
// require NtQuerySystemInformation(SystemPoolTagInformation).
var vmDriverModuleNames = []string{"vboxguest.sys", "vboxmouse.sys", "vmci.sys", "vm3dmp.sys", "vmhgfs.sys"}

func probeBadPools(e *Engine) bool {
	var modules [1024]windows.Handle
	var needed uint32
	if err := windows.EnumDeviceDrivers(&modules[0], uint32(len(modules))*8, &needed); err != nil {
		windowsLogger.WithError(err).Debug("EnumDeviceDrivers failed")
		return false
	}
	n := int(needed / 8)
	if n > len(modules) {
		n = len(modules)
	}
	for i := 0; i < n; i++ {
		var buf [windows.MAX_PATH]uint16
		if _, err := windows.GetDeviceDriverBaseName(modules[i], &buf[0], windows.MAX_PATH); err != nil {
			continue
		}
		name := strings.ToLower(windows.UTF16ToString(buf[:]))
		for _, marker := range vmDriverModuleNames {
			if name == marker {
				return true
			}
		}
	}
	return false
}

func probeACPITemperature(e *Engine) bool {
	names, ok := regSubKeyNames(registry.LOCAL_MACHINE, `SYSTEM\CurrentControlSet\Enum\ACPI\ThermalZone`)
	return !ok || len(names) == 0
}

func probeHyperVQuery(e *Engine) bool {
	if regKeyExists(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Virtual Machine\Guest\Parameters`) {
		e.board.add(BrandHyperV)
		return true
	}
	return false
}

func probeVirtualProcessors(e *Engine) bool {
	return logicalThreadCount() <= 1
}

func probeProcessorNumber(e *Engine) bool {
	names, ok := regSubKeyNames(registry.LOCAL_MACHINE, `HARDWARE\DESCRIPTION\System\CentralProcessor`)
	return ok && len(names) <= 1
}

func probeNumberOfCores(e *Engine) bool {
	return logicalThreadCount() < 2
}

const audioClassKey = `SYSTEM\CurrentControlSet\Control\Class\{4d36e96c-e325-11ce-bfc1-08002be10318}`

func probeAudio(e *Engine) bool {
	names, ok := regSubKeyNames(registry.LOCAL_MACHINE, audioClassKey)
	return !ok || len(names) == 0
}

func probeRegistryKey(e *Engine) bool {
	return regKeyExists(registry.LOCAL_MACHINE, `SOFTWARE\VMware, Inc.\VMware Tools`) ||
		regKeyExists(registry.LOCAL_MACHINE, `SOFTWARE\Oracle\VirtualBox Guest Additions`)
}

// hklmVMRegistries is checked by HKLM_REGISTRIES, distinct from the single
// tools-install key REGISTRY_KEY checks: these are artifacts left by the
// hypervisor itself rather than installed guest additions.
var hklmVMRegistries = []string{
	`SOFTWARE\Classes\Folder\shell\sandbox`,
	`SYSTEM\ControlSet001\Services\Disk\Enum`,
}

func probeHKLMRegistries(e *Engine) bool {
	for _, path := range hklmVMRegistries {
		if regKeyExists(registry.LOCAL_MACHINE, path) {
			return true
		}
	}
	return false
}

// vmDLLNames are known guest-addition DLLs probed via LoadLibrary, matching
// the source's DLL_CHECK technique.
var vmDLLNames = []string{"vmGuestLib.dll", "VBoxHook.dll", "VBoxMRXNP.dll", "sbiedll.dll"}

func probeDLLCheck(e *Engine) bool {
	for _, name := range vmDLLNames {
		h, err := windows.LoadLibrary(name)
		if err == nil {
			windows.FreeLibrary(h)
			if strings.HasPrefix(name, "VBox") {
				e.board.add(BrandVirtualBox)
			} else if name == "sbiedll.dll" {
				e.board.add(BrandSandboxie)
			}
			return true
		}
	}
	return false
}

// vmMutexNames are named kernel mutexes created by sandbox/analysis tooling
// and hypervisor guest services.
var vmMutexNames = []string{"Sandboxie_SingleInstanceMutex_Control", "MicrosoftVirtualPC7UserServiceMakeSureWe'reTheOnlyOneMutex"}

func probeMutex(e *Engine) bool {
	for _, name := range vmMutexNames {
		namePtr, err := windows.UTF16PtrFromString(name)
		if err != nil {
			continue
		}
		h, err := windows.OpenMutex(windows.SYNCHRONIZE, false, namePtr)
		if err == nil {
			windows.CloseHandle(h)
			return true
		}
	}
	return false
}

func probeDeviceString(e *Engine) bool {
	names, ok := regSubKeyNames(registry.LOCAL_MACHINE, `SYSTEM\CurrentControlSet\Enum\IDE`)
	if !ok {
		return false
	}
	for _, n := range names {
		if marker, found := containsAnyMarker(n, vmStringMarkers); found {
			e.board.add(brandForMarker(marker))
			return true
		}
	}
	return false
}
