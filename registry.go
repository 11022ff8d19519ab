// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

// builtinProbes is the full technique table, in the same order as the
// ProbeID enumeration in ids.go. Engine.runAll walks this slice once per
// run; Engine.lookupThunk and Check search it by id.
var builtinProbes = []registryEntry{
	{VMID, probeVMID},
	{CPU_BRAND, probeCPUBrand},
	{HYPERVISOR_BIT, probeHypervisorBit},
	{HYPERVISOR_STR, probeHypervisorStr},
	{CPUID_SIGNATURE, probeCPUIDSignature},
	{KVM_BITMASK, probeKVMBitmask},
	{KGT_SIGNATURE, probeKGTSignature},

	{SIDT, probeSIDT},
	{SGDT, probeSGDT},
	{SLDT, probeSLDT},
	{SMSW, probeSMSW},
	{VPC_INVALID, probeVPCInvalid},
	{VMWARE_BACKDOOR, probeVMwareBackdoor},
	{VMWARE_PORT_MEMORY, probeVMwarePortMemory},
	{VMWARE_STR, probeVMwareStr},
	{OSXSAVE, probeOSXSAVE},

	{TIMING, probeTiming},

	{THREAD_COUNT, probeThreadCount},
	{ODD_CPU_THREADS, probeOddCPUThreads},
	{INTEL_THREAD_MISMATCH, probeIntelThreadMismatch},
	{XEON_THREAD_MISMATCH, probeXeonThreadMismatch},
	{AMD_THREAD_MISMATCH, probeAMDThreadMismatch},

	{DOCKERENV, probeDockerenv},
	{PODMAN_FILE, probePodmanFile},
	{HYPERVISOR_DIR, probeHypervisorDir},
	{VBOX_MODULE, probeVBoxModule},
	{DEVICE_TREE, probeDeviceTree},
	{QEMU_VIRTUAL_DMI, probeQEMUVirtualDMI},
	{QEMU_USB, probeQEMUUSB},
	{SYS_QEMU_DIR, probeSysQEMUDir},
	{VMWARE_IOMEM, probeVMwareIomem},
	{VMWARE_IOPORTS, probeVMwareIoports},
	{VMWARE_SCSI, probeVMwareSCSI},
	{SYSINFO_PROC, probeSysinfoProc},
	{WSL_PROC, probeWSLProc},
	{FILE_ACCESS_HISTORY, probeFileAccessHistory},
	{VM_FILES, probeVMFiles},

	{SYSTEMD_VIRT, probeSystemdVirt},
	{DMIDECODE, probeDmidecode},
	{DMESG, probeDmesg},
	{LSHW_QEMU, probeLSHWQEMU},
	{IOREG_GREP, probeIOREGGrep},
	{MAC_SIP, probeMacSIP},
	{HWMODEL, probeHWModel},
	{HW_MEMSIZE, probeHWMemsize},

	{MSSMBIOS, probeMSSMBIOS},
	{FIRMWARE, probeFirmware},
	{DMI_SCAN, probeDMIScan},
	{SMBIOS_VM_BIT, probeSMBIOSVMBit},
	{NATIVE_VHD, probeNativeVHD},
	{VIRTUAL_REGISTRY, probeVirtualRegistry},

	{DRIVER_NAMES, probeDriverNames},
	{DISK_SERIAL_NUMBER, probeDiskSerialNumber},
	{PORT_CONNECTORS, probePortConnectors},
	{GPU_VM_STRINGS, probeGPUVMStrings},
	{GPU_CAPABILITIES, probeGPUCapabilities},
	{VM_DEVICES, probeVMDevices},
	{BAD_POOLS, probeBadPools},
	{ACPI_TEMPERATURE, probeACPITemperature},
	{HYPERV_QUERY, probeHyperVQuery},
	{VIRTUAL_PROCESSORS, probeVirtualProcessors},
	{PROCESSOR_NUMBER, probeProcessorNumber},
	{NUMBER_OF_CORES, probeNumberOfCores},
	{AUDIO, probeAudio},

	{REGISTRY_KEY, probeRegistryKey},
	{HKLM_REGISTRIES, probeHKLMRegistries},

	{MAC_ADDRESS_CHECK, probeMACAddressCheck},
	{HYPERV_HOSTNAME, probeHyperVHostname},
	{GENERAL_HOSTNAME, probeGeneralHostname},
	{DLL_CHECK, probeDLLCheck},
	{MUTEX, probeMutex},
	{CUCKOO_DIR, probeCuckooDir},
	{CUCKOO_PIPE, probeCuckooPipe},
	{DEVICE_STRING, probeDeviceString},
	{NSJAIL_PID, probeNsjailPid},
	{LSPCI, probeLSPCI},
	{AMD_SEV, probeAMDSEV},
	{UNKNOWN_MANUFACTURER, probeUnknownManufacturer},

	{NIC_DRIVER, probeNICDriver},
	{VSOCK_DEVICE, probeVSOCKDevice},
}
