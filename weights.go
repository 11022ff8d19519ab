// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

// defaultWeights gives every technique its initial point value. modify_score
// (Engine.ModifyScore) may change these per-Engine at runtime; weight must
// never exceed 100 (enforced in ModifyScore and AddCustom).
var defaultWeights = map[ProbeID]uint8{
	VMID:                  100,
	CPU_BRAND:             70,
	HYPERVISOR_BIT:        95,
	HYPERVISOR_STR:        75,
	CPUID_SIGNATURE:       75,
	KVM_BITMASK:           80,
	KGT_SIGNATURE:         80,
	SIDT:                  65,
	SGDT:                  60,
	SLDT:                  55,
	SMSW:                  50,
	VPC_INVALID:           70,
	VMWARE_BACKDOOR:       100,
	VMWARE_PORT_MEMORY:    85,
	VMWARE_STR:            65,
	OSXSAVE:               15,
	TIMING:                45,
	THREAD_COUNT:          35,
	ODD_CPU_THREADS:       40,
	INTEL_THREAD_MISMATCH: 95,
	XEON_THREAD_MISMATCH:  95,
	AMD_THREAD_MISMATCH:   95,
	DOCKERENV:             55,
	PODMAN_FILE:           55,
	HYPERVISOR_DIR:        50,
	VBOX_MODULE:           55,
	DEVICE_TREE:           50,
	QEMU_VIRTUAL_DMI:      50,
	QEMU_USB:              45,
	SYS_QEMU_DIR:          45,
	VMWARE_IOMEM:          55,
	VMWARE_IOPORTS:        55,
	VMWARE_SCSI:           55,
	SYSINFO_PROC:          45,
	WSL_PROC:              60,
	FILE_ACCESS_HISTORY:   5,
	VM_FILES:              40,
	SYSTEMD_VIRT:          70,
	DMIDECODE:             50,
	DMESG:                 55,
	LSHW_QEMU:             80,
	IOREG_GREP:            60,
	MAC_SIP:               40,
	HWMODEL:               35,
	HW_MEMSIZE:            35,
	MSSMBIOS:              100,
	FIRMWARE:              100,
	DMI_SCAN:              90,
	SMBIOS_VM_BIT:         50,
	NATIVE_VHD:            50,
	VIRTUAL_REGISTRY:      65,
	DRIVER_NAMES:          100,
	DISK_SERIAL_NUMBER:    60,
	PORT_CONNECTORS:       25,
	GPU_VM_STRINGS:        100,
	GPU_CAPABILITIES:      100,
	VM_DEVICES:            65,
	BAD_POOLS:             80,
	ACPI_TEMPERATURE:      25,
	HYPERV_QUERY:          50,
	VIRTUAL_PROCESSORS:    50,
	PROCESSOR_NUMBER:      30,
	NUMBER_OF_CORES:       40,
	AUDIO:                 25,
	REGISTRY_KEY:          50,
	HKLM_REGISTRIES:       50,
	MAC_ADDRESS_CHECK:     55,
	HYPERV_HOSTNAME:       40,
	GENERAL_HOSTNAME:      40,
	DLL_CHECK:             55,
	MUTEX:                 40,
	CUCKOO_DIR:            30,
	CUCKOO_PIPE:           30,
	DEVICE_STRING:         20,
	NSJAIL_PID:            25,
	LSPCI:                 60,
	AMD_SEV:               50,
	UNKNOWN_MANUFACTURER:  40,
	NIC_DRIVER:            50,
	VSOCK_DEVICE:          55,
}

// thresholdDefault and thresholdHigh are the score() >= threshold cutoffs
// used by Detect; HIGH_THRESHOLD selects the latter (spec.md §4.4, §8).
const (
	thresholdDefault = 150
	thresholdHigh    = 300
)

// defaultDisabled holds techniques excluded from the DEFAULT set (spec.md
// §4.5: "all techniques enabled except VMWARE_DMESG"). DMESG is the closest
// built-in id to that source technique: it greps dmesg output for VMware
// markers and is the noisiest/most environment-dependent of the command
// probes, so it is opt-in only, exactly like the source's VMWARE_DMESG.
var defaultDisabled = map[ProbeID]bool{
	DMESG: true,
}
