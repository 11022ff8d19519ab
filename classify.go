// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import "strings"

// Category is one of the closed set of classification strings Engine.Type
// may return (spec.md §6).
type Category string

const (
	CategoryType1          Category = "Hypervisor (type 1)"
	CategoryType2          Category = "Hypervisor (type 2)"
	CategoryEmulator       Category = "Emulator"
	CategoryEmulatorType2  Category = "Emulator/Hypervisor (type 2)"
	CategoryPartitioning   Category = "Partitioning Hypervisor"
	CategoryContainer      Category = "Container"
	CategorySandbox        Category = "Sandbox"
	CategoryTrustedDomain  Category = "Trusted Domain"
	CategoryEncryptor      Category = "VM encryptor"
	CategoryCloudService   Category = "Cloud VM service"
	CategoryParaHypervisor Category = "Paravirtualised/Hypervisor (type 2)"
	CategoryProcessIsolate Category = "Process isolator"
	CategoryCompatLayer    Category = "Compatibility layer"
	CategoryUnknownType    Category = "Hypervisor (unknown type)"
	CategoryUnknown        Category = "Unknown"
)

// brandCategory is the static brand -> category lookup (spec.md §4.9,
// design note "static data tables"). Multi-brand strings (containing
// " or ") bypass this table entirely and return CategoryUnknown, checked
// in categoryFor before the lookup.
var brandCategory = map[BrandID]Category{
	BrandKVM:               CategoryType1,
	BrandQEMU:              CategoryEmulatorType2,
	BrandQEMUKVM:           CategoryType1,
	BrandKVMHyperV:         CategoryParaHypervisor,
	BrandQEMUKVMHyperV:     CategoryParaHypervisor,
	BrandQEMUKVMEnlight:    CategoryParaHypervisor,
	BrandHyperV:            CategoryType1,
	BrandVirtualPC:         CategoryType2,
	BrandHyperVVPC:         CategoryType1,
	BrandAzure:             CategoryCloudService,
	BrandNanoVisor:         CategoryType1,
	BrandSimpleVisor:       CategoryType1,
	BrandVMware:            CategoryType2,
	BrandVMwareExpress:     CategoryType2,
	BrandVMwareESX:         CategoryType1,
	BrandVMwareGSX:         CategoryType2,
	BrandVMwareWorkstation: CategoryType2,
	BrandVMwareFusion:      CategoryType2,
	BrandVMwareHardened:    CategoryType2,
	BrandVirtualBox:        CategoryType2,
	BrandXen:               CategoryType1,
	BrandParallels:         CategoryType2,
	BrandACRN:              CategoryPartitioning,
	BrandQNX:               CategoryType1,
	BrandNVMM:              CategoryType2,
	BrandOpenBSDVMM:        CategoryType2,
	BrandIntelHAXM:         CategoryType2,
	BrandUnisysSPar:        CategoryPartitioning,
	BrandLMHS:              CategoryPartitioning,
	BrandJailhouse:         CategoryPartitioning,
	BrandAppleVZ:           CategoryType2,
	BrandIntelKGT:          CategoryTrustedDomain,
	BrandBarevisor:         CategoryType1,
	BrandHyperPlatform:     CategoryType1,
	BrandMiniVisor:         CategoryType1,
	BrandIntelTDX:          CategoryTrustedDomain,
	BrandLKVM:              CategoryType1,
	BrandNekoProject:       CategoryEmulator,
	BrandNoirVisor:         CategoryType1,
	BrandBhyve:             CategoryType1,
	BrandWSL:               CategoryCompatLayer,
	BrandDocker:            CategoryContainer,
	BrandPodman:            CategoryContainer,
	BrandSandboxie:         CategoryProcessIsolate,
	BrandCuckoo:            CategorySandbox,
	BrandAnubis:            CategorySandbox,
	BrandHyperVArtifct:     CategoryUnknown,
	BrandUnknown:           CategoryUnknown,
}

func categoryFor(brand string) Category {
	if strings.Contains(brand, " or ") {
		return CategoryUnknown
	}
	// finalizeBrand reports BrandHyperVArtifct as this sentence.
	if brand == "Hyper-V artifact (not an actual VM)" {
		return brandCategory[BrandHyperVArtifct]
	}
	if c, ok := brandCategory[BrandID(brand)]; ok {
		return c
	}
	return CategoryUnknownType
}
