// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeHypervisorVendorExact(t *testing.T) {
	assert := assert.New(t)

	v := DecodeHypervisorVendor("VMwareVMware")
	assert.True(v.Found)
	assert.Equal("VMware", v.Name)
}

func TestDecodeHypervisorVendorSubstring(t *testing.T) {
	assert := assert.New(t)

	v := DecodeHypervisorVendor("KVMKVMKVMKVM")
	assert.True(v.Found)
	assert.Equal("KVM", v.Name)
}

func TestDecodeHypervisorVendorExactBeatsSubstring(t *testing.T) {
	assert := assert.New(t)

	v := DecodeHypervisorVendor("Linux KVM Hv")
	assert.True(v.Found)
	assert.Equal("Linux KVM Hv", v.Name, "an exact signature wins even though it contains another entry's substring")
}

func TestDecodeHypervisorVendorUnknown(t *testing.T) {
	assert := assert.New(t)

	v := DecodeHypervisorVendor("NotARealHv  ")
	assert.False(v.Found)
}

func TestDecodeCPUIDSignature(t *testing.T) {
	assert := assert.New(t)

	name, ok := DecodeCPUIDSignature(0x766E6258)
	assert.True(ok)
	assert.Equal("Xbox NanoVisor", name)

	_, ok = DecodeCPUIDSignature(0xDEADBEEF)
	assert.False(ok)
}
