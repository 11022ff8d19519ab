// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcludeNonDynamicDetected(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Running inside a VMware VM", conclude(100, "VMware", false))
}

func TestConcludeNonDynamicNotDetected(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Running on baremetal", conclude(40, "VMware", false))
}

func TestConcludeDynamicBuckets(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Running on baremetal", conclude(0, "Unknown", true))
	assert.Equal("Very unlikely a VM", conclude(10, "Unknown", true))
	assert.Equal("Unlikely a VM", conclude(30, "Unknown", true))
	assert.Equal("Potentially an Azure VM", conclude(45, "Azure", true))
	assert.Equal("Might be a QEMU VM", conclude(60, "QEMU", true))
	assert.Equal("Likely a KVM VM", conclude(70, "KVM", true))
	assert.Equal("Very likely a Xen VM", conclude(90, "Xen", true))
	assert.Equal("Running inside a VMware VM", conclude(100, "VMware", true))
}

func TestWithArticle(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("a VMware", withArticle("VMware"))
	assert.Equal("an Azure", withArticle("Azure"))
	assert.Equal("an Intel HAXM", withArticle("Intel HAXM"))
}
