// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmptyIsDefault(t *testing.T) {
	assert := assert.New(t)

	enabled, err := normalize()
	assert.NoError(err)
	assert.True(enabled.has(VMID))
	assert.False(enabled.has(DMESG), "DMESG is excluded from DEFAULT")
}

func TestNormalizeALL(t *testing.T) {
	assert := assert.New(t)

	enabled, err := normalize(ALL)
	assert.NoError(err)
	assert.True(enabled.has(DMESG), "ALL includes DMESG")
	assert.True(enabled.has(VMID))
}

func TestNormalizeUnknownID(t *testing.T) {
	assert := assert.New(t)

	_, err := normalize(ProbeID(99999))
	assert.Error(err)
}

func TestNormalizeSettingsToken(t *testing.T) {
	assert := assert.New(t)

	enabled, err := normalize(NO_MEMO, HIGH_THRESHOLD)
	assert.NoError(err)
	assert.True(enabled.has(NO_MEMO))
	assert.True(enabled.has(HIGH_THRESHOLD))
	assert.True(enabled.has(VMID), "settings tokens don't clear the default technique set")
}

func TestNormalizeWithDisableSet(t *testing.T) {
	assert := assert.New(t)

	set, err := Disable(VMID, CPU_BRAND)
	assert.NoError(err)
	assert.False(set.has(VMID))
	assert.True(set.has(HYPERVISOR_BIT))

	enabled, err := normalize(set)
	assert.NoError(err)
	assert.False(enabled.has(VMID))
	assert.False(enabled.has(CPU_BRAND))
	assert.True(enabled.has(HYPERVISOR_BIT))
}

func TestDisableRejectsSettingsToken(t *testing.T) {
	assert := assert.New(t)

	_, err := Disable(NO_MEMO)
	assert.ErrorIs(err, ErrSettingsNotTechnique)
}

func TestNormalizeEmptyEnabledSetFallsBackToDefault(t *testing.T) {
	assert := assert.New(t)

	set, err := Disable(func() []ProbeID {
		ids := make([]ProbeID, 0, techniqueCount)
		for id := VMID; id < techniqueCount; id++ {
			ids = append(ids, id)
		}
		return ids
	}()...)
	assert.NoError(err)

	enabled, err := normalize(set)
	assert.NoError(err)
	assert.True(enabled.has(VMID), "an empty technique set falls back to DEFAULT")
}
