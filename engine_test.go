// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddCustomRejectsOverweight(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	_, err := e.AddCustom(101, func() bool { return true })
	assert.ErrorIs(err, ErrWeightTooLarge)
}

func TestAddCustomContributesToScore(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	id, err := e.AddCustom(100, func() bool { return true })
	assert.NoError(err)
	assert.Equal("CUSTOM_0", e.NameOf(id))

	detected, err := e.DetectedEnums()
	assert.NoError(err)
	assert.Contains(detected, id)
}

func TestCustomProbePanicIsTreatedAsFalse(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	id, err := e.AddCustom(100, func() bool { panic("boom") })
	assert.NoError(err)

	ok, err := e.Check(id)
	assert.NoError(err)
	assert.False(ok)
}

func TestCheckRejectsNonNoMemoOption(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	_, err := e.Check(VMID, HIGH_THRESHOLD)
	assert.ErrorIs(err, ErrInvalidCheckOption)
}

func TestCheckMemoizesByDefault(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	calls := 0
	id, err := e.AddCustom(50, func() bool {
		calls++
		return true
	})
	assert.NoError(err)

	_, err = e.Check(id)
	assert.NoError(err)
	_, err = e.Check(id)
	assert.NoError(err)
	assert.Equal(1, calls, "second Check must hit the cache, not re-invoke the thunk")
}

func TestCheckNoMemoAlwaysReinvokes(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	calls := 0
	id, err := e.AddCustom(50, func() bool {
		calls++
		return true
	})
	assert.NoError(err)

	_, err = e.Check(id, NO_MEMO)
	assert.NoError(err)
	_, err = e.Check(id, NO_MEMO)
	assert.NoError(err)
	assert.Equal(2, calls)
}

func TestModifyScoreRejectsOverweight(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	assert.ErrorIs(e.ModifyScore(VMID, 101), ErrWeightTooLarge)
}

func TestModifyScoreUnknownCustomID(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	err := e.ModifyScore(ProbeID(idCount+5), 10)
	assert.ErrorIs(err, ErrUnknownProbeID)
}

func TestModifyScoreInvalidatesCache(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	calls := 0
	id, err := e.AddCustom(10, func() bool {
		calls++
		return true
	})
	assert.NoError(err)

	_, _ = e.Check(id)
	assert.NoError(e.ModifyScore(id, 90))
	_, _ = e.Check(id)
	assert.Equal(2, calls, "changing a weight must re-run the probe on the next check")
}

func TestGPUMergeContribution(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	assert.Equal(100, e.gpuMergeContribution(true, true))
	assert.Equal(int(e.weights[GPU_VM_STRINGS]), e.gpuMergeContribution(true, false))
	assert.Equal(int(e.weights[GPU_CAPABILITIES]), e.gpuMergeContribution(false, true))
	assert.Equal(0, e.gpuMergeContribution(false, false))
}

func TestDetectedCountMatchesDetectedEnums(t *testing.T) {
	assert := assert.New(t)

	e := NewEngine()
	id, err := e.AddCustom(10, func() bool { return true })
	assert.NoError(err)

	set, err := Disable(func() []ProbeID {
		ids := make([]ProbeID, 0, techniqueCount)
		for i := VMID; i < techniqueCount; i++ {
			ids = append(ids, i)
		}
		return ids
	}()...)
	assert.NoError(err)

	count, err := e.DetectedCount(set)
	assert.NoError(err)
	ids, err := e.DetectedEnums(set)
	assert.NoError(err)
	assert.Equal(uint8(len(ids)), count)
	assert.Contains(ids, id)
}
