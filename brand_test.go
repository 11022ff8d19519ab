// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalizeBrandEmpty(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(string(BrandUnknown), finalizeBrand(scoreboard{}, false, 0))
}

func TestFinalizeBrandSingle(t *testing.T) {
	assert := assert.New(t)
	sb := scoreboard{BrandVMware: 3}
	assert.Equal(string(BrandVMware), finalizeBrand(sb, false, 75))
}

func TestFinalizeBrandQEMUKVMMerge(t *testing.T) {
	assert := assert.New(t)
	sb := scoreboard{BrandQEMU: 1, BrandKVM: 1}
	assert.Equal(string(BrandQEMUKVM), finalizeBrand(sb, false, 150))
}

func TestFinalizeBrandHyperVVPCTieMerge(t *testing.T) {
	assert := assert.New(t)
	sb := scoreboard{BrandHyperV: 2, BrandVirtualPC: 2}
	assert.Equal(string(BrandHyperVVPC), finalizeBrand(sb, false, 150))
}

func TestFinalizeBrandArtifactDemotedWhenGlobalScorePositive(t *testing.T) {
	assert := assert.New(t)
	sb := scoreboard{BrandHyperVArtifct: 5, BrandVMware: 1}
	assert.Equal(string(BrandVMware), finalizeBrand(sb, false, 70))
}

func TestFinalizeBrandArtifactKeptWhenGlobalScoreZero(t *testing.T) {
	assert := assert.New(t)
	sb := scoreboard{BrandHyperVArtifct: 1}
	assert.Equal("Hyper-V artifact (not an actual VM)", finalizeBrand(sb, false, 0))
}

func TestFinalizeBrandMultipleJoinsWithOr(t *testing.T) {
	assert := assert.New(t)
	sb := scoreboard{BrandVMware: 5, BrandVirtualBox: 5}
	got := finalizeBrand(sb, true, 150)
	assert.Contains(got, " or ")
	assert.Contains(got, string(BrandVMware))
	assert.Contains(got, string(BrandVirtualBox))
}

func TestFinalizeBrandMultipleFalseReturnsHighestScore(t *testing.T) {
	assert := assert.New(t)
	sb := scoreboard{BrandVMware: 5, BrandVirtualBox: 2}
	assert.Equal(string(BrandVMware), finalizeBrand(sb, false, 100))
}
