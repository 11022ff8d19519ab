// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunMissingBinary(t *testing.T) {
	assert := assert.New(t)

	_, ok := Run("definitely-not-a-real-binary-xyz --version")
	assert.False(ok)
}

func TestLookPathMissing(t *testing.T) {
	assert := assert.New(t)
	assert.False(LookPath("definitely-not-a-real-binary-xyz"))
}
