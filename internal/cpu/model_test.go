// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyModelISeries(t *testing.T) {
	assert := assert.New(t)

	m := ClassifyModel("Intel(R) Core(TM) i7-9700K CPU @ 3.60GHz")
	assert.True(m.Found)
	assert.True(m.IsISeries)
	assert.Equal("i7-9700K", m.MatchedString)
}

func TestClassifyModelXeon(t *testing.T) {
	assert := assert.New(t)

	m := ClassifyModel("Intel(R) Xeon(R) W-2295 CPU @ 3.00GHz")
	assert.True(m.Found)
	assert.True(m.IsXeon)
}

func TestClassifyModelRyzen(t *testing.T) {
	assert := assert.New(t)

	m := ClassifyModel("AMD Ryzen 9 5900X 12-Core Processor")
	assert.True(m.Found)
	assert.True(m.IsRyzen)
}

func TestClassifyModelNoMatch(t *testing.T) {
	assert := assert.New(t)

	m := ClassifyModel("Some Unbranded CPU")
	assert.False(m.Found)
}
