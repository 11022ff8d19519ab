// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryForKnownBrand(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(CategoryType1, categoryFor(string(BrandKVM)))
	assert.Equal(CategoryContainer, categoryFor(string(BrandDocker)))
	assert.Equal(CategorySandbox, categoryFor(string(BrandCuckoo)))
}

func TestCategoryForUnknownBrand(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(CategoryUnknownType, categoryFor("NotARealBrand"))
}

func TestCategoryForMultipleBrandString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(CategoryUnknown, categoryFor("VMware or VirtualBox"))
}
