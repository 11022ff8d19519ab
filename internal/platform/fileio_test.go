// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExists(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "present")
	assert.NoError(os.WriteFile(file, []byte("x"), 0o644))

	assert.True(Exists(file))
	assert.False(Exists(filepath.Join(dir, "absent")))
}

func TestReadFileText(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "data.txt")
	assert.NoError(os.WriteFile(file, []byte("hello\nworld\n"), 0o644))

	text, ok := ReadFileText(file)
	assert.True(ok)
	assert.Equal("hello\nworld\n", text)

	_, ok = ReadFileText(filepath.Join(dir, "missing"))
	assert.False(ok)
}

func TestListDir(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	assert.NoError(os.WriteFile(filepath.Join(dir, "a"), []byte("x"), 0o644))
	assert.NoError(os.WriteFile(filepath.Join(dir, "b"), []byte("x"), 0o644))

	entries, ok := ListDir(dir)
	assert.True(ok)
	assert.Len(entries, 2)

	_, ok = ListDir(filepath.Join(dir, "nope"))
	assert.False(ok)
}

func TestExpandTilde(t *testing.T) {
	assert := assert.New(t)

	home, err := os.UserHomeDir()
	assert.NoError(err)

	assert.Equal(home, expand("~"))
	assert.Equal(filepath.Join(home, "foo"), expand("~/foo"))
	assert.Equal("/etc/passwd", expand("/etc/passwd"))
}
