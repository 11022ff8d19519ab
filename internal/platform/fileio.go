// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

// Package platform supplies the host primitives spec.md §4.1 asks the core
// to consume rather than reimplement ad hoc in every probe: file I/O,
// subprocess capture, a monotonic cycle counter with thread affinity, and
// an admin-privilege check.
package platform

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Exists reports whether path exists (spec.md §4.1).
func Exists(path string) bool {
	_, err := os.Stat(expand(path))
	return err == nil
}

// IsDirectory reports whether path exists and is a directory.
func IsDirectory(path string) bool {
	fi, err := os.Stat(expand(path))
	return err == nil && fi.IsDir()
}

// ReadFileText reads path as UTF-8, preserving newlines, returning ok=false
// on any error (spec.md §7: missing/unreadable file is a silent false, not
// an error surfaced to the caller).
func ReadFileText(path string) (string, bool) {
	b, err := os.ReadFile(expand(path))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// ReadFileBytes is ReadFileText's binary-safe counterpart, used by the
// SMBIOS/ACPI/DMI probes.
func ReadFileBytes(path string) ([]byte, bool) {
	b, err := os.ReadFile(expand(path))
	if err != nil {
		return nil, false
	}
	return b, true
}

// ListDir returns the entries of a directory, or nil/false if it cannot be
// read.
func ListDir(path string) ([]os.DirEntry, bool) {
	entries, err := os.ReadDir(expand(path))
	if err != nil {
		return nil, false
	}
	return entries, true
}

// expand implements the required "~/" tilde expansion (spec.md §4.1).
func expand(path string) string {
	if !strings.HasPrefix(path, "~/") && path != "~" {
		return path
	}
	home := homeDir()
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil && h != "" {
		return h
	}
	if u, err := user.Current(); err == nil {
		return u.HomeDir
	}
	return ""
}
