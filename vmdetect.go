// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

// Package vmdetect reports whether the current process is running inside
// a virtual machine, container, sandbox, or hypervisor, and identifies
// which one. It ports the detection techniques and scoring model of the
// VMAware C++ project to idiomatic Go, following the structure and
// ambient conventions of this module's Kata Containers ancestry.
package vmdetect

// defaultEngine is the package-level Engine backing the convenience
// functions below, mirroring how virtcontainers callers default to a
// single package-wide sandbox/hypervisor instance when no explicit one is
// constructed.
var defaultEngine = NewEngine()

// Detect reports whether the current host is a virtual machine.
func Detect(opts ...Option) (bool, error) { return defaultEngine.Detect(opts...) }

// Percentage returns a 0-100 confidence score that the host is a VM.
func Percentage(opts ...Option) (uint8, error) { return defaultEngine.Percentage(opts...) }

// Brand returns the most likely VM/hypervisor brand name, or
// BrandUnknown's string form if nothing scored.
func Brand(opts ...Option) (string, error) { return defaultEngine.Brand(opts...) }

// Type returns the detected brand's category.
func Type(opts ...Option) (string, error) { return defaultEngine.Type(opts...) }

// Conclusion returns a human-readable phrase summarizing the result.
func Conclusion(opts ...Option) (string, error) { return defaultEngine.Conclusion(opts...) }

// Check runs a single probe in isolation.
func Check(id ProbeID, memoOpt ...ProbeID) (bool, error) { return defaultEngine.Check(id, memoOpt...) }

// DetectedEnums returns the ids of every probe that fired.
func DetectedEnums(opts ...Option) ([]ProbeID, error) { return defaultEngine.DetectedEnums(opts...) }

// DetectedCount returns how many probes fired.
func DetectedCount(opts ...Option) (uint8, error) { return defaultEngine.DetectedCount(opts...) }

// AddCustom registers a user-supplied probe on the default Engine.
func AddCustom(weight uint8, thunk CustomThunk) (ProbeID, error) {
	return defaultEngine.AddCustom(weight, thunk)
}

// ModifyScore adjusts a probe's weight on the default Engine.
func ModifyScore(id ProbeID, weight uint8) error { return defaultEngine.ModifyScore(id, weight) }
