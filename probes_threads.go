// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"runtime"
	"strings"

	"github.com/kata-containers/vmdetect/internal/cpu"
	"github.com/kata-containers/vmdetect/internal/platform"
)

// isModernNonCeleron is a coarse stand-in for spec.md §4.3's
// "ancient-microarchitecture table" used to avoid false positives on
// genuinely dual-core-or-fewer CPUs predating hyperthreading's mainstream
// adoption: Celeron-branded parts are excluded outright, matching the
// spec's explicit "non-Celeron" qualifier.
func isModernNonCeleron(brand string) bool {
	return !strings.Contains(strings.ToLower(brand), "celeron")
}

func logicalThreadCount() int {
	if n, ok := platform.LogicalCPUCount(); ok && n > 0 {
		return n
	}
	if n := cpu.LogicalCoreCount(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func probeThreadCount(e *Engine) bool {
	if !isModernNonCeleron(cpu.BrandString()) {
		return false
	}
	return logicalThreadCount() <= 2
}

func probeOddCPUThreads(e *Engine) bool {
	if !isModernNonCeleron(cpu.BrandString()) {
		return false
	}
	n := logicalThreadCount()
	return n > 0 && n%2 != 0
}

// threadExpectation maps a matched CPU model string to its expected
// logical thread count; spec.md §4.3 describes the real tables (Intel:
// ~2k lines, Xeon/AMD: ~600 lines) as data, not logic. This port ships a
// representative sample rather than transcribing the full vendor
// databases, which are out of scope for a from-scratch reimplementation.
var threadExpectation = map[string]int{
	"i3": 4, "i5": 8, "i7": 16, "i9": 24,
}

func modelFamilyKey(model string) string {
	lower := strings.ToLower(model)
	for _, fam := range []string{"i9", "i7", "i5", "i3"} {
		if strings.Contains(lower, fam) {
			return fam
		}
	}
	return ""
}

func probeIntelThreadMismatch(e *Engine) bool {
	if !cpu.IsIntel() {
		return false
	}
	m := cpu.ClassifyModel(cpu.BrandString())
	if !m.Found || !m.IsISeries {
		return false
	}
	expected, ok := threadExpectation[modelFamilyKey(m.MatchedString)]
	if !ok {
		return false
	}
	return logicalThreadCount() != expected
}

func probeXeonThreadMismatch(e *Engine) bool {
	if !cpu.IsIntel() {
		return false
	}
	m := cpu.ClassifyModel(cpu.BrandString())
	if !m.Found || !m.IsXeon {
		return false
	}
	// Xeon SKUs vary too widely for a fixed per-letter expectation; treat
	// any Xeon match whose logical count is below 4 (two cores with HT)
	// as suspicious.
	return logicalThreadCount() < 4
}

func probeAMDThreadMismatch(e *Engine) bool {
	if !cpu.IsAMD() {
		return false
	}
	m := cpu.ClassifyModel(cpu.BrandString())
	if !m.Found || !m.IsRyzen {
		return false
	}
	return logicalThreadCount() < 4
}
