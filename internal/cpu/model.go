// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package cpu

import "regexp"

var (
	iSeriesRe = regexp.MustCompile(`i[0-9]-[A-Z0-9]{1,7}`)
	xeonRe    = regexp.MustCompile(`[DEW]-[A-Z0-9]{1,7}`)
	ryzenRe   = regexp.MustCompile(`AMD Ryzen (PRO)?[A-Z0-9]{1,7}`)
)

// Model is CpuModel from spec.md §3, extracted from the brand string by
// regex.
type Model struct {
	Found         bool
	IsXeon        bool
	IsISeries     bool
	IsRyzen       bool
	MatchedString string
}

// ClassifyModel regexes brand (normally cpu.BrandString()) per spec.md
// §4.2.
func ClassifyModel(brand string) Model {
	if m := ryzenRe.FindString(brand); m != "" {
		return Model{Found: true, IsRyzen: true, MatchedString: m}
	}
	if m := xeonRe.FindString(brand); m != "" {
		return Model{Found: true, IsXeon: true, MatchedString: m}
	}
	if m := iSeriesRe.FindString(brand); m != "" {
		return Model{Found: true, IsISeries: true, MatchedString: m}
	}
	return Model{}
}
