// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import "strings"

// conclude implements spec.md §6 conclusion(options...) -> string. Under
// DYNAMIC it buckets the continuous percentage into the phrase ladder the
// spec names verbatim; otherwise it collapses to the two endpoints that
// match the binary detect() verdict.
func conclude(pct uint8, brand string, dynamic bool) string {
	if !dynamic {
		if pct >= thresholdConclusionDetect {
			return "Running inside " + withArticle(brand) + " VM"
		}
		return "Running on baremetal"
	}

	switch {
	case pct == 0:
		return "Running on baremetal"
	case pct < 20:
		return "Very unlikely a VM"
	case pct < 35:
		return "Unlikely a VM"
	case pct < 50:
		return "Potentially " + withArticle(brand) + " VM"
	case pct < 65:
		return "Might be " + withArticle(brand) + " VM"
	case pct < 80:
		return "Likely " + withArticle(brand) + " VM"
	case pct < 100:
		return "Very likely " + withArticle(brand) + " VM"
	default:
		return "Running inside " + withArticle(brand) + " VM"
	}
}

const thresholdConclusionDetect = 100

// withArticle prefixes brand with "an" when its first letter is a vowel
// (A, E, I, O, U, either case) and with "a" otherwise.
func withArticle(brand string) string {
	if brand == "" {
		return "a"
	}
	first := strings.ToUpper(brand)[0]
	switch first {
	case 'A', 'E', 'I', 'O', 'U':
		return "an " + brand
	default:
		return "a " + brand
	}
}
