// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import "github.com/pkg/errors"

// Probes never distinguish "did not detect" from "could not detect"; both
// become false (spec.md §7). The errors below are the only user-visible
// failure modes, all at the flag-handler / public-API boundary.
var (
	// ErrUnknownProbeID is returned when an option names an id outside
	// the known ranges (built-in or previously registered custom ids).
	ErrUnknownProbeID = errors.New("vmdetect: unknown probe id")

	// ErrSettingsNotTechnique is returned when a settings token
	// (NO_MEMO, HIGH_THRESHOLD, DYNAMIC, MULTIPLE) is passed where only
	// a technique id is accepted: Check and Disable reject it.
	ErrSettingsNotTechnique = errors.New("vmdetect: settings id is not a technique")

	// ErrWeightTooLarge is returned by AddCustom and ModifyScore when
	// weight > 100 (spec.md §3, Probe invariant).
	ErrWeightTooLarge = errors.New("vmdetect: weight exceeds 100")

	// ErrInvalidCheckOption is returned when Check's optional memo
	// argument is anything other than NO_MEMO.
	ErrInvalidCheckOption = errors.New("vmdetect: check accepts only NO_MEMO as its option")
)
