// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"github.com/hashicorp/go-multierror"
)

// EnabledSet is a fixed-width bitset indexed by ProbeID, plus the four
// settings bits (spec.md §3). It is the normalized product of the flag
// handler and the argument accepted by Disable.
type EnabledSet struct {
	bits [idCount]bool
}

func (s EnabledSet) has(id ProbeID) bool { return s.bits[id] }
func (s *EnabledSet) set(id ProbeID)     { s.bits[id] = true }
func (s *EnabledSet) clear(id ProbeID)   { s.bits[id] = false }

// HasTechnique reports whether id is enabled in s; used by callers that
// want to inspect an EnabledSet they built via Disable before passing it
// to a query.
func (s EnabledSet) HasTechnique(id ProbeID) bool {
	return id.IsTechnique() && s.has(id)
}

// Option is satisfied by ProbeID, EnabledSet, and *Options: every public
// query (Detect, Percentage, Brand, Type, Conclusion, DetectedEnums,
// DetectedCount) accepts a variadic list of Options, matching spec.md §6.
// This replaces the source's variadic-template convenience with a small
// closed interface (spec.md §9 design note).
type Option interface {
	applyOption(*rawTokens)
}

type rawTokens struct {
	ids  []ProbeID
	sets []EnabledSet
}

func (id ProbeID) applyOption(t *rawTokens)     { t.ids = append(t.ids, id) }
func (s EnabledSet) applyOption(t *rawTokens)   { t.sets = append(t.sets, s) }

// Options is the builder form the spec.md §9 design note recommends for
// callers assembling an ad hoc list programmatically, as an alternative to
// passing a flat Option... list.
type Options struct {
	tokens []Option
}

// NewOptions starts an empty builder.
func NewOptions() *Options { return &Options{} }

// Enable adds technique ids (or DEFAULT/ALL) to the builder.
func (o *Options) Enable(ids ...ProbeID) *Options {
	for _, id := range ids {
		o.tokens = append(o.tokens, id)
	}
	return o
}

// Setting adds a settings token (NO_MEMO, HIGH_THRESHOLD, DYNAMIC,
// MULTIPLE) to the builder.
func (o *Options) Setting(ids ...ProbeID) *Options {
	return o.Enable(ids...)
}

// Without adds a pre-built Disable(...) set to the builder.
func (o *Options) Without(set EnabledSet) *Options {
	o.tokens = append(o.tokens, set)
	return o
}

func (o *Options) applyOption(t *rawTokens) {
	for _, tok := range o.tokens {
		tok.applyOption(t)
	}
}

// Disable builds an EnabledSet with the given technique ids excluded from
// an otherwise-full technique set, for use as an Option on a later query
// (spec.md §6 disable(probe_id...) -> EnabledSet). Passing a settings id
// is rejected.
func Disable(ids ...ProbeID) (EnabledSet, error) {
	var set EnabledSet
	for id := VMID; id < techniqueCount; id++ {
		set.set(id)
	}
	for _, id := range ids {
		if !id.IsTechnique() {
			return EnabledSet{}, ErrSettingsNotTechnique
		}
		set.clear(id)
	}
	return set, nil
}

// normalize implements the flag handler, spec.md §4.5.
func normalize(opts ...Option) (EnabledSet, error) {
	var raw rawTokens
	for _, o := range opts {
		o.applyOption(&raw)
	}

	var (
		enabled        EnabledSet
		settings       EnabledSet
		sawDefault     bool
		sawAll         bool
		sawTechnique   bool
		errs           *multierror.Error
	)

	for _, id := range raw.ids {
		switch {
		case id == NULL_ARG:
			// explicit no-op placeholder
		case id == DEFAULT:
			sawDefault = true
		case id == ALL:
			sawAll = true
		case id.IsSetting():
			settings.set(id)
		case id.IsTechnique():
			enabled.set(id)
			sawTechnique = true
		default:
			errs = multierror.Append(errs, ErrUnknownProbeID)
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return EnabledSet{}, err
	}

	if sawDefault {
		for id := VMID; id < techniqueCount; id++ {
			if !defaultDisabled[id] {
				enabled.set(id)
			}
		}
	}
	if sawAll {
		for id := VMID; id < techniqueCount; id++ {
			enabled.set(id)
		}
	}
	if !sawDefault && !sawAll && !sawTechnique && len(raw.sets) == 0 {
		// Empty input (spec.md §4.5): the DEFAULT set, no settings.
		for id := VMID; id < techniqueCount; id++ {
			if !defaultDisabled[id] {
				enabled.set(id)
			}
		}
	}

	if !sawDefault && !sawAll && !sawTechnique && len(raw.sets) > 0 {
		// No explicit technique source besides the disable set(s) below:
		// seed from DEFAULT so the intersection narrows it down instead
		// of intersecting against an all-false set.
		for id := VMID; id < techniqueCount; id++ {
			if !defaultDisabled[id] {
				enabled.set(id)
			}
		}
	}

	for _, s := range raw.sets {
		for id := VMID; id < techniqueCount; id++ {
			if !s.has(id) {
				enabled.clear(id)
			}
		}
	}

	hasTechnique := false
	for id := VMID; id < techniqueCount; id++ {
		if enabled.has(id) {
			hasTechnique = true
			break
		}
	}
	if !hasTechnique {
		for id := VMID; id < techniqueCount; id++ {
			if !defaultDisabled[id] {
				enabled.set(id)
			}
		}
	}

	for id := NO_MEMO; id < idCount; id++ {
		if settings.has(id) {
			enabled.set(id)
		}
	}

	return enabled, nil
}
