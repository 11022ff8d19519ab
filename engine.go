// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kata-containers/vmdetect/internal/probes"
)

// logger is the root subsystem entry; every probe-category file derives
// its own child via .WithField("subsystem", ...), mirroring
// virtcontainers/hypervisor.go's hvLogger / virtcontainers/clh.go's
// per-hypervisor subsystem fields.
var logger = logrus.WithField("subsystem", "vmdetect")

// cacheEntry is the per-probe memoization slot from spec.md §3.
type cacheEntry struct {
	result bool
	weight uint8
}

type registryEntry struct {
	id ProbeID
	fn func(*Engine) bool
}

// CustomThunk is a user-supplied probe body, registered via AddCustom.
type CustomThunk func() bool

// Engine holds all per-invocation state: the scoreboard, the cache, the
// Hyper-X slot, and runtime-adjustable weights/custom probes. spec.md §9
// re-expresses the source's global mutable state as this explicit value,
// threaded through every query; defaultEngine keeps a process-global
// instance for the package-level convenience functions in vmdetect.go.
type Engine struct {
	weights map[ProbeID]uint8
	cache   map[ProbeID]cacheEntry
	board   scoreboard

	custom       []registryEntry
	customNames  map[ProbeID]string
	nextCustomID ProbeID

	hyperXCached     *hyperXState
	hyperXBrandDone  bool
}

// NewEngine constructs an Engine with the default weight table and empty
// cache/scoreboard.
func NewEngine() *Engine {
	logger.WithField("db_version", probes.DatabaseVersion.String()).Debug("engine constructed")

	weights := make(map[ProbeID]uint8, len(defaultWeights))
	for id, w := range defaultWeights {
		weights[id] = w
	}
	return &Engine{
		weights:      weights,
		cache:        make(map[ProbeID]cacheEntry),
		board:        make(scoreboard),
		customNames:  make(map[ProbeID]string),
		nextCustomID: idCount,
	}
}

// resetMemoState clears the cache, scoreboard, and Hyper-X slot; called
// only when a query sets NO_MEMO (spec.md §3's "un-memoized full run").
func (e *Engine) resetMemoState() {
	e.cache = make(map[ProbeID]cacheEntry)
	e.board = make(scoreboard)
	e.hyperXCached = nil
	e.hyperXBrandDone = false
}

// runProbe invokes fn unless memo is true and id is already cached, in
// which case the cached (result, weight) pair is used and fn is not
// called (spec.md §8 invariant 5). A panicking probe (spec.md §7, custom
// probes) is treated as returning false; the rest of the run continues.
func (e *Engine) runProbe(id ProbeID, fn func(*Engine) bool, memo bool) bool {
	if memo {
		if ce, ok := e.cache[id]; ok {
			return ce.result
		}
	}

	result := e.invoke(fn)

	if memo {
		e.cache[id] = cacheEntry{result: result, weight: e.weights[id]}
	}
	return result
}

func (e *Engine) invoke(fn func(*Engine) bool) (result bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Debug("probe panicked, treating as false")
			result = false
		}
	}()
	return fn(e)
}

func (e *Engine) hyperX() hyperXState {
	if e.hyperXCached == nil {
		v := resolveHyperX()
		e.hyperXCached = &v
	}
	return *e.hyperXCached
}

// applyHyperXBrand adds the Hyper-X arbiter's own scoreboard contribution
// (spec.md §4.4's "Brand added" column), independent of any probe. It is
// idempotent per memo cycle so repeated Brand()/Type() calls do not
// double-count it.
func (e *Engine) applyHyperXBrand() {
	if e.hyperXBrandDone {
		return
	}
	e.hyperXBrandDone = true
	switch e.hyperX() {
	case hyperXReal:
		e.board.add(BrandHyperV)
	case hyperXEnlightenment:
		e.board.add(BrandQEMUKVMEnlight)
	case hyperXArtifact:
		e.board.add(BrandHyperVArtifct)
	}
}

// gpuMergeContribution implements spec.md §4.4's GPU-pair deduplication
// and §8 invariant 9.
func (e *Engine) gpuMergeContribution(gvs, gcap bool) int {
	switch {
	case gvs && gcap:
		return 100
	case gvs:
		return int(e.weights[GPU_VM_STRINGS])
	case gcap:
		return int(e.weights[GPU_CAPABILITIES])
	default:
		return 0
	}
}

// runResult is the aggregate output of a full run_all pass.
type runResult struct {
	score    int
	detected []ProbeID
}

// runAll implements spec.md §4.4's run_all(enabled_set, shortcut).
func (e *Engine) runAll(enabled EnabledSet, shortcut bool) runResult {
	memo := !enabled.has(NO_MEMO)
	if !memo {
		e.resetMemoState()
	}

	threshold := thresholdDefault
	if enabled.has(HIGH_THRESHOLD) {
		threshold = thresholdHigh
	}

	var (
		total    int
		detected []ProbeID
		gvs, gcap bool
		gvsSeen, gcapSeen bool
	)

	for _, entry := range builtinProbes {
		if !enabled.has(entry.id) {
			continue
		}
		if entry.id == GPU_VM_STRINGS || entry.id == GPU_CAPABILITIES {
			res := e.runProbe(entry.id, entry.fn, memo)
			if res {
				detected = append(detected, entry.id)
			}
			if entry.id == GPU_VM_STRINGS {
				gvs, gvsSeen = res, true
			} else {
				gcap, gcapSeen = res, true
			}
			continue
		}

		res := e.runProbe(entry.id, entry.fn, memo)
		if res {
			total += int(e.weights[entry.id])
			detected = append(detected, entry.id)
		}

		if shortcut && total >= threshold {
			return runResult{score: total, detected: detected}
		}
	}

	if gvsSeen || gcapSeen {
		total += e.gpuMergeContribution(gvs, gcap)
	}

	for _, entry := range e.custom {
		res := e.runProbe(entry.id, entry.fn, memo)
		if res {
			total += int(e.weights[entry.id])
			detected = append(detected, entry.id)
		}
		if shortcut && total >= threshold {
			break
		}
	}

	return runResult{score: total, detected: detected}
}

// Check implements spec.md §6 check(probe_id, memo_option?) -> bool. The
// only accepted option is NO_MEMO; any other id (including other settings
// tokens) is rejected per spec.md §4.5's "settings tokens passed to
// check(single)".
func (e *Engine) Check(id ProbeID, memoOpt ...ProbeID) (bool, error) {
	if len(memoOpt) > 1 {
		return false, ErrInvalidCheckOption
	}
	memo := true
	if len(memoOpt) == 1 {
		if memoOpt[0] != NO_MEMO {
			return false, ErrInvalidCheckOption
		}
		memo = false
	}

	fn, ok := e.lookupThunk(id)
	if !ok {
		if id.IsSetting() {
			return false, ErrSettingsNotTechnique
		}
		return false, ErrUnknownProbeID
	}
	return e.runProbe(id, fn, memo), nil
}

func (e *Engine) lookupThunk(id ProbeID) (func(*Engine) bool, bool) {
	for _, entry := range builtinProbes {
		if entry.id == id {
			return entry.fn, true
		}
	}
	for _, entry := range e.custom {
		if entry.id == id {
			return entry.fn, true
		}
	}
	return nil, false
}

// Detect implements spec.md §6 detect(options...) -> bool and §8
// invariant 1. It compares the raw accumulated score against the active
// threshold directly, so DYNAMIC's 0..99 percentage compression never
// distorts the verdict.
func (e *Engine) Detect(opts ...Option) (bool, error) {
	enabled, err := normalize(opts...)
	if err != nil {
		return false, err
	}
	threshold := thresholdDefault
	if enabled.has(HIGH_THRESHOLD) {
		threshold = thresholdHigh
	}
	res := e.runAll(enabled, true)
	return res.score >= threshold, nil
}

// Percentage implements spec.md §6 percentage(options...) -> u8.
func (e *Engine) Percentage(opts ...Option) (uint8, error) {
	enabled, err := normalize(opts...)
	if err != nil {
		return 0, err
	}
	threshold := thresholdDefault
	if enabled.has(HIGH_THRESHOLD) {
		threshold = thresholdHigh
	}
	res := e.runAll(enabled, true)

	if enabled.has(DYNAMIC) {
		switch {
		case res.score >= threshold:
			return 100, nil
		case res.score >= 100:
			return 99, nil
		case res.score <= 0:
			return 0, nil
		default:
			return uint8(res.score), nil
		}
	}

	if res.score >= threshold {
		return 100, nil
	}
	return 0, nil
}

// Brand implements spec.md §6 brand(options...) -> string and §4.4's
// "Brand finalization".
func (e *Engine) Brand(opts ...Option) (string, error) {
	enabled, err := normalize(opts...)
	if err != nil {
		return "", err
	}
	res := e.runAll(enabled, false)
	e.applyHyperXBrand()
	return finalizeBrand(e.board, enabled.has(MULTIPLE), res.score), nil
}

// Type implements spec.md §6 type(options...) -> string.
func (e *Engine) Type(opts ...Option) (string, error) {
	brand, err := e.Brand(opts...)
	if err != nil {
		return "", err
	}
	return string(categoryFor(brand)), nil
}

// Conclusion implements spec.md §6 conclusion(options...) -> string.
func (e *Engine) Conclusion(opts ...Option) (string, error) {
	enabled, err := normalize(opts...)
	if err != nil {
		return "", err
	}
	brand, err := e.Brand(opts...)
	if err != nil {
		return "", err
	}
	pct, err := e.Percentage(opts...)
	if err != nil {
		return "", err
	}
	return conclude(pct, brand, enabled.has(DYNAMIC)), nil
}

// DetectedEnums implements spec.md §6 detected_enums(options...) ->
// list<ProbeId>.
func (e *Engine) DetectedEnums(opts ...Option) ([]ProbeID, error) {
	enabled, err := normalize(opts...)
	if err != nil {
		return nil, err
	}
	res := e.runAll(enabled, false)
	return res.detected, nil
}

// DetectedCount implements spec.md §6 detected_count(options...) -> u8
// and §8 invariant 3.
func (e *Engine) DetectedCount(opts ...Option) (uint8, error) {
	ids, err := e.DetectedEnums(opts...)
	if err != nil {
		return 0, err
	}
	return uint8(len(ids)), nil
}

// AddCustom implements spec.md §6 add_custom(weight, thunk) -> void.
func (e *Engine) AddCustom(weight uint8, thunk CustomThunk) (ProbeID, error) {
	if weight > 100 {
		return 0, ErrWeightTooLarge
	}
	id := e.nextCustomID
	e.nextCustomID++
	e.weights[id] = weight
	e.customNames[id] = fmt.Sprintf("CUSTOM_%d", int(id)-int(idCount))
	e.custom = append(e.custom, registryEntry{
		id: id,
		fn: func(_ *Engine) bool { return thunk() },
	})
	return id, nil
}

// ModifyScore implements spec.md §6 modify_score(probe_id, new_weight) ->
// void and §8 invariant 6 (monotonicity in weights).
func (e *Engine) ModifyScore(id ProbeID, weight uint8) error {
	if weight > 100 {
		return ErrWeightTooLarge
	}
	if !id.IsTechnique() {
		if _, ok := e.customNames[id]; !ok {
			return ErrUnknownProbeID
		}
	}
	e.weights[id] = weight
	delete(e.cache, id) // a changed weight must be reflected on next run
	return nil
}

// NameOf returns the stable name for id, resolving both built-in and
// custom ids (custom ids are not in FlagToString's static table).
func (e *Engine) NameOf(id ProbeID) string {
	if name := FlagToString(id); name != "" {
		return name
	}
	return e.customNames[id]
}
