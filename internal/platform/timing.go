// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package platform

// Affinity pins the calling goroutine's backing OS thread to a single
// logical processor and returns a restore func, used exclusively by the
// timing probe (spec.md §4.1, §5: "Internal threading occurs only inside
// the timing probe"). On platforms without a cheap affinity primitive,
// PinThread is a no-op whose restore func is also a no-op, and the timing
// probe's cross-core sub-tests simply get noisier rather than failing.
type Affinity interface {
	Restore()
}

type noopAffinity struct{}

func (noopAffinity) Restore() {}
