// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

// Package probes holds the small amount of state describing the shape of
// the built-in technique table itself, as opposed to any one technique's
// logic.
package probes

import "github.com/blang/semver/v4"

// DatabaseVersion identifies the built-in probe/weight/brand table
// revision, the way kata's own component versions are tracked, so a
// config file or a long-lived client can detect when the table it was
// tuned against has moved out from under it.
var DatabaseVersion = semver.MustParse("1.0.0")

// CompatibleWith reports whether a config file declaring want as the
// database version it was authored against is still safe to load: major
// version must match exactly, same as semver.Version's own compatibility
// contract.
func CompatibleWith(want semver.Version) bool {
	return want.Major == DatabaseVersion.Major
}
