// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import (
	"strings"

	"github.com/kata-containers/vmdetect/internal/cpu"
)

// hyperXState is HyperXState from spec.md §3.
type hyperXState int

const (
	hyperXUnknown hyperXState = iota
	hyperXReal
	hyperXArtifact
	hyperXEnlightenment
)

// resolveHyperX implements the spec.md §4.4 decision table. It is computed
// lazily on first query and cached on the Engine (spec.md §4.4: "performed
// lazily on first query, not as part of the main loop").
func resolveHyperX() hyperXState {
	if !cpu.HasHypervisorBit() {
		return hyperXUnknown
	}
	maxLeaf := cpu.HypervisorMaxLeaf()
	rootPartition := cpu.ID(0x40000003, 0).EBX&1 != 0
	vendor001 := cpu.HypervisorVendorString(0x40000001)

	if !rootPartition {
		if maxLeaf == 11 {
			return hyperXReal
		}
		return hyperXUnknown
	}
	if strings.Contains(vendor001, "KVM") {
		return hyperXEnlightenment
	}
	return hyperXArtifact
}
