// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package vmdetect

import "sort"

// BrandID is a string-keyed product identifier. Values double as the final
// display string returned by Engine.Brand, except BrandHyperVArtifct, which
// finalizeBrand rewrites to a descriptive sentence.
type BrandID string

const (
	BrandUnknown       BrandID = "Unknown"
	BrandHyperVArtifct BrandID = "HYPERV_ARTIFACT" // not-a-VM marker, never shown verbatim

	BrandBhyve             BrandID = "bhyve"
	BrandKVM               BrandID = "KVM"
	BrandQEMU              BrandID = "QEMU"
	BrandQEMUKVM           BrandID = "QEMU+KVM"
	BrandKVMHyperV         BrandID = "KVM-Hyper-V"
	BrandQEMUKVMHyperV     BrandID = "QEMU+KVM+Hyper-V"
	BrandQEMUKVMEnlight    BrandID = "QEMU+KVM Hyper-V Enlightenment"
	BrandHyperV            BrandID = "Hyper-V"
	BrandVirtualPC         BrandID = "Virtual PC"
	BrandHyperVVPC         BrandID = "HYPERV_VPC"
	BrandAzure             BrandID = "Azure"
	BrandNanoVisor         BrandID = "Xbox NanoVisor"
	BrandSimpleVisor       BrandID = "SimpleVisor"
	BrandVMware            BrandID = "VMware"
	BrandVMwareExpress     BrandID = "VMware Express"
	BrandVMwareESX         BrandID = "VMware ESX"
	BrandVMwareGSX         BrandID = "VMware GSX"
	BrandVMwareWorkstation BrandID = "VMware Workstation"
	BrandVMwareFusion      BrandID = "VMware Fusion"
	BrandVMwareHardened    BrandID = "VMwareHardenedLoader"
	BrandVirtualBox        BrandID = "VirtualBox"
	BrandXen               BrandID = "Xen"
	BrandParallels         BrandID = "Parallels"
	BrandACRN              BrandID = "ACRN"
	BrandQNX               BrandID = "QNX"
	BrandNVMM              BrandID = "NVMM"
	BrandOpenBSDVMM        BrandID = "OpenBSD VMM"
	BrandIntelHAXM         BrandID = "Intel HAXM"
	BrandUnisysSPar        BrandID = "Unisys s-Par"
	BrandLMHS              BrandID = "Lockheed Martin LMHS"
	BrandJailhouse         BrandID = "Jailhouse"
	BrandAppleVZ           BrandID = "Apple Virtualization"
	BrandIntelKGT          BrandID = "Intel KGT (Trusty)"
	BrandBarevisor         BrandID = "Barevisor"
	BrandHyperPlatform     BrandID = "HyperPlatform"
	BrandMiniVisor         BrandID = "MiniVisor"
	BrandIntelTDX          BrandID = "Intel TDX"
	BrandLKVM              BrandID = "LKVM"
	BrandNekoProject       BrandID = "Neko Project II"
	BrandNoirVisor         BrandID = "NoirVisor"
	BrandWSL               BrandID = "WSL"
	BrandDocker            BrandID = "Docker"
	BrandPodman            BrandID = "Podman"
	BrandSandboxie         BrandID = "Sandboxie"
	BrandCuckoo            BrandID = "Cuckoo"
	BrandAnubis            BrandID = "Anubis"
)

// scoreboard is the BrandID -> accumulated-points mapping mutated only via
// (*Engine).add. It is reset to zero at the start of every un-memoized full
// run (spec.md §3, BrandScoreboard invariant).
type scoreboard map[BrandID]uint16

func (s scoreboard) add(b BrandID) bool {
	s[b]++
	return true
}

func (s scoreboard) addPoints(b BrandID, n uint16) bool {
	s[b] += n
	return true
}

type brandScore struct {
	id    BrandID
	score uint16
}

// mergeRule replaces two competing brands, each with score >= 1, by a
// single result brand with score 2 (spec.md §4.4 step 4). Rules are tried
// in order; the first matching pair wins.
type mergeRule struct {
	left, right []BrandID
	result      BrandID
}

var mergeRules = []mergeRule{
	{[]BrandID{BrandAzure}, []BrandID{BrandHyperV, BrandVirtualPC, BrandHyperVVPC}, BrandAzure},
	{[]BrandID{BrandNanoVisor}, []BrandID{BrandHyperV, BrandVirtualPC, BrandHyperVVPC}, BrandNanoVisor},
	{[]BrandID{BrandQEMU}, []BrandID{BrandKVM}, BrandQEMUKVM},
	{[]BrandID{BrandKVM}, []BrandID{BrandHyperV}, BrandKVMHyperV},
	{[]BrandID{BrandQEMU, BrandQEMUKVM}, []BrandID{BrandHyperV}, BrandQEMUKVMHyperV},
	{[]BrandID{BrandKVM, BrandQEMU, BrandQEMUKVM}, []BrandID{BrandKVMHyperV}, BrandQEMUKVMHyperV},
	{[]BrandID{BrandVMware}, []BrandID{BrandVMwareFusion, BrandVMwareExpress, BrandVMwareESX, BrandVMwareGSX, BrandVMwareWorkstation}, ""},
	{[]BrandID{BrandVMwareHardened}, []BrandID{BrandVMware, BrandVMwareFusion, BrandVMwareExpress, BrandVMwareESX, BrandVMwareGSX, BrandVMwareWorkstation}, BrandVMwareHardened},
}

func hasAny(sb scoreboard, ids []BrandID) (BrandID, bool) {
	for _, id := range ids {
		if sb[id] >= 1 {
			return id, true
		}
	}
	return "", false
}

// applyMergeRules runs the spec.md §4.4 step-4 merge table in a single pass,
// trying each rule once in table order. A result brand written by an
// earlier rule is visible to later rules, so multi-step merges that follow
// the table order (e.g. KVM+QEMU then +Hyper-V) converge; a rule is not
// re-tried after a later rule has fired.
func applyMergeRules(sb scoreboard) {
	for _, rule := range mergeRules {
		left, okL := hasAny(sb, rule.left)
		if !okL {
			continue
		}
		right, okR := hasAny(sb, rule.right)
		if !okR || right == left {
			continue
		}
		result := rule.result
		if result == "" {
			// VMware + sub-variant: the sub-variant wins outright.
			result = right
		}
		delete(sb, left)
		if result != right {
			delete(sb, right)
		}
		sb[result] = 2
	}
}

// finalizeBrand implements spec.md §4.4 "Brand finalization". globalScore
// is the run's accumulated probe-weight score (spec.md §4.4 step 5: "if the
// global score is > 0, drop HYPERV_ARTIFACT"), which is independent of the
// brand scoreboard's own per-brand point counts.
func finalizeBrand(sb scoreboard, multiple bool, globalScore int) string {
	candidates := make(scoreboard, len(sb))
	for id, score := range sb {
		if score >= 1 {
			candidates[id] = score
		}
	}

	if len(candidates) > 1 {
		delete(candidates, BrandHyperVArtifct)
	}

	if hv, hasHV := candidates[BrandHyperV]; hasHV {
		if vpc, hasVPC := candidates[BrandVirtualPC]; hasVPC {
			if hv == vpc {
				delete(candidates, BrandHyperV)
				delete(candidates, BrandVirtualPC)
				candidates[BrandHyperVVPC] = hv
			} else if hv > vpc {
				delete(candidates, BrandVirtualPC)
			}
		}
	}

	applyMergeRules(candidates)

	if globalScore > 0 {
		delete(candidates, BrandHyperVArtifct)
	}

	if len(candidates) == 0 {
		return string(BrandUnknown)
	}

	list := make([]brandScore, 0, len(candidates))
	for id, score := range candidates {
		list = append(list, brandScore{id, score})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].id < list[j].id
	})

	if list[0].id == BrandHyperVArtifct {
		return "Hyper-V artifact (not an actual VM)"
	}

	if multiple {
		names := make([]string, len(list))
		for i, b := range list {
			names[i] = string(b.id)
		}
		return joinOr(names)
	}
	return string(list[0].id)
}

func joinOr(names []string) string {
	out := names[0]
	for _, n := range names[1:] {
		out += " or " + n
	}
	return out
}
