// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build !amd64 && !386

package platform

// SIDT, SGDT, SLDT, SMSW, and VPCInvalidTrip all require raw x86
// descriptor-table instructions; on every other architecture they report
// unsupported rather than fault (spec.md §4.1).
func SIDT() (byte, bool)   { return 0, false }
func SGDT() (byte, bool)   { return 0, false }
func SLDT() (uint16, bool) { return 0, false }
func SMSW() (uint16, bool) { return 0, false }
func VPCInvalidTrip() bool { return false }

func VMwareBackdoor() (eax, ebx, ecx, edx uint32, ok bool) { return 0, 0, 0, 0, false }
func XGetBV() (uint64, bool)                               { return 0, false }
