// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build !linux

package vmdetect

// ethtool and AF_VSOCK are Linux-only facilities; the supplemented NIC
// driver and vsock-device techniques report false elsewhere.

func probeNICDriver(e *Engine) bool   { return false }
func probeVSOCKDevice(e *Engine) bool { return false }
