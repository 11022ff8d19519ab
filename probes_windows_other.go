// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build !windows

package vmdetect

// The Windows-only techniques have no POSIX equivalent registry/driver
// surface to inspect; they report false everywhere but Windows rather than
// being omitted from the id space, so Disable/ModifyScore/Check still
// resolve them uniformly across platforms.

func probeMSSMBIOS(e *Engine) bool         { return false }
func probeFirmware(e *Engine) bool         { return false }
func probeDMIScan(e *Engine) bool          { return false }
func probeSMBIOSVMBit(e *Engine) bool      { return false }
func probeNativeVHD(e *Engine) bool        { return false }
func probeVirtualRegistry(e *Engine) bool  { return false }
func probeDriverNames(e *Engine) bool      { return false }
func probeDiskSerialNumber(e *Engine) bool { return false }
func probePortConnectors(e *Engine) bool   { return false }
func probeGPUVMStrings(e *Engine) bool     { return false }
func probeGPUCapabilities(e *Engine) bool  { return false }
func probeVMDevices(e *Engine) bool        { return false }
func probeBadPools(e *Engine) bool         { return false }
func probeACPITemperature(e *Engine) bool  { return false }
func probeHyperVQuery(e *Engine) bool      { return false }
func probeVirtualProcessors(e *Engine) bool { return false }
func probeProcessorNumber(e *Engine) bool  { return false }
func probeNumberOfCores(e *Engine) bool    { return false }
func probeAudio(e *Engine) bool            { return false }
func probeRegistryKey(e *Engine) bool      { return false }
func probeHKLMRegistries(e *Engine) bool   { return false }
func probeDLLCheck(e *Engine) bool         { return false }
func probeMutex(e *Engine) bool            { return false }
func probeDeviceString(e *Engine) bool     { return false }
