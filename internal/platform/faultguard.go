// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package platform

import "runtime/debug"

// Guard executes fn and converts an architectural fault (the Go runtime's
// signal-to-panic conversion for SIGSEGV/SIGBUS, enabled for the duration
// via debug.SetPanicOnFault) into ok=false instead of a crash. Every
// descriptor-table and VMware-backdoor probe (sidt, sgdt, sldt, smsw,
// osxsave, vmware_backdoor, vmware_port_memory) runs its privileged-ish
// instruction through this single abstraction, per spec.md §9's "fault
// guard should be a single abstraction... reused across all
// descriptor-table/backdoor probes". It does not leak thread state: the
// previous SetPanicOnFault value is always restored.
func Guard(fn func() bool) (result bool, ok bool) {
	prev := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(prev)
	defer func() {
		if r := recover(); r != nil {
			result, ok = false, false
		}
	}()
	return fn(), true
}
