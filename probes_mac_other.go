// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build !linux

package vmdetect

import "net"

// probeMACAddressCheck falls back to the standard library's interface
// enumeration outside Linux, where netlink sockets do not exist.
func probeMACAddressCheck(e *Engine) bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if len(iface.HardwareAddr) == 0 {
			continue
		}
		if brand, ok := brandForMAC(iface.HardwareAddr.String()); ok {
			e.board.add(brand)
			return true
		}
	}
	return false
}
