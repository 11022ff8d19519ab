// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build linux

package vmdetect

import "github.com/vishvananda/netlink"

// probeMACAddressCheck enumerates interfaces through netlink rather than
// net.Interfaces, matching the way the rest of the Kata runtime already
// talks to the kernel's link layer for tc/bridge setup.
func probeMACAddressCheck(e *Engine) bool {
	links, err := netlink.LinkList()
	if err != nil {
		logger.WithError(err).Debug("netlink.LinkList failed")
		return false
	}
	for _, link := range links {
		attrs := link.Attrs()
		if attrs == nil || attrs.HardwareAddr == nil {
			continue
		}
		if brand, ok := brandForMAC(attrs.HardwareAddr.String()); ok {
			e.board.add(brand)
			return true
		}
	}
	return false
}
