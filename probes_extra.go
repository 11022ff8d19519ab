// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build linux

package vmdetect

import (
	"net"
	"strings"

	"github.com/mdlayher/vsock"
	"github.com/safchain/ethtool"
)

var extraLogger = logger.WithField("subsystem", "probes.extra")

// vmNICDrivers is the kernel driver-name table for paravirtualized NICs;
// a real box never binds one of these to eth0.
var vmNICDrivers = map[string]BrandID{
	"vmxnet3":    BrandVMware,
	"vmxnet":     BrandVMware,
	"virtio_net": BrandQEMU,
	"xen-netfront": BrandXen,
	"hv_netvsc":  BrandHyperV,
	"vboxnet":    BrandVirtualBox,
}

// probeNICDriver is a supplemented technique (SPEC_FULL.md "SUPPLEMENTED
// FEATURES"): the original's registry-only DRIVER_NAMES check has no
// analogue for the NIC driver bound on Linux, so this queries ethtool
// directly the way CNI/network plugins already do.
func probeNICDriver(e *Engine) bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	et, err := ethtool.NewEthtool()
	if err != nil {
		extraLogger.WithError(err).Debug("ethtool unavailable")
		return false
	}
	defer et.Close()

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		drv, err := et.DriverName(iface.Name)
		if err != nil {
			continue
		}
		if brand, ok := vmNICDrivers[strings.ToLower(drv)]; ok {
			e.board.add(brand)
			return true
		}
	}
	return false
}

// probeVSOCKDevice is a supplemented technique: /dev/vsock backs the very
// guest-to-host channel the Kata agent itself depends on, so its presence
// is direct evidence of running inside a vsock-capable hypervisor (KVM,
// Hyper-V, or a Firecracker/cloud-hypervisor microVM).
func probeVSOCKDevice(e *Engine) bool {
	cid, err := vsock.ContextID()
	if err != nil {
		return false
	}
	// CID 0 and 1 are reserved (hypervisor/loopback); any guest gets >= 3.
	return cid >= 3
}
