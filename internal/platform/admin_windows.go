// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build windows

package platform

import "golang.org/x/sys/windows"

// IsAdmin reports whether the process token carries high integrity
// (spec.md §4.1). windows.Token.IsElevated reads the same
// TokenElevationType/TokenIntegrityLevel information an explicit
// GetTokenInformation(TokenIntegrityLevel) call would, without hand-rolling
// the SID comparison.
func IsAdmin() bool {
	token := windows.GetCurrentProcessToken()
	return token.IsElevated()
}
