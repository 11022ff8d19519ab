// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build windows

package platform

func shellCommand() (string, string) {
	return "cmd.exe", "/C"
}
