// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

package platform

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/sirupsen/logrus"
)

// commandTimeout bounds every subprocess-capture probe so a hung binary
// cannot stall a full run past spec.md §5's "no probe must block
// indefinitely".
const commandTimeout = 5 * time.Second

// maxCommandOutputSize caps what a single command-output probe (dmidecode,
// lshw, dmesg) keeps in memory; a handful of these can emit megabytes of
// firmware-table text, and a probe only ever greps for a short marker.
const maxCommandOutputSize = 2 * units.MiB

var commandLogger = logrus.WithField("subsystem", "platform.command")

// Run executes cmd through the platform shell, captures combined
// stdout+stderr, strips the trailing newline, and reports ok=false on any
// failure (missing binary, non-zero exit, timeout) — spec.md §4.1's
// run(cmd) -> Option<String>.
func Run(cmd string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	shell, flag := shellCommand()
	out, err := exec.CommandContext(ctx, shell, flag, cmd).CombinedOutput()
	if err != nil {
		return "", false
	}
	if len(out) > maxCommandOutputSize {
		commandLogger.WithField("size", units.HumanSize(float64(len(out)))).
			Debug("command output truncated")
		out = out[:maxCommandOutputSize]
	}
	return strings.TrimRight(string(out), "\n"), true
}

// LookPath reports whether name resolves to an executable on PATH,
// letting command-output probes skip the subprocess call entirely when the
// binary is missing (spec.md §7: "required binary missing" -> silent
// false).
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
