// Copyright (c) 2024 vmdetect authors
//
// SPDX-License-Identifier: Apache-2.0
//

// Package config loads an optional vmdetect.toml describing probes to
// disable, the active threshold, the dynamic/multiple settings, and custom
// weight overrides, the same way katautils/config.go decodes the runtime's own
// TOML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/kata-containers/vmdetect"
)

var configLogger = logrus.WithField("subsystem", "vmdetect.config")

// File is the decoded shape of vmdetect.toml.
type File struct {
	Threshold string           `toml:"threshold"` // "default" or "high"
	Dynamic   bool             `toml:"dynamic"`
	Multiple  bool             `toml:"multiple"`
	Disable   []string         `toml:"disable"`
	Weights   map[string]uint8 `toml:"weights"`
}

// Load reads and decodes path. A missing file is not an error: vmdetect
// works fully from its built-in defaults, so config is always optional.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		configLogger.WithField("path", path).Debug("no config file, using defaults")
		return &File{}, nil
	}
	if err != nil {
		return nil, err
	}

	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("vmdetect: decoding %s: %w", path, err)
	}
	configLogger.WithField("path", path).Info("loaded configuration")
	return &f, nil
}

// Options converts the decoded file into the Option list a caller passes
// straight through to Detect/Percentage/Brand/etc.
func (f *File) Options() ([]vmdetect.Option, error) {
	var opts []vmdetect.Option

	if len(f.Disable) > 0 {
		ids := make([]vmdetect.ProbeID, 0, len(f.Disable))
		for _, name := range f.Disable {
			id, ok := vmdetect.ParseProbeID(name)
			if !ok {
				return nil, fmt.Errorf("vmdetect: config: unknown probe name %q", name)
			}
			ids = append(ids, id)
		}
		set, err := vmdetect.Disable(ids...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, set)
	}

	switch f.Threshold {
	case "", "default":
	case "high":
		opts = append(opts, vmdetect.HIGH_THRESHOLD)
	default:
		return nil, fmt.Errorf("vmdetect: config: unknown threshold %q", f.Threshold)
	}
	if f.Dynamic {
		opts = append(opts, vmdetect.DYNAMIC)
	}
	if f.Multiple {
		opts = append(opts, vmdetect.MULTIPLE)
	}

	return opts, nil
}

// ApplyWeights pushes the file's [weights] table into e via ModifyScore,
// so a config-driven weight override takes effect before the first query.
func (f *File) ApplyWeights(e *vmdetect.Engine) error {
	for name, weight := range f.Weights {
		id, ok := vmdetect.ParseProbeID(name)
		if !ok {
			return fmt.Errorf("vmdetect: config: unknown probe name %q", name)
		}
		if err := e.ModifyScore(id, weight); err != nil {
			return fmt.Errorf("vmdetect: config: weight for %q: %w", name, err)
		}
	}
	return nil
}
