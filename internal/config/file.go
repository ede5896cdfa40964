// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package config

import (
	"os"

	"gopkg.in/yaml.v2"

	"go.chromium.org/inlinetest/errors"
)

// fileConfig is the YAML representation of a config file. Pointer fields
// distinguish absent keys from zero values.
type fileConfig struct {
	MaxConcurrent *int      `yaml:"max_concurrent"`
	Timeout       *float64  `yaml:"timeout"`
	Run           *[]string `yaml:"run"`
	Verbose       *bool     `yaml:"verbose"`
	StripANSI     *bool     `yaml:"strip_ansi"`
	MetricsFile   *string   `yaml:"metrics_file"`
	LogLevel      *string   `yaml:"log_level"`
}

func applyFile(p *RunParameters, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}
	var fc fileConfig
	if err := yaml.UnmarshalStrict(b, &fc); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}

	if fc.MaxConcurrent != nil {
		p.MaxConcurrent = *fc.MaxConcurrent
	}
	if fc.Timeout != nil {
		p.TimeoutSecs = *fc.Timeout
	}
	if fc.Run != nil {
		p.RunFilter = append([]string{}, (*fc.Run)...)
	}
	if fc.Verbose != nil {
		p.Verbose = *fc.Verbose
	}
	if fc.StripANSI != nil {
		p.StripANSI = *fc.StripANSI
	}
	if fc.MetricsFile != nil {
		p.MetricsFile = *fc.MetricsFile
	}
	if fc.LogLevel != nil {
		lv, err := parseLevel(*fc.LogLevel)
		if err != nil {
			return errors.Wrapf(err, "in %s", path)
		}
		p.LogLevel = lv
	}
	return nil
}
