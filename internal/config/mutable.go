// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package config

import (
	"flag"
	"fmt"

	"go.chromium.org/inlinetest/internal/command"
	"go.chromium.org/inlinetest/internal/logging"
)

// MutableConfig collects flag values until Freeze produces RunParameters.
type MutableConfig struct {
	configFile  string
	maxJobs     int
	runList     []string
	timeout     float64
	verbose     bool
	stripANSI   bool
	metricsFile string
	logLevel    logging.Level

	fs *flag.FlagSet
}

// NewMutableConfig returns a MutableConfig with default flag values.
func NewMutableConfig() *MutableConfig {
	d := Default()
	return &MutableConfig{
		maxJobs:  d.MaxConcurrent,
		timeout:  d.TimeoutSecs,
		logLevel: d.LogLevel,
	}
}

// SetFlags registers the run flags on f.
func (c *MutableConfig) SetFlags(f *flag.FlagSet) {
	c.fs = f
	f.StringVar(&c.configFile, "config", "", "path to a YAML config file (overrides $"+EnvConfig+")")
	f.IntVar(&c.maxJobs, "maxjobs", c.maxJobs, "maximum number of tests running at once (0 for no limit)")
	f.Var(command.NewListFlag(",", func(v []string) { c.runList = v }, nil), "run", "comma-separated list of tests to run; others are skipped")
	f.Float64Var(&c.timeout, "timeout", c.timeout, "per-test timeout in seconds")
	f.BoolVar(&c.verbose, "verbose", c.verbose, "capture test output through a pseudo-terminal and print it")
	f.BoolVar(&c.stripANSI, "stripansi", c.stripANSI, "remove terminal escape sequences from captured output")
	f.StringVar(&c.metricsFile, "metricsfile", "", "write Prometheus metrics to this file at the end of the run")
	lf := command.NewEnumFlag(logging.Levels, func(v int) { c.logLevel = logging.Level(v) }, "info")
	f.Var(lf, "loglevel", fmt.Sprintf("minimum level of harness logs (%s; default %q)", lf.QuotedValues(), lf.Default()))
}

// Freeze builds validated RunParameters from defaults, the config file,
// the environment (via lookup) and the flags that were explicitly set.
func (c *MutableConfig) Freeze(lookup LookupEnvFunc) (*RunParameters, error) {
	p := Default()

	path := c.configFile
	if path == "" {
		path, _ = lookup(EnvConfig)
	}
	if path != "" {
		if err := applyFile(p, path); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(p, lookup); err != nil {
		return nil, err
	}

	if c.fs != nil {
		c.fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "maxjobs":
				p.MaxConcurrent = c.maxJobs
			case "run":
				p.RunFilter = c.runList
			case "timeout":
				p.TimeoutSecs = c.timeout
			case "verbose":
				p.Verbose = c.verbose
			case "stripansi":
				p.StripANSI = c.stripANSI
			case "metricsfile":
				p.MetricsFile = c.metricsFile
			case "loglevel":
				p.LogLevel = c.logLevel
			}
		})
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
