// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package config produces the immutable RunParameters of a harness run.
//
// Values come from, in increasing order of precedence: built-in defaults,
// an optional YAML file, INLINETEST_* environment variables and flags of
// the run subcommand.
package config

import (
	"math"
	"time"

	"golang.org/x/exp/slices"

	"go.chromium.org/inlinetest/errors"
	"go.chromium.org/inlinetest/internal/logging"
)

// DefaultTimeout is the per-test timeout in seconds used when none is set.
const DefaultTimeout = 30.0

// RunParameters holds the settings of one run. It must not be modified
// after the run starts.
type RunParameters struct {
	// MaxConcurrent bounds the number of tests running at once. 0 means
	// unbounded.
	MaxConcurrent int
	// TimeoutSecs is the per-test time limit in seconds.
	TimeoutSecs float64
	// RunFilter lists the tests to run. nil runs every test; a non-nil
	// list runs only its members.
	RunFilter []string
	// Verbose captures child output through a pseudo-terminal. Otherwise
	// child stdio is connected to the null device.
	Verbose bool
	// StripANSI removes terminal escape sequences from captured logs.
	StripANSI bool
	// MetricsFile, if non-empty, receives Prometheus metrics at run end.
	MetricsFile string
	// LogLevel is the minimum level of harness diagnostics on stderr.
	LogLevel logging.Level
}

// Default returns the parameters used when nothing is configured.
func Default() *RunParameters {
	return &RunParameters{
		TimeoutSecs: DefaultTimeout,
		LogLevel:    logging.LevelInfo,
	}
}

// Timeout returns the per-test time limit.
func (p *RunParameters) Timeout() time.Duration {
	return time.Duration(p.TimeoutSecs * float64(time.Second))
}

// ShouldRun reports whether the test named name passes the run filter.
func (p *RunParameters) ShouldRun(name string) bool {
	if p.RunFilter == nil {
		return true
	}
	return slices.Contains(p.RunFilter, name)
}

// Validate checks that p is usable for a run.
func (p *RunParameters) Validate() error {
	if p.MaxConcurrent < 0 {
		return errors.Errorf("invalid max concurrency %d", p.MaxConcurrent)
	}
	if math.IsNaN(p.TimeoutSecs) || math.IsInf(p.TimeoutSecs, 0) || p.TimeoutSecs <= 0 {
		return errors.Errorf("bad timeout value %g", p.TimeoutSecs)
	}
	for _, n := range p.RunFilter {
		if n == "" {
			return errors.New("zero length test name in run list")
		}
	}
	if _, ok := levelNames[p.LogLevel]; !ok {
		return errors.Errorf("invalid log level %v", p.LogLevel)
	}
	return nil
}

var levelNames = map[logging.Level]string{
	logging.LevelDebug: "debug",
	logging.LevelInfo:  "info",
}

func parseLevel(s string) (logging.Level, error) {
	v, ok := logging.Levels[s]
	if !ok {
		return 0, errors.Errorf("invalid log level %q", s)
	}
	return logging.Level(v), nil
}
