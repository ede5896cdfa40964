// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package config

import (
	"strconv"
	"strings"

	"go.chromium.org/inlinetest/errors"
)

// Environment variables read by the harness.
const (
	EnvMaxJobs = "INLINETEST_MAX_JOBS"
	EnvRunList = "INLINETEST_RUNLIST"
	EnvTimeout = "INLINETEST_TIMEOUT"
	EnvVerbose = "INLINETEST_VERBOSE"
	EnvConfig  = "INLINETEST_CONFIG"
)

// EnvVars lists every variable the harness consumes. None of them is passed
// on to test children.
var EnvVars = []string{EnvMaxJobs, EnvRunList, EnvTimeout, EnvVerbose, EnvConfig}

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

func applyEnv(p *RunParameters, lookup LookupEnvFunc) error {
	if s, ok := lookup(EnvMaxJobs); ok {
		n, err := parseMaxJobs(s)
		if err != nil {
			return errors.Wrapf(err, "invalid value specified for %s", EnvMaxJobs)
		}
		p.MaxConcurrent = n
	}
	if s, ok := lookup(EnvRunList); ok && s != "" {
		names, err := parseRunList(s)
		if err != nil {
			return errors.Wrapf(err, "invalid value specified for %s", EnvRunList)
		}
		p.RunFilter = names
	}
	if s, ok := lookup(EnvTimeout); ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.Errorf("bad timeout value %q", s)
		}
		p.TimeoutSecs = v
	}
	if s, ok := lookup(EnvVerbose); ok {
		switch s {
		case "true":
			p.Verbose = true
		case "false":
			p.Verbose = false
		default:
			return errors.Errorf("%s must be true or false", EnvVerbose)
		}
	}
	return nil
}

// parseMaxJobs accepts an unsigned integer with an optional base prefix
// ("0x10", "010").
func parseMaxJobs(s string) (int, error) {
	n, err := strconv.ParseUint(s, 0, 31)
	if err != nil {
		return 0, errors.Errorf("%q is not an unsigned integer", s)
	}
	return int(n), nil
}

// parseRunList splits a space-separated list of test names. A single
// trailing space is tolerated; empty names elsewhere are errors.
func parseRunList(s string) ([]string, error) {
	names := strings.Split(strings.TrimSuffix(s, " "), " ")
	for _, n := range names {
		if n == "" {
			return nil, errors.Errorf("zero length test name invalid in %q", s)
		}
	}
	return names, nil
}
