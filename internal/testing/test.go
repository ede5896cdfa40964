// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"regexp"

	"go.chromium.org/inlinetest/errors"
	"go.chromium.org/inlinetest/internal/config"
)

// Test describes a test as registered by its author.
type Test struct {
	// Name uniquely identifies the test within a program.
	Name string
	// Func is the test body. It runs in a child process; returning from it
	// means success.
	Func func()
}

// TestRecord is one discovered test bound to the parameters of a run.
type TestRecord struct {
	Name string
	Func func()
	// Skipped is set by the scheduler when the run filter excludes the test.
	Skipped bool
	// Params points at the run's parameters and must not be modified.
	Params *config.RunParameters
}

var testNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

func validate(t *Test) error {
	if t == nil {
		return errors.New("nil test")
	}
	if !testNameRegexp.MatchString(t.Name) {
		return errors.Errorf("invalid test name %q", t.Name)
	}
	if t.Func == nil {
		return errors.Errorf("test %s has no function", t.Name)
	}
	return nil
}
