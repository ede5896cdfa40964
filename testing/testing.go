// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package testing is the API for writing inline tests.
//
// Tests are registered from init functions and run by harness.Main, each in
// its own child process:
//
//	func init() {
//		testing.AddTest(&testing.Test{
//			Name: "Math.Add",
//			Func: func() {
//				testing.AssertEq(1+1, 2)
//			},
//		})
//	}
//
// A test passes if Func returns. It fails if the child exits with a
// non-zero status, dies from a signal or runs past its timeout. Tests run in
// registration order, which for tests registered from init functions is the
// package initialization order.
package testing

import (
	"go.chromium.org/inlinetest/internal/testing"
)

// Test describes a test: a unique name and the function run in the child.
// Names must start with a letter or underscore and contain only letters,
// digits, underscores and dots.
type Test = testing.Test

// AddTest adds test t to the global registry. It should be called from an
// init function. Invalid or duplicate tests are reported when the harness
// starts.
func AddTest(t *Test) {
	testing.AddTest(t)
}
