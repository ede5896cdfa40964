// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package main is a program that carries nothing but inline tests, showing
// how tests pass, fail, crash, time out and get filtered.
//
// Try for example:
//
//	inlinetest_demo -verbose
//	INLINETEST_MAX_JOBS=2 inlinetest_demo -verbose -run=MaxJobs.One,MaxJobs.Two,MaxJobs.Three
//	INLINETEST_RUNLIST="Skip.One Skip.Three" inlinetest_demo -verbose
//	inlinetest_demo list
package main

import (
	"go.chromium.org/inlinetest/harness"
)

func main() {
	harness.Main()
}
