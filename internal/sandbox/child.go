// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package sandbox

import (
	"os"
	"strings"

	"golang.org/x/exp/slices"

	"go.chromium.org/inlinetest/internal/config"
)

// ChildEnv names the environment variable through which a re-executed
// binary learns the single test it has to run.
const ChildEnv = "INLINETEST_CHILD"

// ChildTest returns the test name passed to this process by a parent
// harness, if any.
func ChildTest() (name string, ok bool) {
	return os.LookupEnv(ChildEnv)
}

// childEnv returns base without harness variables, plus the child variable
// naming test.
func childEnv(base []string, test string) []string {
	env := make([]string, 0, len(base)+1)
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if k == ChildEnv || slices.Contains(config.EnvVars, k) {
			continue
		}
		env = append(env, kv)
	}
	return append(env, ChildEnv+"="+test)
}
