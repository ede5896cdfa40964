// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package shutil formats command lines for humans, so that a child process
// launched by the harness can be reproduced by pasting its logged command
// line into a shell.
package shutil

import (
	"regexp"
	"strings"
)

// plainArg matches arguments a POSIX shell passes through unchanged.
// A leading '=' triggers expansion in zsh, so it is only allowed after the
// first character.
var plainArg = regexp.MustCompile(`^[-\w@%+:,./][-\w@%+:,./=]*$`)

// Escape returns s quoted for a shell, or s itself if no quoting is needed.
func Escape(s string) string {
	if plainArg.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// EscapeSlice quotes each element of args and joins them with spaces.
func EscapeSlice(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Escape(a)
	}
	return strings.Join(quoted, " ")
}

// CommandLine formats args preceded by KEY=VALUE environment assignments,
// e.g. "INLINETEST_CHILD=foo /path/to/bin". Values are quoted; keys are
// expected to be valid variable names.
func CommandLine(env, args []string) string {
	parts := make([]string, 0, len(env)+1)
	for _, kv := range env {
		k, v, _ := strings.Cut(kv, "=")
		parts = append(parts, k+"="+Escape(v))
	}
	parts = append(parts, EscapeSlice(args))
	return strings.Join(parts, " ")
}
