// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/constraints"

	"go.chromium.org/inlinetest/errors/stack"
)

// Overridden in unit tests.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// fail reports a failed assertion at the caller of the Assert function and
// terminates the test child with status 1.
func fail(detail string) {
	fmt.Fprintf(stderr, "assertion failed at %v: %s\n", stack.New(2).Top(), detail)
	exit(1)
}

// Assert fails the test if cond is false.
func Assert(cond bool) {
	if !cond {
		fail("condition is false")
	}
}

// AssertEq fails the test unless a == b.
func AssertEq[T comparable](a, b T) {
	if a != b {
		fail(fmt.Sprintf("%v == %v is false", a, b))
	}
}

// AssertNe fails the test unless a != b.
func AssertNe[T comparable](a, b T) {
	if a == b {
		fail(fmt.Sprintf("%v != %v is false", a, b))
	}
}

// AssertGt fails the test unless a > b.
func AssertGt[T constraints.Ordered](a, b T) {
	if !(a > b) {
		fail(fmt.Sprintf("%v > %v is false", a, b))
	}
}

// AssertGe fails the test unless a >= b.
func AssertGe[T constraints.Ordered](a, b T) {
	if !(a >= b) {
		fail(fmt.Sprintf("%v >= %v is false", a, b))
	}
}

// AssertLt fails the test unless a < b.
func AssertLt[T constraints.Ordered](a, b T) {
	if !(a < b) {
		fail(fmt.Sprintf("%v < %v is false", a, b))
	}
}

// AssertLe fails the test unless a <= b.
func AssertLe[T constraints.Ordered](a, b T) {
	if !(a <= b) {
		fail(fmt.Sprintf("%v <= %v is false", a, b))
	}
}
