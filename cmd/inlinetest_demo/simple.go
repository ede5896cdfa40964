// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"fmt"

	"go.chromium.org/inlinetest/testing"
)

func init() {
	testing.AddTest(&testing.Test{
		Name: "Simple.Good",
		Func: func() {
			fmt.Println("Running Simple.Good")
			testing.AssertEq(0, 0)
		},
	})
	testing.AddTest(&testing.Test{
		Name: "Simple.Bad",
		Func: func() {
			fmt.Println("Running Simple.Bad")
			testing.AssertEq(0, 1)
		},
	})
}
