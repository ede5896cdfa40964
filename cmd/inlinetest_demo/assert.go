// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"fmt"

	"go.chromium.org/inlinetest/testing"
)

// assertCase is one comparison exercised by an Assert.* test.
type assertCase struct {
	name  string
	check func()
}

func init() {
	for _, c := range []assertCase{
		{"AssertSuccess", func() { testing.Assert(true) }},
		{"AssertFailure", func() { testing.Assert(false) }},
		{"EqSuccess", func() { testing.AssertEq(0, 0) }},
		{"EqFailure", func() { testing.AssertEq(0, 1) }},
		{"NeSuccess", func() { testing.AssertNe(0, 1) }},
		{"NeFailure", func() { testing.AssertNe(0, 0) }},
		{"GtSuccess", func() { testing.AssertGt(1, 0) }},
		{"GtFailure", func() { testing.AssertGt(0, 1) }},
		{"GeSuccess", func() { testing.AssertGe(0, 0) }},
		{"GeFailure", func() { testing.AssertGe(0, 1) }},
		{"LtSuccess", func() { testing.AssertLt(0, 1) }},
		{"LtFailure", func() { testing.AssertLt(0, 0) }},
		{"LeSuccess", func() { testing.AssertLe(0, 0) }},
		{"LeFailure", func() { testing.AssertLe(1, 0) }},
	} {
		c := c
		name := "Assert." + c.name
		testing.AddTest(&testing.Test{
			Name: name,
			Func: func() {
				fmt.Println("This is printed by test", name)
				c.check()
			},
		})
	}
}
