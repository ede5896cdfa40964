// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"fmt"

	"go.chromium.org/inlinetest/testing"
)

func init() {
	for i, name := range []string{"Skip.One", "Skip.Two", "Skip.Three", "Skip.Four"} {
		name := name
		msg := "You should see this message"
		if i%2 == 1 {
			msg = "You should not see this message with -run=Skip.One,Skip.Three"
		}
		testing.AddTest(&testing.Test{
			Name: name,
			Func: func() {
				fmt.Println("This is printed by test", name)
				fmt.Println(msg)
			},
		})
	}
}
