// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"go.chromium.org/inlinetest/testing"
)

func init() {
	testing.AddTest(&testing.Test{
		Name: "Timeout.Sleep",
		Func: func() {
			const sleepTime = 2 * time.Second
			fmt.Println("This is printed by test Timeout.Sleep")
			fmt.Println("Sleeping for", sleepTime, "; run with -timeout=1 to see it killed")
			time.Sleep(sleepTime)
		},
	})
}
