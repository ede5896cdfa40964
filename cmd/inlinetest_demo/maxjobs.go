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
	for _, name := range []string{"MaxJobs.One", "MaxJobs.Two"} {
		name := name
		testing.AddTest(&testing.Test{
			Name: name,
			Func: func() {
				fmt.Println("This is printed by test", name)
				fmt.Println("You should see this message immediately")
				time.Sleep(2 * time.Second)
			},
		})
	}
	testing.AddTest(&testing.Test{
		Name: "MaxJobs.Three",
		Func: func() {
			fmt.Println("This is printed by test MaxJobs.Three")
			fmt.Println("With -maxjobs=2 you should see this message 2 seconds after MaxJobs.One and MaxJobs.Two start")
		},
	})
}
