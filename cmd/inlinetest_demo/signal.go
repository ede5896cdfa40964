// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"golang.org/x/sys/unix"

	"go.chromium.org/inlinetest/testing"
)

var sink *int

func init() {
	testing.AddTest(&testing.Test{
		Name: "Signal.NilDeref",
		Func: func() {
			fmt.Println("This is printed by test Signal.NilDeref")
			// The runtime turns the fault into a panic. With "crash" it then
			// raises SIGABRT, so this is reported as signal SIGABRT(6).
			debug.SetTraceback("crash")
			fmt.Println("You should not see this", *sink)
		},
	})
	testing.AddTest(&testing.Test{
		Name: "Signal.Abort",
		Func: func() {
			fmt.Println("This is printed by test Signal.Abort")
			debug.SetTraceback("crash")
			panic("abort")
		},
	})
	testing.AddTest(&testing.Test{
		Name: "Signal.Kill",
		Func: func() {
			fmt.Println("This is printed by test Signal.Kill")
			unix.Kill(os.Getpid(), unix.SIGKILL)
			select {}
		},
	})
}
