// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package harness is the entry point of programs embedding inline tests.
//
// A program registers tests with testing.AddTest and calls Main from its
// main function:
//
//	func main() {
//		harness.Main()
//	}
//
// Main either runs the harness (the "run" and "list" subcommands) or, when
// the process was launched by the harness to run one test, runs that test
// and exits.
package harness

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"go.chromium.org/inlinetest/internal/config"
	"go.chromium.org/inlinetest/internal/sandbox"
	"go.chromium.org/inlinetest/internal/testing"
)

// Exit statuses of the harness process.
const (
	StatusSuccess      = 0 // every test passed
	StatusTestFailed   = 1 // one or more tests failed
	StatusConfigError  = 2 // invalid configuration or test registration
	StatusSandboxError = 3 // the harness could not run a test
)

// options holds the process-level dependencies of a harness run.
type options struct {
	reg       *testing.Registry
	stdin     *os.File
	stdout    io.Writer
	stderr    io.Writer
	lookupEnv config.LookupEnvFunc
	// exe is the binary re-executed for each test. Empty means this one.
	exe string
	// exit terminates the process after a sandbox failure.
	exit func(status int)
}

func defaultOptions(stdin *os.File, stdout, stderr io.Writer) *options {
	return &options{
		reg:       testing.GlobalRegistry(),
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		lookupEnv: os.LookupEnv,
		exit:      os.Exit,
	}
}

// Main runs the harness with the process's arguments and standard streams,
// then exits with the resulting status. It does not return.
func Main() {
	os.Exit(Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Run runs the harness with command-line arguments args (not including the
// program name) and returns the process exit status.
func Run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	return run(context.Background(), args, defaultOptions(stdin, stdout, stderr))
}

func run(ctx context.Context, args []string, o *options) int {
	if name, ok := o.lookupEnv(sandbox.ChildEnv); ok {
		return runChild(o, name)
	}

	if errs := o.reg.Errors(); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(o.stderr, "Invalid test registration: %v\n", err)
		}
		return StatusConfigError
	}

	name := filepath.Base(os.Args[0])
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(o.stderr)
	cdr := subcommands.NewCommander(fs, name)
	cdr.Output = o.stdout
	cdr.Error = o.stderr
	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.FlagsCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")
	cdr.Register(newRunCmd(o), "")
	cdr.Register(newListCmd(o), "")

	// Running tests is the default action, also when only flags are given.
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		args = append([]string{"run"}, args...)
	}
	if err := fs.Parse(args); err != nil {
		return StatusConfigError
	}
	return int(cdr.Execute(ctx))
}

// runChild runs the single test named name in this process.
func runChild(o *options, name string) int {
	t, ok := o.reg.Lookup(name)
	if !ok {
		fmt.Fprintf(o.stderr, "Unknown test %q\n", name)
		return StatusConfigError
	}
	t.Func()
	return StatusSuccess
}
