// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	gotesting "testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/inlinetest/internal/config"
	"go.chromium.org/inlinetest/internal/sandbox"
	itesting "go.chromium.org/inlinetest/internal/testing"
	"go.chromium.org/inlinetest/testing"
	"go.chromium.org/inlinetest/testutil"
)

var testReg = newTestRegistry()

func newTestRegistry() *itesting.Registry {
	reg := itesting.NewRegistry()
	for _, t := range []*testing.Test{
		{Name: "pkg.Pass", Func: func() {
			fmt.Println("hello")
		}},
		{Name: "pkg.Fail", Func: func() {
			testing.AssertEq(1, 2)
		}},
		{Name: "pkg.Sleep", Func: func() {
			time.Sleep(time.Minute)
		}},
	} {
		if err := reg.AddTest(t); err != nil {
			panic(err)
		}
	}
	return reg
}

func init() {
	// Run a single test when re-executed by a harness under test.
	if _, ok := sandbox.ChildTest(); ok {
		o := defaultOptions(os.Stdin, os.Stdout, os.Stderr)
		o.reg = testReg
		os.Exit(run(context.Background(), nil, o))
	}
}

// runHarness runs the harness over testReg with env as its environment and
// returns the exit status and the output streams.
func runHarness(t *gotesting.T, args []string, env map[string]string) (status int, stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	o := &options{
		reg:    testReg,
		stdout: &outBuf,
		stderr: &errBuf,
		lookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
		exit: func(status int) {
			t.Errorf("Harness exited with status %d", status)
		},
	}
	status = run(context.Background(), args, o)
	return status, outBuf.String(), errBuf.String()
}

func TestRunPassAndFail(t *gotesting.T) {
	status, stdout, stderr := runHarness(t, []string{"run", "-verbose", "-maxjobs=1", "-run=pkg.Pass,pkg.Fail"}, nil)
	if status != StatusTestFailed {
		t.Errorf("run returned %d; want %d (stderr %q)", status, StatusTestFailed, stderr)
	}
	if !strings.Contains(stdout, "> Log for pkg.Pass\nhello\n> Test complete: pkg.Pass exit code 0: SUCCESS\n") {
		t.Errorf("Output lacks pkg.Pass report:\n%s", stdout)
	}
	failRe := regexp.MustCompile(`> Log for pkg\.Fail\nassertion failed at harness_test\.go:\d+: 1 == 2 is false\n> Test complete: pkg\.Fail exit code 1: FAILURE\n`)
	if !failRe.MatchString(stdout) {
		t.Errorf("Output lacks pkg.Fail report:\n%s", stdout)
	}
	if !strings.HasSuffix(stdout, "---\n> Ran 2 tests: 1 passed 1 failed 1 skipped\n") {
		t.Errorf("Output lacks summary:\n%s", stdout)
	}
}

func TestRunDefaultSubcommand(t *gotesting.T) {
	for _, args := range [][]string{
		{"-run=pkg.Pass"},
		nil,
	} {
		env := map[string]string{}
		if args == nil {
			env[config.EnvRunList] = "pkg.Pass"
		}
		status, stdout, stderr := runHarness(t, args, env)
		if status != StatusSuccess {
			t.Errorf("run(%q) returned %d; want %d (stderr %q)", args, status, StatusSuccess, stderr)
		}
		// Quiet mode prints no log body.
		const want = "> Log for pkg.Pass\n> Test complete: pkg.Pass exit code 0: SUCCESS\n---\n> Ran 1 tests: 1 passed 0 failed 2 skipped\n"
		if diff := cmp.Diff(stdout, want); diff != "" {
			t.Errorf("run(%q) output mismatch (-got +want):\n%s", args, diff)
		}
	}
}

func TestRunTimeout(t *gotesting.T) {
	status, stdout, _ := runHarness(t, []string{"-run=pkg.Sleep"}, map[string]string{config.EnvTimeout: "0.3"})
	if status != StatusTestFailed {
		t.Errorf("run returned %d; want %d", status, StatusTestFailed)
	}
	if !strings.Contains(stdout, "> Test complete: pkg.Sleep timed out after 0.3 seconds: FAILURE\n") {
		t.Errorf("Output lacks timeout report:\n%s", stdout)
	}
}

func TestRunSandboxFailure(t *gotesting.T) {
	var outBuf, errBuf bytes.Buffer
	exited := false
	var exitStatus int
	var outAtExit string
	o := &options{
		reg:       testReg,
		stdout:    &outBuf,
		stderr:    &errBuf,
		lookupEnv: func(string) (string, bool) { return "", false },
		exe:       filepath.Join(testutil.TempDir(t), "missing"),
		exit: func(status int) {
			exited = true
			exitStatus = status
			outAtExit = outBuf.String()
		},
	}
	run(context.Background(), []string{"-run=pkg.Pass"}, o)

	if !exited {
		t.Fatal("Harness did not exit on a sandbox failure")
	}
	if exitStatus != StatusSandboxError {
		t.Errorf("Harness exited with status %d; want %d", exitStatus, StatusSandboxError)
	}
	if !strings.HasPrefix(errBuf.String(), "sandbox failure: failed to start child for pkg.Pass") {
		t.Errorf("Diagnostic is %q; want a sandbox failure", errBuf.String())
	}
	if strings.Contains(outAtExit, "> Ran") {
		t.Errorf("Summary was written before exiting:\n%s", outAtExit)
	}
}

func TestRunConfigError(t *gotesting.T) {
	for _, tc := range []struct {
		args []string
		env  map[string]string
	}{
		{nil, map[string]string{config.EnvTimeout: "abc"}},
		{nil, map[string]string{config.EnvMaxJobs: "-2"}},
		{nil, map[string]string{config.EnvRunList: "a  b"}},
		{[]string{"-timeout=-1"}, nil},
		{[]string{"-loglevel=trace"}, nil},
		{[]string{"run", "extra"}, nil},
	} {
		status, stdout, stderr := runHarness(t, tc.args, tc.env)
		if status != StatusConfigError {
			t.Errorf("run(%q) with env %v returned %d; want %d", tc.args, tc.env, status, StatusConfigError)
		}
		if stdout != "" {
			t.Errorf("run(%q) with env %v wrote %q; want nothing", tc.args, tc.env, stdout)
		}
		if stderr == "" {
			t.Errorf("run(%q) with env %v wrote no diagnostic", tc.args, tc.env)
		}
	}
}

func TestRunRegistrationErrors(t *gotesting.T) {
	reg := itesting.NewRegistry()
	reg.AddTest(&testing.Test{Name: "a", Func: func() {}})
	reg.AddTest(&testing.Test{Name: "a", Func: func() {}})

	var stderr bytes.Buffer
	o := &options{reg: reg, stdout: &bytes.Buffer{}, stderr: &stderr, lookupEnv: func(string) (string, bool) { return "", false }}
	if status := run(context.Background(), nil, o); status != StatusConfigError {
		t.Errorf("run returned %d; want %d", status, StatusConfigError)
	}
	if !strings.Contains(stderr.String(), `"a" already registered`) {
		t.Errorf("Diagnostic %q does not mention the duplicate", stderr.String())
	}
}

func TestRunChild(t *gotesting.T) {
	ran := false
	reg := itesting.NewRegistry()
	reg.AddTest(&testing.Test{Name: "pkg.Child", Func: func() { ran = true }})

	for _, tc := range []struct {
		name       string
		wantStatus int
		wantRan    bool
	}{
		{"pkg.Child", StatusSuccess, true},
		{"pkg.Missing", StatusConfigError, false},
	} {
		ran = false
		o := &options{
			reg:    reg,
			stdout: &bytes.Buffer{},
			stderr: &bytes.Buffer{},
			lookupEnv: func(k string) (string, bool) {
				if k == sandbox.ChildEnv {
					return tc.name, true
				}
				return "", false
			},
		}
		if status := run(context.Background(), []string{"list"}, o); status != tc.wantStatus {
			t.Errorf("%s: run returned %d; want %d", tc.name, status, tc.wantStatus)
		}
		if ran != tc.wantRan {
			t.Errorf("%s: test ran = %v; want %v", tc.name, ran, tc.wantRan)
		}
	}
}

func TestList(t *gotesting.T) {
	for _, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"list"}, "pkg.Pass\npkg.Fail\npkg.Sleep\n"},
		{[]string{"list", "-run=pkg.Fail"}, "pkg.Pass\npkg.Fail\npkg.Sleep\n"},
		{[]string{"list", "-skipped", "-run=pkg.Fail"}, "pkg.Pass (skipped)\npkg.Fail\npkg.Sleep (skipped)\n"},
	} {
		status, stdout, stderr := runHarness(t, tc.args, nil)
		if status != StatusSuccess {
			t.Errorf("run(%q) returned %d; want %d (stderr %q)", tc.args, status, StatusSuccess, stderr)
		}
		if diff := cmp.Diff(stdout, tc.want); diff != "" {
			t.Errorf("run(%q) output mismatch (-got +want):\n%s", tc.args, diff)
		}
	}
}

func TestRunMetricsFile(t *gotesting.T) {
	path := filepath.Join(testutil.TempDir(t), "run.prom")
	status, _, stderr := runHarness(t, []string{"-run=pkg.Pass", "-metricsfile=" + path}, nil)
	if status != StatusSuccess {
		t.Fatalf("run returned %d; want %d (stderr %q)", status, StatusSuccess, stderr)
	}
	content := testutil.ReadFile(t, path)
	for _, want := range []string{
		"inlinetest_tests_started_total 1",
		"inlinetest_tests_passed_total 1",
		"inlinetest_tests_skipped_total 2",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Metrics file lacks %q:\n%s", want, content)
		}
	}
}
