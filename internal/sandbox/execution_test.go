// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package sandbox

import (
	gotesting "testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sys/unix"

	"go.chromium.org/inlinetest/errors"
	"go.chromium.org/inlinetest/internal/config"
	"go.chromium.org/inlinetest/internal/testing"
)

func TestTrailer(t *gotesting.T) {
	params := config.Default()
	params.TimeoutSecs = 0.5
	rec := &testing.TestRecord{Name: "pkg.T", Params: params}

	for _, tc := range []struct {
		name     string
		e        *Execution
		want     string
		wantPass bool
	}{
		{"exit 0", &Execution{Status: 0}, "exit code 0: SUCCESS", true},
		{"exit 3", &Execution{Status: 3 << 8}, "exit code 3: FAILURE", false},
		{"sigsegv", &Execution{Status: unix.WaitStatus(unix.SIGSEGV)}, "signal SIGSEGV(11): FAILURE", false},
		{"sigabrt core", &Execution{Status: unix.WaitStatus(unix.SIGABRT) | 0x80}, "signal SIGABRT(6) (core dumped): FAILURE", false},
		{"unnamed signal", &Execution{Status: 64}, "signal unknown(64): FAILURE", false},
		{"stopped", &Execution{Status: 0x7f | unix.WaitStatus(unix.SIGSTOP)<<8}, "stopped, signal SIGSTOP: FAILURE", false},
		{"continued", &Execution{Status: 0xffff}, "continued: FAILURE", false},
		{"unknown", &Execution{Status: 0xff}, "unknown reason: FAILURE", false},
		{"timed out", &Execution{TimedOut: true}, "timed out after 0.5 seconds: FAILURE", false},
		{"sandbox error", &Execution{Err: errors.New("boom")}, "unknown reason: FAILURE", false},
	} {
		tc.e.Record = rec
		if got := tc.e.Trailer(); got != tc.want {
			t.Errorf("%s: Trailer() = %q; want %q", tc.name, got, tc.want)
		}
		if got := tc.e.Passed(); got != tc.wantPass {
			t.Errorf("%s: Passed() = %v; want %v", tc.name, got, tc.wantPass)
		}
	}
}

func TestPollTimeout(t *gotesting.T) {
	for _, tc := range []struct {
		d    time.Duration
		want int
	}{
		{-time.Second, 0},
		{0, 0},
		{time.Nanosecond, 1},
		{time.Millisecond, 1},
		{1500 * time.Microsecond, 2},
		{30 * time.Second, 30000},
		{1000 * time.Hour, 1<<31 - 1},
	} {
		if got := pollTimeout(tc.d); got != tc.want {
			t.Errorf("pollTimeout(%v) = %d; want %d", tc.d, got, tc.want)
		}
	}
}

func TestChildEnv(t *gotesting.T) {
	got := childEnv([]string{
		"HOME=/root",
		config.EnvRunList + "=a b",
		ChildEnv + "=stale",
		"PATH=/bin",
		config.EnvTimeout + "=3",
	}, "pkg.T")
	want := []string{"HOME=/root", "PATH=/bin", ChildEnv + "=pkg.T"}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("childEnv mismatch (-got +want):\n%s", diff)
	}
}
