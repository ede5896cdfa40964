// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	gotesting "testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sys/unix"

	"go.chromium.org/inlinetest/internal/config"
	"go.chromium.org/inlinetest/internal/logging"
	"go.chromium.org/inlinetest/internal/logging/loggingtest"
	"go.chromium.org/inlinetest/internal/sandbox"
	"go.chromium.org/inlinetest/internal/stats"
	"go.chromium.org/inlinetest/internal/testing"
	"go.chromium.org/inlinetest/testutil"
)

// newExecution returns a finished Execution whose log holds content.
func newExecution(t *gotesting.T, name string, params *config.RunParameters, status unix.WaitStatus, content string) *sandbox.Execution {
	t.Helper()
	td := testutil.TempDir(t)
	f, err := os.Create(filepath.Join(td, name+".log"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	return &sandbox.Execution{
		Record: &testing.TestRecord{Name: name, Params: params},
		Log:    f,
		Status: status,
	}
}

func TestReport(t *gotesting.T) {
	verbose := config.Default()
	verbose.Verbose = true
	quiet := config.Default()

	var buf bytes.Buffer
	r := New(&buf, false)

	a := newExecution(t, "a", verbose, 0, "line one\r\nline two\r\n")
	b := newExecution(t, "b", quiet, 1<<8, "never shown\n")
	c := newExecution(t, "c", verbose, unix.WaitStatus(unix.SIGSEGV), "no newline")
	for _, e := range []*sandbox.Execution{a, b, c} {
		logPath := e.Log.Name()
		if err := r.Report(e); err != nil {
			t.Fatalf("Report(%s) failed: %v", e.Record.Name, err)
		}
		if _, err := os.Stat(logPath); !os.IsNotExist(err) {
			t.Errorf("Log of %s was not removed", e.Record.Name)
		}
	}
	r.Skip("d")
	if err := r.Summary(stats.Counts{Started: 3, Passed: 1, Failed: 2, Skipped: 1}); err != nil {
		t.Fatal("Summary failed: ", err)
	}

	const want = `> Log for a
line one
line two
> Test complete: a exit code 0: SUCCESS
---
> Log for b
> Test complete: b exit code 1: FAILURE
---
> Log for c
no newline
> Test complete: c signal SIGSEGV(11): FAILURE
---
> Ran 3 tests: 1 passed 2 failed 1 skipped
`
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("Report output mismatch (-got +want):\n%s", diff)
	}

	wantResults := []Result{
		{Name: "a", Outcome: Passed},
		{Name: "b", Outcome: Failed, Detail: "exit code 1: FAILURE"},
		{Name: "c", Outcome: Failed, Detail: "signal SIGSEGV(11): FAILURE"},
		{Name: "d", Outcome: Skipped},
	}
	if diff := cmp.Diff(r.Results(), wantResults); diff != "" {
		t.Errorf("Results mismatch (-got +want):\n%s", diff)
	}
}

// brokenWriter accepts n writes and fails afterwards.
type brokenWriter struct{ n int }

func (w *brokenWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, unix.EPIPE
	}
	w.n--
	return len(p), nil
}

func TestReportWriteErrors(t *gotesting.T) {
	// The first report writes a header and a trailer. The second writes a
	// separator first, then a header.
	for _, n := range []int{0, 2, 3} {
		w := &brokenWriter{n: n}
		r := New(w, false)
		var err error
		for _, name := range []string{"a", "b"} {
			if err = r.Report(newExecution(t, name, config.Default(), 0, "")); err != nil {
				break
			}
		}
		if err == nil {
			t.Errorf("Report with %d successful writes succeeded; want an error", n)
		}
	}
	if err := New(&brokenWriter{}, false).Summary(stats.Counts{}); err == nil {
		t.Error("Summary succeeded on a broken writer")
	}
}

func TestSummaryOnly(t *gotesting.T) {
	var buf bytes.Buffer
	r := New(&buf, false)
	if err := r.Summary(stats.Counts{Skipped: 2}); err != nil {
		t.Fatal("Summary failed: ", err)
	}
	if got, want := buf.String(), "> Ran 0 tests: 0 passed 0 failed 2 skipped\n"; got != want {
		t.Errorf("Summary wrote %q; want %q", got, want)
	}
}

func TestReportStripANSI(t *gotesting.T) {
	params := config.Default()
	params.Verbose = true

	var buf bytes.Buffer
	r := New(&buf, true)
	e := newExecution(t, "color", params, 0, "\x1b[31mred\x1b[0m\r\nplain\r\n")
	if err := r.Report(e); err != nil {
		t.Fatal("Report failed: ", err)
	}
	const want = "> Log for color\nred\nplain\n> Test complete: color exit code 0: SUCCESS\n"
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("Report output mismatch (-got +want):\n%s", diff)
	}
}

func TestCRLFWriter(t *gotesting.T) {
	for _, tc := range []struct {
		name   string
		chunks []string
		want   string
	}{
		{"plain", []string{"a\nb\n"}, "a\nb\n"},
		{"crlf", []string{"a\r\nb\r\n"}, "a\nb\n"},
		{"lone cr", []string{"a\rb"}, "a\rb"},
		{"split pair", []string{"a\r", "\nb"}, "a\nb"},
		{"split lone", []string{"a\r", "b"}, "a\rb"},
		{"trailing cr", []string{"a\r"}, "a\r"},
		{"double cr", []string{"\r\r\n"}, "\r\n"},
	} {
		var buf bytes.Buffer
		w := newCRLFWriter(&buf)
		for _, c := range tc.chunks {
			if n, err := w.Write([]byte(c)); err != nil || n != len(c) {
				t.Fatalf("%s: Write(%q) = (%d, %v)", tc.name, c, n, err)
			}
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("%s: Flush failed: %v", tc.name, err)
		}
		if got := buf.String(); got != tc.want {
			t.Errorf("%s: got %q; want %q", tc.name, got, tc.want)
		}
	}
}

func TestWriteResultsToLogs(t *gotesting.T) {
	rec := loggingtest.NewRecorder(t)
	ctx := logging.AttachLogger(context.Background(), rec)

	WriteResultsToLogs(ctx, []Result{
		{Name: "pkg.Long", Outcome: Passed},
		{Name: "pkg.X", Outcome: Failed, Detail: "exit code 1: FAILURE"},
		{Name: "pkg.Y", Outcome: Skipped},
	})

	sep := "--------------------------------------------------------------------------------"
	want := []string{
		sep,
		"pkg.Long  [ PASS ]",
		"pkg.X     [ FAIL ] exit code 1: FAILURE",
		"pkg.Y     [ SKIP ]",
		sep,
	}
	if diff := cmp.Diff(rec.Messages(logging.LevelDebug), want); diff != "" {
		t.Errorf("Debug logs mismatch (-got +want):\n%s", diff)
	}
	if n := len(rec.Entries()); n != len(want) {
		t.Errorf("Got %d log entries; want %d, all at debug level", n, len(want))
	}
}
