// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package reporting writes the console report of a run.
package reporting

import (
	"bufio"
	"fmt"
	"io"

	"github.com/acarl005/stripansi"

	"go.chromium.org/inlinetest/errors"
	"go.chromium.org/inlinetest/internal/sandbox"
	"go.chromium.org/inlinetest/internal/stats"
)

const (
	marker    = "> "
	separator = "---\n"
)

// Reporter writes per-test reports and the final summary to an io.Writer.
// It is not safe for concurrent use.
type Reporter struct {
	w         io.Writer
	stripANSI bool
	printed   bool
	results   []Result
}

// New returns a Reporter writing to w. If stripANSI is true, terminal escape
// sequences are removed from captured logs.
func New(w io.Writer, stripANSI bool) *Reporter {
	return &Reporter{w: w, stripANSI: stripANSI}
}

// Report waits for e's executor, writes e's log and verdict, and discards the
// log file.
func (r *Reporter) Report(e *sandbox.Execution) error {
	e.Wait()
	name := e.Record.Name

	if r.printed {
		if _, err := io.WriteString(r.w, separator); err != nil {
			return errors.Wrap(err, "failed to write report")
		}
	}
	r.printed = true
	if _, err := fmt.Fprintf(r.w, "%sLog for %s\n", marker, name); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	if e.Record.Params.Verbose && e.Log != nil {
		if err := r.dump(e); err != nil {
			return errors.Wrapf(err, "failed to dump log of %s", name)
		}
	}
	trailer := e.Trailer()
	if _, err := fmt.Fprintf(r.w, "%sTest complete: %s %s\n", marker, name, trailer); err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	res := Result{Name: name, Outcome: Failed, Detail: trailer}
	if e.Passed() {
		res.Outcome = Passed
		res.Detail = ""
	}
	r.results = append(r.results, res)
	return e.Close()
}

// Skip records a test excluded from the run. Nothing is written.
func (r *Reporter) Skip(name string) {
	r.results = append(r.results, Result{Name: name, Outcome: Skipped})
}

// Summary writes the final line of the report.
func (r *Reporter) Summary(c stats.Counts) error {
	if r.printed {
		if _, err := io.WriteString(r.w, separator); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.w, "%sRan %d tests: %d passed %d failed %d skipped\n",
		marker, c.Started, c.Passed, c.Failed, c.Skipped)
	return err
}

// Results returns the outcomes recorded so far, in report order.
func (r *Reporter) Results() []Result {
	return append([]Result(nil), r.results...)
}

// dump copies e's log to r.w with CRLF normalized. The trailer always starts
// on a new line.
func (r *Reporter) dump(e *sandbox.Execution) error {
	if _, err := e.Log.Seek(0, io.SeekStart); err != nil {
		return err
	}
	cw := newCRLFWriter(r.w)
	if r.stripANSI {
		br := bufio.NewReader(e.Log)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				if _, werr := io.WriteString(cw, stripansi.Strip(line)); werr != nil {
					return werr
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
		}
	} else if _, err := io.Copy(cw, e.Log); err != nil {
		return err
	}
	if err := cw.Flush(); err != nil {
		return err
	}
	if cw.last != 0 && cw.last != '\n' {
		_, err := io.WriteString(r.w, "\n")
		return err
	}
	return nil
}
