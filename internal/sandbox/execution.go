// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package sandbox

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"go.chromium.org/inlinetest/errors"
	"go.chromium.org/inlinetest/internal/testing"
)

// Execution is the state of one test run. It is owned by its executor until
// it is placed on the completion queue, and by the consumer afterwards.
type Execution struct {
	Record *testing.TestRecord
	// Pid is the child process ID. It also identifies the child's session.
	Pid int
	// Log holds the captured child output. It is non-nil once the executor
	// has started, even in quiet mode where nothing is written to it.
	Log *os.File
	// TimedOut is set if the child was killed at its deadline.
	TimedOut bool
	// Status is the wait status of the reaped child.
	Status unix.WaitStatus
	// Duration is the time from launch until the child was reaped.
	Duration time.Duration
	// Err is set if the sandbox itself failed and the fatal handler
	// returned instead of exiting.
	Err error

	done chan struct{}
}

func newExecution(rec *testing.TestRecord) *Execution {
	return &Execution{Record: rec, done: make(chan struct{})}
}

// Wait blocks until the executor owning e has finished. An Execution not
// created by an executor is treated as finished.
func (e *Execution) Wait() {
	if e.done != nil {
		<-e.done
	}
}

// Passed reports whether the test succeeded: the child exited normally with
// status 0 before its deadline.
func (e *Execution) Passed() bool {
	return e.Err == nil && !e.TimedOut && e.Status.Exited() && e.Status.ExitStatus() == 0
}

// Trailer describes how the child finished, followed by the verdict.
func (e *Execution) Trailer() string {
	verdict := "FAILURE"
	if e.Passed() {
		verdict = "SUCCESS"
	}
	var reason string
	switch {
	case e.Err != nil:
		reason = "unknown reason"
	case e.TimedOut:
		reason = fmt.Sprintf("timed out after %g seconds", e.Record.Params.TimeoutSecs)
	default:
		reason = describeStatus(e.Status)
	}
	return reason + ": " + verdict
}

// Close closes and removes the log file.
func (e *Execution) Close() error {
	if e.Log == nil {
		return nil
	}
	name := e.Log.Name()
	err := e.Log.Close()
	if rerr := os.Remove(name); rerr != nil && err == nil {
		err = rerr
	}
	e.Log = nil
	if err != nil {
		return errors.Wrapf(err, "failed to discard log of %s", e.Record.Name)
	}
	return nil
}

func describeStatus(ws unix.WaitStatus) string {
	switch {
	case ws.Exited():
		return fmt.Sprintf("exit code %d", ws.ExitStatus())
	case ws.Signaled():
		s := fmt.Sprintf("signal %s(%d)", signalName(ws.Signal()), int(ws.Signal()))
		if ws.CoreDump() {
			s += " (core dumped)"
		}
		return s
	case ws.Stopped():
		return "stopped, signal " + signalName(ws.StopSignal())
	case ws.Continued():
		return "continued"
	default:
		return "unknown reason"
	}
}

func signalName(sig unix.Signal) string {
	if n := unix.SignalName(sig); n != "" {
		return n
	}
	return "unknown"
}
