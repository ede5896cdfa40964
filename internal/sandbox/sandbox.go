// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package sandbox runs tests in isolated child processes.
//
// A child is the harness binary itself, re-executed with ChildEnv naming the
// test to run. Each child gets its own session, and its console output is
// either captured through a pseudo-terminal (verbose mode) or discarded. An
// executor watches the child until it exits or its deadline passes, then
// classifies the outcome and hands the Execution to a completion queue.
package sandbox

import (
	"context"
	"os"
	"os/exec"
	"time"

	"code.cloudfoundry.org/clock"
	"golang.org/x/sys/unix"

	"go.chromium.org/inlinetest/errors"
	"go.chromium.org/inlinetest/internal/logging"
	"go.chromium.org/inlinetest/internal/queue"
	"go.chromium.org/inlinetest/internal/stats"
	"go.chromium.org/inlinetest/internal/testing"
	"go.chromium.org/inlinetest/shutil"
)

// FatalFunc handles a failure of the sandbox itself, as opposed to a test
// failure. It normally does not return.
type FatalFunc func(ctx context.Context, err error)

// Config contains the dependencies of an Executor.
type Config struct {
	// Clock is used for deadlines and durations. Defaults to the real clock.
	Clock clock.Clock
	// Exe is the binary run as the child. Defaults to os.Executable.
	Exe string
	// Env is the environment children start from. Defaults to os.Environ.
	Env []string
	// Stdin is checked for a terminal whose size is copied to child ptys.
	Stdin *os.File

	Stats    *stats.Statistics
	Queue    *queue.CompletionQueue[*Execution]
	Sessions *Sessions
	Fatal    FatalFunc
}

// Executor launches and monitors test children.
type Executor struct {
	cfg Config
}

// New returns an Executor for cfg. Stats, Queue and Fatal are required.
func New(cfg Config) (*Executor, error) {
	if cfg.Stats == nil || cfg.Queue == nil || cfg.Fatal == nil {
		return nil, errors.New("sandbox: Stats, Queue and Fatal must be set")
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewClock()
	}
	if cfg.Exe == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, errors.Wrap(err, "failed to locate own executable")
		}
		cfg.Exe = exe
	}
	if cfg.Env == nil {
		cfg.Env = os.Environ()
	}
	if cfg.Sessions == nil {
		cfg.Sessions = NewSessions()
	}
	return &Executor{cfg: cfg}, nil
}

// Sessions returns the set of live child sessions.
func (x *Executor) Sessions() *Sessions {
	return x.cfg.Sessions
}

// Start runs rec in a new child process on its own goroutine. When the child
// has finished, the pass or fail counter is incremented and the returned
// Execution is enqueued.
func (x *Executor) Start(ctx context.Context, rec *testing.TestRecord) *Execution {
	e := newExecution(rec)
	go func() {
		defer close(e.done)
		if err := x.run(ctx, e); err != nil {
			x.cfg.Fatal(ctx, err)
			e.Err = err
		}
		if e.Passed() {
			x.cfg.Stats.IncPassed()
		} else {
			x.cfg.Stats.IncFailed()
		}
		x.cfg.Queue.Enqueue(e)
	}()
	return e
}

func (x *Executor) run(ctx context.Context, e *Execution) error {
	rec := e.Record
	start := x.cfg.Clock.Now()
	deadline := start.Add(rec.Params.Timeout())

	log, err := os.CreateTemp("", "inlinetest_"+rec.Name+".*.log")
	if err != nil {
		return errors.Wrap(err, "failed to create log file")
	}
	e.Log = log

	cmd := exec.Command(x.cfg.Exe)
	cmd.Env = childEnv(x.cfg.Env, rec.Name)
	cmd.SysProcAttr = &unix.SysProcAttr{Setsid: true}

	masterFd := -1
	var slave *os.File
	if rec.Params.Verbose {
		var master *os.File
		master, slave, err = openPTY(x.cfg.Stdin)
		if err != nil {
			return err
		}
		defer master.Close()
		masterFd = int(master.Fd())
		cmd.Stdin = slave
		cmd.Stdout = slave
		cmd.Stderr = slave
		cmd.SysProcAttr.Setctty = true
		cmd.SysProcAttr.Ctty = 0
	}

	logging.Debugf(ctx, "Launching %s: %s", rec.Name, shutil.CommandLine([]string{ChildEnv + "=" + rec.Name}, cmd.Args))
	err = cmd.Start()
	if slave != nil {
		slave.Close()
	}
	if err != nil {
		return errors.Wrapf(err, "failed to start child for %s", rec.Name)
	}
	defer cmd.Process.Release()

	e.Pid = cmd.Process.Pid
	x.cfg.Sessions.add(e.Pid)
	defer x.cfg.Sessions.remove(e.Pid)

	pidfd, err := unix.PidfdOpen(e.Pid, 0)
	if err != nil {
		killSession(e.Pid, unix.SIGKILL)
		return errors.Wrapf(err, "failed to open pidfd for %d", e.Pid)
	}
	defer unix.Close(pidfd)

	m := newMonitor(x.cfg.Clock, deadline, e.Pid, pidfd, masterFd, int(log.Fd()))
	if err := m.run(); err != nil {
		killSession(e.Pid, unix.SIGKILL)
		return err
	}
	e.Status = m.status
	e.TimedOut = m.timedOut
	e.Duration = x.cfg.Clock.Since(start)
	logging.Debugf(ctx, "%s (pid %d) finished in %v: %s", rec.Name, e.Pid, e.Duration.Round(time.Millisecond), e.Trailer())
	return nil
}
