// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package sandbox

import (
	"math"
	"time"

	"code.cloudfoundry.org/clock"
	"golang.org/x/sys/unix"

	"go.chromium.org/inlinetest/errors"
)

// procState is the lifecycle axis of a monitored child.
type procState int

const (
	procRunning procState = iota
	procKilled
	procReaped
)

// ioState is the capture axis of a monitored child.
type ioState int

const (
	ioRead  ioState = iota // waiting for output on the pty master
	ioWrite                // waiting to flush pending output to the log
	ioEOF                  // no more output will arrive
)

const readSize = 4096

// monitor drives a child to completion. Each iteration issues one poll
// over the pidfd and the active capture descriptor. The loop ends when the
// child is reaped and its output is exhausted.
type monitor struct {
	clk      clock.Clock
	deadline time.Time

	pid   int
	pidfd int
	// master is the pty master fd, or -1 in quiet mode.
	master int
	logfd  int

	proc     procState
	io       ioState
	buf      [readSize]byte
	pending  []byte
	status   unix.WaitStatus
	timedOut bool
}

func newMonitor(clk clock.Clock, deadline time.Time, pid, pidfd, master, logfd int) *monitor {
	m := &monitor{
		clk:      clk,
		deadline: deadline,
		pid:      pid,
		pidfd:    pidfd,
		master:   master,
		logfd:    logfd,
	}
	if master < 0 {
		m.io = ioEOF
	}
	return m
}

func (m *monitor) run() error {
	for m.proc != procReaped || m.io != ioEOF {
		fds := make([]unix.PollFd, 0, 2)
		procIdx, ioIdx := -1, -1
		if m.proc != procReaped {
			procIdx = len(fds)
			fds = append(fds, unix.PollFd{Fd: int32(m.pidfd), Events: unix.POLLIN})
		}
		switch m.io {
		case ioRead:
			ioIdx = len(fds)
			fds = append(fds, unix.PollFd{Fd: int32(m.master), Events: unix.POLLIN})
		case ioWrite:
			ioIdx = len(fds)
			fds = append(fds, unix.PollFd{Fd: int32(m.logfd), Events: unix.POLLOUT})
		}

		timeout := -1
		if m.proc == procRunning {
			timeout = pollTimeout(m.deadline.Sub(m.clk.Now()))
		}
		if _, err := unix.Poll(fds, timeout); err != nil {
			if err == unix.EINTR {
				continue
			}
			return errors.Wrap(err, "poll failed")
		}

		if procIdx >= 0 && fds[procIdx].Revents != 0 {
			if err := m.reap(); err != nil {
				return err
			}
		}
		if ioIdx >= 0 && fds[ioIdx].Revents != 0 {
			if err := m.transfer(); err != nil {
				return err
			}
		}
		// Output readiness does not postpone the deadline.
		if m.proc == procRunning && !m.clk.Now().Before(m.deadline) {
			m.kill()
		}
	}
	return nil
}

// pollTimeout converts the time left before the deadline to a poll timeout
// in milliseconds, rounding up so that a positive remainder never becomes a
// zero-length busy poll.
func pollTimeout(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	ms := (d + time.Millisecond - 1) / time.Millisecond
	if ms > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(ms)
}

func (m *monitor) reap() error {
	for {
		_, err := unix.Wait4(m.pid, &m.status, 0, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "failed to wait for pid %d", m.pid)
		}
		break
	}
	m.proc = procReaped
	// Leftover session members would keep the pty open.
	killSession(m.pid, unix.SIGKILL)
	return nil
}

func (m *monitor) kill() {
	unix.Kill(m.pid, unix.SIGKILL)
	killSession(m.pid, unix.SIGKILL)
	m.timedOut = true
	m.proc = procKilled
}

func (m *monitor) transfer() error {
	switch m.io {
	case ioRead:
		n, err := unix.Read(m.master, m.buf[:])
		switch {
		case err == unix.EAGAIN || err == unix.EINTR:
		case err != nil || n <= 0:
			// EIO means every slave handle has been closed.
			m.io = ioEOF
		default:
			m.pending = m.buf[:n]
			m.io = ioWrite
		}
	case ioWrite:
		n, err := unix.Write(m.logfd, m.pending)
		if err == unix.EAGAIN || err == unix.EINTR {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to write log")
		}
		m.pending = m.pending[n:]
		if len(m.pending) == 0 {
			m.io = ioRead
		}
	}
	return nil
}
