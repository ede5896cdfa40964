// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package sandbox

import (
	"sync"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/unix"
)

// Sessions tracks the sessions of live children so they can be killed when
// the harness itself has to exit early.
type Sessions struct {
	mu   sync.Mutex
	sids map[int]struct{}
}

// NewSessions returns an empty Sessions.
func NewSessions() *Sessions {
	return &Sessions{sids: make(map[int]struct{})}
}

func (s *Sessions) add(sid int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sids[sid] = struct{}{}
}

func (s *Sessions) remove(sid int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sids, sid)
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sids)
}

// KillAll sends SIGKILL to every process in every live session.
func (s *Sessions) KillAll() {
	s.mu.Lock()
	sids := make([]int, 0, len(s.sids))
	for sid := range s.sids {
		sids = append(sids, sid)
	}
	s.mu.Unlock()

	for _, sid := range sids {
		killSession(sid, unix.SIGKILL)
	}
}

// killSession makes a best-effort attempt to kill all processes in session sid.
// It makes several passes over the list of running processes, sending sig to any
// that are part of the session. After it doesn't find any new processes, it returns.
// Continually-forking processes may still leave survivors.
func killSession(sid int, sig unix.Signal) {
	const maxPasses = 3
	for i := 0; i < maxPasses; i++ {
		pids, err := process.Pids()
		if err != nil {
			return
		}
		n := 0
		for _, pid := range pids {
			pid := int(pid)
			if s, err := unix.Getsid(pid); err == nil && s == sid {
				unix.Kill(pid, sig)
				n++
			}
		}
		if n == 0 {
			return
		}
	}
}
