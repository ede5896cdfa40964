// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package stats tracks run-wide test counters and gates test launches on
// the concurrency limit.
package stats

import (
	"sync"
)

// Counts is a point-in-time copy of the counters.
type Counts struct {
	Started int
	Passed  int
	Failed  int
	Skipped int
}

// Reported returns the number of tests whose result is known.
func (c Counts) Reported() int { return c.Passed + c.Failed }

// Running returns the number of started tests that have not reported.
func (c Counts) Running() int { return c.Started - c.Reported() }

// Statistics is safe for concurrent use. Passed and Failed updates wake
// goroutines blocked in WaitUntilRoom.
type Statistics struct {
	mu   sync.Mutex
	cond *sync.Cond
	c    Counts
}

// New returns zeroed Statistics.
func New() *Statistics {
	s := &Statistics{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// IncStarted records a test launch.
func (s *Statistics) IncStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Started++
}

// IncPassed records a passing test.
func (s *Statistics) IncPassed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Passed++
	s.cond.Broadcast()
}

// IncFailed records a failing test.
func (s *Statistics) IncFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Failed++
	s.cond.Broadcast()
}

// IncSkipped records a test excluded by the run filter.
func (s *Statistics) IncSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Skipped++
}

// WaitUntilRoom blocks while limit or more tests are running. A limit of 0
// never blocks.
func (s *Statistics) WaitUntilRoom(limit int) {
	if limit <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.c.Running() >= limit {
		s.cond.Wait()
	}
}

// Running returns the number of started tests that have not reported.
func (s *Statistics) Running() int {
	return s.Snapshot().Running()
}

// Snapshot returns a consistent copy of the counters.
func (s *Statistics) Snapshot() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c
}
