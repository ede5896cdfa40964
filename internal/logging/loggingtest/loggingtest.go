// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package loggingtest records harness logs in unit tests.
package loggingtest

import (
	"sync"
	"testing"
	"time"

	"go.chromium.org/inlinetest/internal/logging"
)

// Entry is a single recorded log call.
type Entry struct {
	Level logging.Level
	Msg   string
}

// Recorder is a logging.Logger that keeps every entry in memory and echoes
// it to the log of t.
type Recorder struct {
	t *testing.T

	mu      sync.Mutex
	entries []Entry
}

var _ logging.Logger = (*Recorder)(nil)

// NewRecorder returns a Recorder echoing to t.
func NewRecorder(t *testing.T) *Recorder {
	return &Recorder{t: t}
}

func (r *Recorder) Log(level logging.Level, _ time.Time, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t.Log(msg)
	r.entries = append(r.entries, Entry{Level: level, Msg: msg})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Messages returns the messages logged at exactly level, in order.
func (r *Recorder) Messages(level logging.Level) []string {
	var msgs []string
	for _, e := range r.Entries() {
		if e.Level == level {
			msgs = append(msgs, e.Msg)
		}
	}
	return msgs
}
