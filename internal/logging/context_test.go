// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package logging

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type recordLogger struct {
	msgs []string
}

func (l *recordLogger) Log(level Level, ts time.Time, msg string) {
	l.msgs = append(l.msgs, level.String()+":"+msg)
}

func TestNoLogger(t *testing.T) {
	ctx := context.Background()
	if HasLogger(ctx) {
		t.Error("HasLogger(context.Background()) = true; want false")
	}
	// Logging without a logger must not panic.
	Info(ctx, "dropped")
	Debugf(ctx, "dropped %d", 1)
}

func TestAttachLoggerPropagates(t *testing.T) {
	parent := &recordLogger{}
	child := &recordLogger{}

	ctx := AttachLogger(context.Background(), parent)
	Info(ctx, "a", "b")
	ctx = AttachLogger(ctx, child)
	Debugf(ctx, "c%d", 1)

	if diff := cmp.Diff(parent.msgs, []string{"info:ab", "debug:c1"}); diff != "" {
		t.Error("Parent logs mismatch (-got +want):\n", diff)
	}
	if diff := cmp.Diff(child.msgs, []string{"debug:c1"}); diff != "" {
		t.Error("Child logs mismatch (-got +want):\n", diff)
	}
}

func TestSinkLoggerLevel(t *testing.T) {
	var b bytes.Buffer
	ctx := AttachLogger(context.Background(), NewSinkLogger(LevelInfo, false, NewWriterSink(&b)))

	Debug(ctx, "hidden")
	Info(ctx, "shown")
	Infof(ctx, "bad utf8 \xff%s", "!")

	if got, want := b.String(), "shown\nbad utf8 !\n"; got != want {
		t.Errorf("Sink got %q; want %q", got, want)
	}
}

func TestSinkLoggerTimestamp(t *testing.T) {
	var got string
	l := NewSinkLogger(LevelDebug, true, NewFuncSink(func(msg string) { got = msg }))
	l.Log(LevelDebug, time.Date(2025, 1, 2, 3, 4, 5, 6000, time.UTC), "msg")
	if want := "2025-01-02T03:04:05.000006Z msg"; got != want {
		t.Errorf("Log produced %q; want %q", got, want)
	}
}
