// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package stack captures and formats call stacks for the errors package and
// for assertion failures reported by test children.
package stack

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	maxDepth = 8 // maximum number of frames kept in a formatted trace

	ellipsis = "\t..." // marker line appended when a trace is truncated
)

// Frame is a single resolved stack frame.
type Frame struct {
	Function string
	File     string // base name of the source file
	Line     int
}

// String formats f as "file:line".
func (f Frame) String() string {
	return fmt.Sprintf("%s:%d", f.File, f.Line)
}

// Stack holds a snapshot of program counters.
type Stack []uintptr

// New captures a stack. skip is the number of frames to omit; skip=0 makes
// the caller of New the innermost frame.
func New(skip int) Stack {
	pc := make([]uintptr, maxDepth+1)
	pc = pc[:runtime.Callers(skip+2, pc)]
	return Stack(pc)
}

// Frames resolves the program counters in s into at most maxDepth frames.
func (s Stack) Frames() []Frame {
	var frames []Frame
	cf := runtime.CallersFrames(s)
	for len(frames) < maxDepth {
		f, more := cf.Next()
		if f.PC == 0 {
			break
		}
		frames = append(frames, Frame{
			Function: f.Function,
			File:     filepath.Base(f.File),
			Line:     f.Line,
		})
		if !more {
			break
		}
	}
	return frames
}

// Top returns the innermost frame of s. It returns a zero Frame with File
// "???" if s is empty.
func (s Stack) Top() Frame {
	if fs := s.Frames(); len(fs) > 0 {
		return fs[0]
	}
	return Frame{File: "???"}
}

// String formats a stack trace, one "\tat func (file:line)" line per frame.
func (s Stack) String() string {
	var lines []string
	for _, f := range s.Frames() {
		lines = append(lines, fmt.Sprintf("\tat %s (%s)", f.Function, f))
	}
	if len(s) > maxDepth {
		lines = append(lines, ellipsis)
	}
	return strings.Join(lines, "\n")
}
