// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package command contains code shared by harness entry points: exit-status
// errors, flag types and signal handling.
package command

import (
	"fmt"
	"io"

	"go.chromium.org/inlinetest/errors"
)

// StatusError is an error carrying the process exit status to use.
type StatusError struct {
	msg    string
	status int
	cause  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v (status %v)", e.msg, e.status)
}

// Unwrap returns the error e was created from, if any.
func (e *StatusError) Unwrap() error {
	return e.cause
}

// Status returns e's status code.
func (e *StatusError) Status() int {
	return e.status
}

// NewStatusErrorf creates a StatusError with the given status and message.
func NewStatusErrorf(status int, format string, args ...interface{}) *StatusError {
	return &StatusError{msg: fmt.Sprintf(format, args...), status: status}
}

// WrapStatus attaches status to err. The message is err's message.
func WrapStatus(status int, err error) *StatusError {
	return &StatusError{msg: err.Error(), status: status, cause: err}
}

// WriteError writes a newline-terminated fatal error to w and returns the
// exit status to use. Errors without a *StatusError in their chain map to 1.
func WriteError(w io.Writer, err error) int {
	msg := err.Error()
	status := 1

	var se *StatusError
	if errors.As(err, &se) {
		msg = se.msg
		status = se.status
	}

	if len(msg) > 0 && msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	io.WriteString(w, msg)

	return status
}
