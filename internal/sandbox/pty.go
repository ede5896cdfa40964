// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package sandbox

import (
	"os"

	"github.com/creack/pty"
	"golang.org/x/term"

	"go.chromium.org/inlinetest/errors"
)

// Size used for the pseudo-terminal when the harness has no terminal of
// its own.
const (
	defaultRows = 24
	defaultCols = 80
)

// openPTY allocates a pseudo-terminal pair. If in is a terminal, its window
// size is copied onto the new pair.
func openPTY(in *os.File) (master, slave *os.File, err error) {
	master, slave, err = pty.Open()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open pty")
	}

	ws := &pty.Winsize{Rows: defaultRows, Cols: defaultCols}
	if in != nil && term.IsTerminal(int(in.Fd())) {
		if w, h, err := term.GetSize(int(in.Fd())); err == nil {
			ws = &pty.Winsize{Rows: uint16(h), Cols: uint16(w)}
		}
	}
	if err := pty.Setsize(master, ws); err != nil {
		master.Close()
		slave.Close()
		return nil, nil, errors.Wrap(err, "failed to set pty size")
	}
	return master, slave, nil
}
