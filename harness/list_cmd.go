// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package harness

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"go.chromium.org/inlinetest/internal/command"
	"go.chromium.org/inlinetest/internal/config"
)

// listCmd implements subcommands.Command to support listing tests.
type listCmd struct {
	o       *options
	cfg     *config.MutableConfig
	skipped bool // mark tests excluded by the run filter
}

var _ = subcommands.Command(&listCmd{})

func newListCmd(o *options) *listCmd {
	return &listCmd{o: o, cfg: config.NewMutableConfig()}
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list tests" }
func (*listCmd) Usage() string {
	return `Usage: list [flag]...

Description:
    Print the names of the tests embedded in this program in the order
    they would run, one per line.

Flag:
`
}

func (lc *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&lc.skipped, "skipped", false, "mark tests the run filter would skip")
	lc.cfg.SetFlags(f)
}

func (lc *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	params, err := lc.cfg.Freeze(lc.o.lookupEnv)
	if err != nil {
		return subcommands.ExitStatus(command.WriteError(lc.o.stderr, command.WrapStatus(StatusConfigError, err)))
	}
	for _, t := range lc.o.reg.AllTests() {
		line := t.Name
		if lc.skipped && !params.ShouldRun(t.Name) {
			line += " (skipped)"
		}
		if _, err := fmt.Fprintln(lc.o.stdout, line); err != nil {
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
