// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package harness

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"go.chromium.org/inlinetest/errors"
	"go.chromium.org/inlinetest/internal/command"
	"go.chromium.org/inlinetest/internal/config"
	"go.chromium.org/inlinetest/internal/logging"
	"go.chromium.org/inlinetest/internal/metrics"
	"go.chromium.org/inlinetest/internal/queue"
	"go.chromium.org/inlinetest/internal/reporting"
	"go.chromium.org/inlinetest/internal/sandbox"
	"go.chromium.org/inlinetest/internal/scheduler"
	"go.chromium.org/inlinetest/internal/stats"
)

// runCmd implements subcommands.Command to run tests.
type runCmd struct {
	o   *options
	cfg *config.MutableConfig
}

var _ = subcommands.Command(&runCmd{})

func newRunCmd(o *options) *runCmd {
	return &runCmd{o: o, cfg: config.NewMutableConfig()}
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run tests" }
func (*runCmd) Usage() string {
	return `Usage: run [flag]...

Description:
    Run the tests embedded in this program, each in its own process.
    This is the default when no subcommand is given.

    Settings are read from a YAML file ($` + config.EnvConfig + ` or -config),
    then from $` + config.EnvMaxJobs + `, $` + config.EnvRunList + `,
    $` + config.EnvTimeout + ` and $` + config.EnvVerbose + `, then from flags.

Flag:
`
}

func (rc *runCmd) SetFlags(f *flag.FlagSet) {
	rc.cfg.SetFlags(f)
}

func (rc *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		command.WriteError(rc.o.stderr, command.NewStatusErrorf(StatusConfigError, "Unexpected arguments %q\n\n%s", f.Args(), rc.Usage()))
		return subcommands.ExitStatus(StatusConfigError)
	}
	params, err := rc.cfg.Freeze(rc.o.lookupEnv)
	if err != nil {
		return subcommands.ExitStatus(command.WriteError(rc.o.stderr, command.WrapStatus(StatusConfigError, err)))
	}

	logger := logging.NewSinkLogger(params.LogLevel, true, logging.NewWriterSink(rc.o.stderr))
	ctx = logging.AttachLogger(ctx, logger)

	status, err := rc.runTests(ctx, params)
	if err != nil {
		return subcommands.ExitStatus(command.WriteError(rc.o.stderr, err))
	}
	return subcommands.ExitStatus(status)
}

// runTests runs the registered tests with params and returns the exit status.
func (rc *runCmd) runTests(ctx context.Context, params *config.RunParameters) (int, error) {
	st := stats.New()
	q := queue.New[*sandbox.Execution]()
	sessions := sandbox.NewSessions()

	x, err := sandbox.New(sandbox.Config{
		Exe:      rc.o.exe,
		Stdin:    rc.o.stdin,
		Stats:    st,
		Queue:    q,
		Sessions: sessions,
		Fatal: func(ctx context.Context, err error) {
			status := command.WriteError(rc.o.stderr, command.WrapStatus(StatusSandboxError, errors.Wrap(err, "sandbox failure")))
			sessions.KillAll()
			rc.o.exit(status)
		},
	})
	if err != nil {
		return 0, command.WrapStatus(StatusSandboxError, err)
	}

	stop := command.InstallSignalHandler(rc.o.stderr, func(os.Signal) {
		sessions.KillAll()
	})
	defer stop()

	m := metrics.New()
	s := scheduler.New(scheduler.Config{
		Params:    params,
		Stats:     st,
		Queue:     q,
		Starter:   x,
		Reporter:  reporting.New(rc.o.stdout, params.StripANSI),
		Observers: []scheduler.Observer{m},
	})

	logging.Debugf(ctx, "Running %d registered tests with %+v", len(rc.o.reg.AllTests()), *params)
	counts, err := s.Run(ctx, rc.o.reg.Records(params))
	if err != nil {
		return 0, command.WrapStatus(StatusSandboxError, err)
	}

	if params.MetricsFile != "" {
		if err := m.WriteToTextfile(params.MetricsFile); err != nil {
			logging.Info(ctx, "Failed to write metrics: ", err)
		}
	}

	if counts.Failed > 0 {
		return StatusTestFailed, nil
	}
	return StatusSuccess, nil
}
