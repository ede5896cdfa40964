// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package scheduler walks the discovered tests, launches the ones selected
// by the run filter under the concurrency limit, and reports them as they
// complete.
package scheduler

import (
	"context"

	"go.chromium.org/inlinetest/errors"
	"go.chromium.org/inlinetest/internal/config"
	"go.chromium.org/inlinetest/internal/logging"
	"go.chromium.org/inlinetest/internal/queue"
	"go.chromium.org/inlinetest/internal/reporting"
	"go.chromium.org/inlinetest/internal/sandbox"
	"go.chromium.org/inlinetest/internal/stats"
	"go.chromium.org/inlinetest/internal/testing"
)

// Starter launches a test asynchronously. When the test has finished, the
// Starter must increment the pass or fail counter and then enqueue the
// execution. *sandbox.Executor implements it.
type Starter interface {
	Start(ctx context.Context, rec *testing.TestRecord) *sandbox.Execution
}

// Observer is notified of test progress. Calls are made from the goroutine
// running Run.
type Observer interface {
	TestStarted(name string)
	TestSkipped(name string)
	TestFinished(e *sandbox.Execution)
}

// Config contains the collaborators of a Scheduler.
type Config struct {
	Params    *config.RunParameters
	Stats     *stats.Statistics
	Queue     *queue.CompletionQueue[*sandbox.Execution]
	Starter   Starter
	Reporter  *reporting.Reporter
	Observers []Observer
}

// Scheduler runs one pass over a list of tests.
type Scheduler struct {
	cfg      Config
	reported int
}

// New returns a Scheduler for cfg.
func New(cfg Config) *Scheduler {
	return &Scheduler{cfg: cfg}
}

// Run launches every record accepted by the run filter in order, waits for
// all of them, writes the summary and returns the final counts. Reports
// appear in completion order.
func (s *Scheduler) Run(ctx context.Context, records []*testing.TestRecord) (stats.Counts, error) {
	p := s.cfg.Params
	for _, rec := range records {
		if !p.ShouldRun(rec.Name) {
			logging.Debugf(ctx, "Skipping %s", rec.Name)
			rec.Skipped = true
			s.cfg.Stats.IncSkipped()
			s.cfg.Reporter.Skip(rec.Name)
			for _, o := range s.cfg.Observers {
				o.TestSkipped(rec.Name)
			}
			continue
		}

		s.cfg.Stats.WaitUntilRoom(p.MaxConcurrent)
		s.cfg.Stats.IncStarted()
		for _, o := range s.cfg.Observers {
			o.TestStarted(rec.Name)
		}
		s.cfg.Starter.Start(ctx, rec)

		for {
			e, ok := s.cfg.Queue.TryDequeue()
			if !ok {
				break
			}
			if err := s.report(e); err != nil {
				return s.cfg.Stats.Snapshot(), err
			}
		}
	}

	for s.reported < s.cfg.Stats.Snapshot().Started {
		if err := s.report(s.cfg.Queue.Dequeue()); err != nil {
			return s.cfg.Stats.Snapshot(), err
		}
	}

	counts := s.cfg.Stats.Snapshot()
	if err := s.cfg.Reporter.Summary(counts); err != nil {
		return counts, errors.Wrap(err, "failed to write summary")
	}
	reporting.WriteResultsToLogs(ctx, s.cfg.Reporter.Results())
	return counts, nil
}

func (s *Scheduler) report(e *sandbox.Execution) error {
	s.reported++
	for _, o := range s.cfg.Observers {
		o.TestFinished(e)
	}
	return s.cfg.Reporter.Report(e)
}
