// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package metrics mirrors run statistics into Prometheus collectors that can
// be written to a node-exporter textfile at the end of a run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.chromium.org/inlinetest/errors"
	"go.chromium.org/inlinetest/internal/sandbox"
)

// Namespace prefixes every metric name.
const Namespace = "inlinetest"

// Metrics holds the collectors of one run in a private registry.
type Metrics struct {
	reg *prometheus.Registry

	started  prometheus.Counter
	passed   prometheus.Counter
	failed   prometheus.Counter
	skipped  prometheus.Counter
	timedOut prometheus.Counter
	running  prometheus.Gauge
	duration *prometheus.HistogramVec
}

// New returns Metrics with all collectors registered and zeroed.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	counter := func(name, help string) prometheus.Counter {
		return f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      name,
			Help:      help,
		})
	}
	return &Metrics{
		reg:      reg,
		started:  counter("tests_started_total", "Number of tests launched"),
		passed:   counter("tests_passed_total", "Number of tests that passed"),
		failed:   counter("tests_failed_total", "Number of tests that failed"),
		skipped:  counter("tests_skipped_total", "Number of tests excluded by the run filter"),
		timedOut: counter("tests_timed_out_total", "Number of tests killed at their deadline"),
		running: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "tests_running",
			Help:      "Number of tests launched but not yet reported",
		}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "test_duration_seconds",
			Help:      "Wall time of test children",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"result"}),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// TestStarted records a launch.
func (m *Metrics) TestStarted(name string) {
	m.started.Inc()
	m.running.Inc()
}

// TestSkipped records a test excluded by the run filter.
func (m *Metrics) TestSkipped(name string) {
	m.skipped.Inc()
}

// TestFinished records the outcome of a reported execution.
func (m *Metrics) TestFinished(e *sandbox.Execution) {
	m.running.Dec()
	result := "fail"
	if e.Passed() {
		result = "pass"
		m.passed.Inc()
	} else {
		m.failed.Inc()
	}
	if e.TimedOut {
		m.timedOut.Inc()
	}
	m.duration.WithLabelValues(result).Observe(e.Duration.Seconds())
}

// WriteToTextfile writes all metrics to path in the text exposition format.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
