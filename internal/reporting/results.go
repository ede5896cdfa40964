// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.chromium.org/inlinetest/internal/logging"
)

// Outcome is the final state of one test.
type Outcome int

const (
	Passed Outcome = iota
	Failed
	Skipped
)

// Result is the outcome of one test as shown in the results list.
type Result struct {
	Name    string
	Outcome Outcome
	// Detail is the trailer of a failed test.
	Detail string
}

// WriteResultsToLogs logs an aligned list of results at debug level.
func WriteResultsToLogs(ctx context.Context, results []Result) {
	ml := 0
	for _, res := range results {
		if len(res.Name) > ml {
			ml = len(res.Name)
		}
	}

	sep := strings.Repeat("-", 80)
	logging.Debug(ctx, sep)
	for _, res := range results {
		pn := fmt.Sprintf("%-"+strconv.Itoa(ml)+"s", res.Name)
		switch res.Outcome {
		case Passed:
			logging.Debug(ctx, pn+"  [ PASS ]")
		case Skipped:
			logging.Debug(ctx, pn+"  [ SKIP ]")
		default:
			logging.Debug(ctx, pn+"  [ FAIL ] "+res.Detail)
		}
	}
	logging.Debug(ctx, sep)
}
