// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package testing holds the registry of tests discovered in a program.
//
// Tests are kept in registration order, which is the order the scheduler
// launches them in.
package testing

import (
	"go.chromium.org/inlinetest/errors"
	"go.chromium.org/inlinetest/internal/config"
)

// Registry holds registered tests.
type Registry struct {
	tests []*Test
	names map[string]*Test
	errs  []error
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]*Test)}
}

// AddTest adds t to the registry. Invalid or duplicate tests are rejected;
// the error is returned and also remembered for Errors.
func (r *Registry) AddTest(t *Test) error {
	if err := validate(t); err != nil {
		r.errs = append(r.errs, err)
		return err
	}
	if _, ok := r.names[t.Name]; ok {
		err := errors.Errorf("test %q already registered", t.Name)
		r.errs = append(r.errs, err)
		return err
	}
	c := *t
	r.tests = append(r.tests, &c)
	r.names[c.Name] = &c
	return nil
}

// Errors returns the errors encountered while registering tests.
func (r *Registry) Errors() []error {
	return append([]error(nil), r.errs...)
}

// AllTests returns copies of all registered tests in registration order.
func (r *Registry) AllTests() []*Test {
	ts := make([]*Test, len(r.tests))
	for i, t := range r.tests {
		c := *t
		ts[i] = &c
	}
	return ts
}

// Lookup returns the test named name.
func (r *Registry) Lookup(name string) (*Test, bool) {
	t, ok := r.names[name]
	return t, ok
}

// Records returns one TestRecord per registered test, in registration
// order, bound to params.
func (r *Registry) Records(params *config.RunParameters) []*TestRecord {
	recs := make([]*TestRecord, len(r.tests))
	for i, t := range r.tests {
		recs[i] = &TestRecord{Name: t.Name, Func: t.Func, Params: params}
	}
	return recs
}
