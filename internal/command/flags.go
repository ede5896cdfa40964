// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package command

import (
	"fmt"
	"sort"
	"strings"
)

// EnumFlag implements flag.Value to map a user-supplied string to an enum.
type EnumFlag struct {
	valid  map[string]int     // map from user-supplied string value to int value
	assign EnumFlagAssignFunc // used to assign int value to dest
	def    string             // default value
}

// EnumFlagAssignFunc assigns an enum value to a target variable.
type EnumFlagAssignFunc func(val int)

// NewEnumFlag returns an EnumFlag using the supplied valid values and
// assignment function. def is assigned immediately.
func NewEnumFlag(valid map[string]int, assign EnumFlagAssignFunc, def string) *EnumFlag {
	f := EnumFlag{valid, assign, def}
	if err := f.Set(def); err != nil {
		panic(err)
	}
	return &f
}

// Default returns the default value used if the flag is unset.
func (f *EnumFlag) Default() string { return f.def }

// QuotedValues returns a comma-separated list of quoted accepted values.
func (f *EnumFlag) QuotedValues() string {
	var qn []string
	for n := range f.valid {
		qn = append(qn, fmt.Sprintf("%q", n))
	}
	sort.Strings(qn)
	return strings.Join(qn, ", ")
}

func (f *EnumFlag) String() string { return "" }

// Set assigns the enum value named by v.
func (f *EnumFlag) Set(v string) error {
	ev, ok := f.valid[v]
	if !ok {
		return fmt.Errorf("must be in %s", f.QuotedValues())
	}
	f.assign(ev)
	return nil
}

// ListFlag implements flag.Value for a sep-separated list of strings.
// Empty elements are rejected.
type ListFlag struct {
	sep    string
	assign ListFlagAssignFunc
	def    []string
}

// ListFlagAssignFunc assigns a parsed list to a target variable.
type ListFlagAssignFunc func(vals []string)

// NewListFlag returns a ListFlag. def, if non-nil, is assigned immediately.
func NewListFlag(sep string, assign ListFlagAssignFunc, def []string) *ListFlag {
	f := ListFlag{sep, assign, def}
	if def != nil {
		assign(def)
	}
	return &f
}

func (f *ListFlag) String() string { return strings.Join(f.def, f.sep) }

// Set parses v and assigns the resulting list.
func (f *ListFlag) Set(v string) error {
	vals := strings.Split(v, f.sep)
	for _, s := range vals {
		if s == "" {
			return fmt.Errorf("empty element in %q", v)
		}
	}
	f.assign(vals)
	return nil
}
