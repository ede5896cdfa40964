// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

var globalRegistry *Registry // initialized on first use

// GlobalRegistry returns the registry that AddTest registers into.
func GlobalRegistry() *Registry {
	if globalRegistry == nil {
		globalRegistry = NewRegistry()
	}
	return globalRegistry
}

// AddTest adds t to the global registry. Errors are kept in the registry and
// reported when the harness starts.
func AddTest(t *Test) {
	GlobalRegistry().AddTest(t)
}

// SetGlobalRegistryForTesting temporarily replaces the global registry.
// The caller must call the returned function to restore the original.
func SetGlobalRegistryForTesting(reg *Registry) (restore func()) {
	orig := globalRegistry
	globalRegistry = reg
	return func() {
		globalRegistry = orig
	}
}
