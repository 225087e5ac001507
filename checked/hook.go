// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked

import (
	"sync"

	"github.com/Firobe/snarky/constraint"
)

var (
	hookMu sync.Mutex
	hook   func(constraint.Constraint)
)

// InstallConstraintHook installs a process-wide callback observing every
// constraint as it is emitted, in every walk mode. Intended for debugging
// and circuit profiling.
//
// The hook must not start walks or emit constraints itself (it is
// non-reentrant), and its install/clear lifecycle should bracket a walk:
// installing or clearing while a walk is in progress gives that walk a torn
// view.
func InstallConstraintHook(fn func(constraint.Constraint)) {
	hookMu.Lock()
	defer hookMu.Unlock()
	hook = fn
}

// ClearConstraintHook removes the installed hook, if any.
func ClearConstraintHook() {
	hookMu.Lock()
	defer hookMu.Unlock()
	hook = nil
}

func currentHook() func(constraint.Constraint) {
	hookMu.Lock()
	defer hookMu.Unlock()
	return hook
}
