// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked

// Lazy is a deferred sub-computation, forced at most once. Lazies are
// registered on their Run: whatever the computation does, every registered
// thunk has run by the end of the walk (the runner forces leftovers in
// registration order), so a deferred value cannot be forced in one walk
// mode and skipped in another.
type Lazy[T any] struct {
	fn     func() (T, error)
	forced bool
	val    T
	err    error
}

type forceable interface {
	force() error
}

// Defer registers fn to run at most once, at the first Force or at walk end.
func Defer[T any](r *Run, fn func() (T, error)) *Lazy[T] {
	l := &Lazy[T]{fn: fn}
	r.deferred = append(r.deferred, l)
	return l
}

// Force runs the thunk if it has not run yet and returns its memoized
// result. Constraints the thunk emits are emitted at the first Force.
func (l *Lazy[T]) Force() (T, error) {
	if !l.forced {
		l.forced = true
		l.val, l.err = l.fn()
		l.fn = nil
	}
	return l.val, l.err
}

func (l *Lazy[T]) force() error {
	_, err := l.Force()
	return err
}
