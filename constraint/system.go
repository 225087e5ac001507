// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package constraint

import (
	"errors"

	"github.com/Firobe/snarky/field"
)

// ErrFinalized is returned on any mutation of a finalized system, and on a
// second Finalize. Both are programming errors in the calling walk.
var ErrFinalized = errors.New("constraint: system is finalized")

// System is an ordered collection of constraints plus the public and
// auxiliary variable counts, fixed exactly once by Finalize. A System is
// owned by the single walk that builds it; it is not safe for concurrent
// mutation.
type System struct {
	f           field.Field
	constraints []Constraint

	nbPublic    int
	nbAuxiliary int
	finalized   bool
}

// NewSystem returns an empty system over f.
func NewSystem(f field.Field) *System {
	return &System{f: f}
}

// Field returns the field the system's coefficients live in.
func (s *System) Field() field.Field {
	return s.f
}

// AddConstraint appends c, preserving emission order.
func (s *System) AddConstraint(c Constraint) error {
	if s.finalized {
		return ErrFinalized
	}
	s.constraints = append(s.constraints, c)
	return nil
}

// Finalize locks the system and fixes the input sizes.
func (s *System) Finalize(nbPublic, nbAuxiliary int) error {
	if s.finalized {
		return ErrFinalized
	}
	s.nbPublic = nbPublic
	s.nbAuxiliary = nbAuxiliary
	s.finalized = true
	return nil
}

// IsFinalized reports whether Finalize ran.
func (s *System) IsFinalized() bool {
	return s.finalized
}

// NbConstraints returns the number of constraints.
func (s *System) NbConstraints() int {
	return len(s.constraints)
}

// NbPublic returns the primary (public) input variable count.
func (s *System) NbPublic() int {
	return s.nbPublic
}

// NbAuxiliary returns the auxiliary variable count.
func (s *System) NbAuxiliary() int {
	return s.nbAuxiliary
}

// Constraints returns the constraints in emission order. The returned slice
// is the system's backing storage; callers must not mutate it.
func (s *System) Constraints() []Constraint {
	return s.constraints
}
