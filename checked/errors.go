// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked

import (
	"errors"
	"fmt"

	"github.com/Firobe/snarky/constraint"
)

// ErrUnhandledRequest is returned by Exists when neither the handler stack
// nor a Compute fallback resolved an existential value. It aborts the walk.
var ErrUnhandledRequest = errors.New("checked: unhandled request")

// ErrDeclined is returned by a Handler to signal an explicit miss; the
// request is then offered to the next handler down the stack.
var ErrDeclined = errors.New("checked: handler declined the request")

// StructuralMismatchError reports a value whose shape disagrees with a Typ
// or a Spec (wrong slice length, wrong positional input type). It is fatal
// to the walk.
type StructuralMismatchError struct {
	msg string
}

func structuralMismatchf(format string, args ...any) *StructuralMismatchError {
	return &StructuralMismatchError{msg: fmt.Sprintf(format, args...)}
}

func (e *StructuralMismatchError) Error() string {
	return "checked: structural mismatch: " + e.msg
}

// ArithmeticDomainError reports an inverse or square root applied outside
// its domain during witness computation. It is fatal to the walk.
type ArithmeticDomainError struct {
	Op string
}

func (e *ArithmeticDomainError) Error() string {
	return "checked: arithmetic domain error in " + e.Op
}

// UnsatisfiedConstraintError is the one recoverable failure category: in a
// checking walk it identifies the first constraint whose equation does not
// hold for the concrete assignment, with the label that was active when the
// constraint was emitted.
type UnsatisfiedConstraintError struct {
	Constraint constraint.Constraint
	Label      string
}

func (e *UnsatisfiedConstraintError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("checked: unsatisfied %s constraint", e.Constraint.Kind)
	}
	return fmt.Sprintf("checked: unsatisfied %s constraint [%s]", e.Constraint.Kind, e.Label)
}
