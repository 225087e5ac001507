// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package expr

import "github.com/Firobe/snarky/field"

// Variable is an opaque circuit variable: an index assigned at allocation
// time, strictly increasing within one walk. It carries no value.
type Variable int

// Term is coeff * variable.
type Term struct {
	Coeff field.Element
	VID   Variable
}

// NewTerm returns coeff * v.
func NewTerm(coeff field.Element, v Variable) Term {
	return Term{Coeff: coeff, VID: v}
}
