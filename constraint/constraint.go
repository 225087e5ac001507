// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

// Package constraint defines the rank-1 constraints emitted during a
// constraint-building walk and the ordered, finalize-once system that
// collects them.
package constraint

import (
	"fmt"

	"github.com/Firobe/snarky/expr"
	"github.com/Firobe/snarky/field"
)

// Kind discriminates the four constraint shapes.
type Kind uint8

const (
	// KindBoolean asserts a·a = a.
	KindBoolean Kind = iota + 1
	// KindEqual asserts a = b.
	KindEqual
	// KindR1C asserts a·b = c.
	KindR1C
	// KindSquare asserts a·a = c.
	KindSquare
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindEqual:
		return "equal"
	case KindR1C:
		return "r1cs"
	case KindSquare:
		return "square"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Constraint is one emitted constraint. Operand usage depends on Kind:
// Boolean uses A; Equal uses A, B; Square uses A, C; R1C uses all three.
// Label is a diagnostic annotation and does not participate in the digest.
type Constraint struct {
	Kind    Kind
	A, B, C expr.LinearCombination
	Label   string
}

// NewBoolean returns the constraint x·x = x.
func NewBoolean(x expr.LinearCombination) Constraint {
	return Constraint{Kind: KindBoolean, A: x}
}

// NewEqual returns the constraint x = y.
func NewEqual(x, y expr.LinearCombination) Constraint {
	return Constraint{Kind: KindEqual, A: x, B: y}
}

// NewR1C returns the constraint a·b = c.
func NewR1C(a, b, c expr.LinearCombination) Constraint {
	return Constraint{Kind: KindR1C, A: a, B: b, C: c}
}

// NewSquare returns the constraint x·x = y.
func NewSquare(x, y expr.LinearCombination) Constraint {
	return Constraint{Kind: KindSquare, A: x, C: y}
}

// WithLabel returns a copy of the constraint carrying a diagnostic label.
func (c Constraint) WithLabel(label string) Constraint {
	c.Label = label
	return c
}

// Satisfied evaluates the constraint's equation against an assignment.
func (c Constraint) Satisfied(f field.Field, at func(expr.Variable) (field.Element, error)) (bool, error) {
	a, err := c.A.Evaluate(f, at)
	if err != nil {
		return false, err
	}
	switch c.Kind {
	case KindBoolean:
		return f.Mul(a, a) == a, nil
	case KindEqual:
		b, err := c.B.Evaluate(f, at)
		if err != nil {
			return false, err
		}
		return a == b, nil
	case KindR1C:
		b, err := c.B.Evaluate(f, at)
		if err != nil {
			return false, err
		}
		out, err := c.C.Evaluate(f, at)
		if err != nil {
			return false, err
		}
		return f.Mul(a, b) == out, nil
	case KindSquare:
		out, err := c.C.Evaluate(f, at)
		if err != nil {
			return false, err
		}
		return f.Mul(a, a) == out, nil
	default:
		return false, fmt.Errorf("constraint: unknown kind %d", c.Kind)
	}
}

// String renders the constraint for diagnostics.
func (c Constraint) String(f field.Field) string {
	switch c.Kind {
	case KindBoolean:
		return fmt.Sprintf("boolean(%s)", c.A.String(f))
	case KindEqual:
		return fmt.Sprintf("%s == %s", c.A.String(f), c.B.String(f))
	case KindR1C:
		return fmt.Sprintf("(%s) * (%s) == %s", c.A.String(f), c.B.String(f), c.C.String(f))
	case KindSquare:
		return fmt.Sprintf("(%s)^2 == %s", c.A.String(f), c.C.String(f))
	default:
		return c.Kind.String()
	}
}
