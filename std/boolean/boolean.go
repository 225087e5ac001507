// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

// Package boolean provides 0/1-restricted circuit values and logical
// connectives compiled to constant-size arithmetic: each connective costs
// O(1) constraints regardless of operand history.
package boolean

import (
	"fmt"

	"github.com/Firobe/snarky/checked"
	"github.com/Firobe/snarky/expr"
	"github.com/Firobe/snarky/field"
)

// Var is a boolean-valued circuit quantity. Values built through Typ carry
// a booleanness constraint; values built through TypUnchecked or
// FromCombination rely on the caller's guarantee.
type Var struct {
	lc expr.LinearCombination
}

// LC exposes the underlying combination.
func (v Var) LC() expr.LinearCombination { return v.lc }

// FromCombination wraps a combination the caller guarantees to evaluate to
// 0 or 1. No constraint is emitted.
func FromCombination(lc expr.LinearCombination) Var {
	return Var{lc: lc}
}

// Constant returns the constant boolean b.
func Constant(f field.Field, b bool) Var {
	if b {
		return Var{lc: expr.NewConstant(f.One())}
	}
	return Var{lc: expr.Zero()}
}

// Typ is the boolean layout: one field element, constrained to {0,1} at
// check time.
func Typ() checked.Typ[bool, Var] {
	t := TypUnchecked()
	t.CheckFn = func(r *checked.Run, v Var) error {
		return r.AssertBoolean(v.lc)
	}
	return t
}

// TypUnchecked is Typ without the booleanness constraint: a performance
// escape hatch when the invariant is otherwise guaranteed. Storing a
// non-boolean value is not rejected.
func TypUnchecked() checked.Typ[bool, Var] {
	return checked.Typ[bool, Var]{
		Size: 1,
		VarToFields: func(v Var) []expr.LinearCombination {
			return []expr.LinearCombination{v.lc}
		},
		VarFromFields: func(lcs []expr.LinearCombination) Var {
			return Var{lc: lcs[0]}
		},
		ValueToFields: func(f field.Field, b bool) ([]field.Element, error) {
			if b {
				return []field.Element{f.One()}, nil
			}
			return []field.Element{{}}, nil
		},
		ValueFromFields: func(f field.Field, els []field.Element) (bool, error) {
			switch {
			case els[0].IsZero():
				return false, nil
			case f.IsOne(els[0]):
				return true, nil
			default:
				return false, fmt.Errorf("boolean: value %s is not 0 or 1", f.String(els[0]))
			}
		},
	}
}

// Not returns ¬a as 1-a. Pure algebra, no constraint.
func Not(f field.Field, a Var) Var {
	return Var{lc: expr.Sub(f, expr.NewConstant(f.One()), a.lc)}
}

// And returns a∧b as a·b.
func And(r *checked.Run, a, b Var) (Var, error) {
	c, err := existsBool(r, func(av, bv bool) bool { return av && bv }, a, b)
	if err != nil {
		return Var{}, err
	}
	return c, r.AssertR1C(a.lc, b.lc, c.lc)
}

// Or returns a∨b as a+b-a·b, constrained by (1-a)·(1-b) = (1-c).
func Or(r *checked.Run, a, b Var) (Var, error) {
	c, err := existsBool(r, func(av, bv bool) bool { return av || bv }, a, b)
	if err != nil {
		return Var{}, err
	}
	f := r.Field()
	return c, r.AssertR1C(Not(f, a).lc, Not(f, b).lc, Not(f, c).lc)
}

// Xor returns a⊕b as a+b-2a·b, constrained by 2a·b = a+b-c.
func Xor(r *checked.Run, a, b Var) (Var, error) {
	c, err := existsBool(r, func(av, bv bool) bool { return av != bv }, a, b)
	if err != nil {
		return Var{}, err
	}
	f := r.Field()
	twoA := expr.Scale(f, field.Two(f), a.lc)
	sum := expr.Sub(f, expr.Add(f, a.lc, b.lc), c.lc)
	return c, r.AssertR1C(twoA, b.lc, sum)
}

// Any returns the disjunction of vs; false for no operands.
func Any(r *checked.Run, vs ...Var) (Var, error) {
	res := Constant(r.Field(), false)
	var err error
	for _, v := range vs {
		if res, err = Or(r, res, v); err != nil {
			return Var{}, err
		}
	}
	return res, nil
}

// All returns the conjunction of vs; true for no operands.
func All(r *checked.Run, vs ...Var) (Var, error) {
	res := Constant(r.Field(), true)
	var err error
	for _, v := range vs {
		if res, err = And(r, res, v); err != nil {
			return Var{}, err
		}
	}
	return res, nil
}

// existsBool allocates the connective's result. The result of a connective
// over booleans is boolean by construction, so the unchecked layout is used
// and only the connective's own constraint is emitted.
func existsBool(r *checked.Run, op func(a, b bool) bool, a, b Var) (Var, error) {
	return checked.Exists(r, TypUnchecked(), checked.Compute(func(p *checked.Prover) (bool, error) {
		av, err := p.Value(a.lc)
		if err != nil {
			return false, err
		}
		bv, err := p.Value(b.lc)
		if err != nil {
			return false, err
		}
		return op(!av.IsZero(), !bv.IsZero()), nil
	}))
}
