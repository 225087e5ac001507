// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked

import (
	"github.com/Firobe/snarky/expr"
	"github.com/Firobe/snarky/field"
)

// If selects between two layouts of t depending on cond, which the caller
// must already have constrained to be boolean-valued. Selection is
// per-field-element: one existential and one rank-1 constraint each, so the
// allocation pattern never depends on the scrutinee and both walk modes
// stay in lockstep. The Typ's own Check is not re-emitted: the result
// equals one of the branches, whose validity the branches already carry.
func If[V, W any](r *Run, cond expr.LinearCombination, t Typ[V, W], ifTrue, ifFalse W) (W, error) {
	var zero W
	tf := t.VarToFields(ifTrue)
	ff := t.VarToFields(ifFalse)

	out := make([]expr.LinearCombination, t.Size)
	for i := range out {
		i := i
		sel, err := ExistsField(r, Compute(func(p *Prover) (field.Element, error) {
			c, err := p.Value(cond)
			if err != nil {
				return field.Element{}, err
			}
			if c.IsZero() {
				return p.Value(ff[i])
			}
			return p.Value(tf[i])
		}))
		if err != nil {
			return zero, err
		}
		// cond·(ifTrue - ifFalse) = sel - ifFalse
		if err := r.AssertR1C(cond, expr.Sub(r.f, tf[i], ff[i]), expr.Sub(r.f, sel, ff[i])); err != nil {
			return zero, err
		}
		out[i] = sel
	}
	return t.VarFromFields(out), nil
}
