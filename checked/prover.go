// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked

import (
	"github.com/Firobe/snarky/expr"
	"github.com/Firobe/snarky/field"
)

// Prover is the capability to perform as-prover effects: reading concrete
// variable values and computing witness material. Provers exist only inside
// concrete-assignment walks (AsProver bodies, Compute fallbacks and
// HandleAsProver constructors), which makes as-prover effects in an
// allocation-only walk unrepresentable rather than a runtime error.
type Prover struct {
	run *Run
}

// Field returns the walk's field.
func (p *Prover) Field() field.Field { return p.run.f }

// Value evaluates a combination against the walk's assignment.
func (p *Prover) Value(lc expr.LinearCombination) (field.Element, error) {
	return lc.Evaluate(p.run.f, p.run.valueOf)
}

// Inverse is Value composed with field inversion, failing with an
// ArithmeticDomainError on zero.
func (p *Prover) Inverse(lc expr.LinearCombination) (field.Element, error) {
	v, err := p.Value(lc)
	if err != nil {
		return field.Element{}, err
	}
	inv, ok := p.run.f.Inverse(v)
	if !ok {
		return field.Element{}, &ArithmeticDomainError{Op: "inverse"}
	}
	return inv, nil
}

// Sqrt is Value composed with a field square root, failing with an
// ArithmeticDomainError on non-residues.
func (p *Prover) Sqrt(lc expr.LinearCombination) (field.Element, error) {
	v, err := p.Value(lc)
	if err != nil {
		return field.Element{}, err
	}
	root, ok := p.run.f.Sqrt(v)
	if !ok {
		return field.Element{}, &ArithmeticDomainError{Op: "sqrt"}
	}
	return root, nil
}

// Read recovers the concrete value of a layout. Shorthand for t.Read(p, w).
func Read[V, W any](p *Prover, t Typ[V, W], w W) (V, error) {
	return t.Read(p, w)
}

// AsProver runs body with concrete-value access during concrete-assignment
// walks and skips it entirely during allocation-only walks. The body must
// not allocate variables or emit constraints, or the two walk modes
// desynchronize.
func (r *Run) AsProver(body func(*Prover) error) error {
	if r.mode != ModeProver {
		return nil
	}
	return body(&Prover{run: r})
}
