// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked

import (
	"fmt"
	"time"

	"github.com/Firobe/snarky/constraint"
	"github.com/Firobe/snarky/field"
)

// Computation is a replayable computation description. It receives the
// walk's Run and the public-input layouts in Spec order (type-erased; the
// call site casts each to the layout type of its descriptor). The same
// function value is reused, byte for byte, by every execution mode.
type Computation func(r *Run, public []any) error

// ValuedComputation is a Computation with a result value.
type ValuedComputation[T any] func(r *Run, public []any) (T, error)

// Inputs is the proof-inputs pair produced by a witness-generating walk:
// public values in Spec order, auxiliary values in allocation order.
type Inputs struct {
	Public    []field.Element
	Auxiliary []field.Element
}

// ConstraintSystem performs the allocation-only walk of c and returns the
// finalized system.
func ConstraintSystem(f field.Field, spec Spec, c Computation) (*constraint.System, error) {
	start := time.Now()
	r := newRun(f, ModeSetup, false)

	public, err := allocPublic(r, spec)
	if err != nil {
		return nil, err
	}
	if err := c(r, public); err != nil {
		return nil, err
	}
	if err := r.settle(); err != nil {
		return nil, err
	}
	if err := r.sys.Finalize(r.nbPublic, r.next-r.nbPublic); err != nil {
		return nil, err
	}

	r.log.Debug().
		Int("nbConstraints", r.sys.NbConstraints()).
		Int("nbPublic", r.sys.NbPublic()).
		Int("nbAuxiliary", r.sys.NbAuxiliary()).
		Dur("took", time.Since(start)).
		Msg("built constraint system")
	return r.sys, nil
}

// GenerateWitness performs the concrete-assignment walk of c for the given
// public-input values and returns the proof inputs.
func GenerateWitness(f field.Field, spec Spec, values []any, c Computation) (*Inputs, error) {
	_, inputs, err := runProver(f, spec, values, false, lift(c))
	return inputs, err
}

// GenerateWitnessConv is GenerateWitness for computations with a result
// value; conv post-processes the result together with the proof inputs.
func GenerateWitnessConv[T any](f field.Field, spec Spec, values []any, c ValuedComputation[T], conv func(T, *Inputs) error) (*Inputs, error) {
	res, inputs, err := runProver(f, spec, values, false, c)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		if err := conv(res, inputs); err != nil {
			return nil, err
		}
	}
	return inputs, nil
}

// Check performs the concrete-assignment walk evaluating every emitted
// constraint in-line. A violated constraint surfaces as
// *UnsatisfiedConstraintError, inspectable with errors.As.
func Check(f field.Field, spec Spec, values []any, c Computation) error {
	_, _, err := runProver(f, spec, values, true, lift(c))
	return err
}

// RunAndCheck is Check for computations with a result value.
func RunAndCheck[T any](f field.Field, spec Spec, values []any, c ValuedComputation[T]) (T, error) {
	res, _, err := runProver(f, spec, values, true, c)
	return res, err
}

// RunUnchecked performs the concrete-assignment walk without constraint
// verification, for fast iteration once correctness is otherwise
// established.
func RunUnchecked[T any](f field.Field, spec Spec, values []any, c ValuedComputation[T]) (T, error) {
	res, _, err := runProver(f, spec, values, false, c)
	return res, err
}

func lift(c Computation) ValuedComputation[struct{}] {
	return func(r *Run, public []any) (struct{}, error) {
		return struct{}{}, c(r, public)
	}
}

// allocPublic allocates the public-input layouts and emits their validity
// constraints. The prover-mode counterpart storePublic must emit the exact
// same sequence of allocations and constraints.
func allocPublic(r *Run, spec Spec) ([]any, error) {
	public := make([]any, len(spec))
	for i, d := range spec {
		public[i] = d.allocAny(r)
	}
	r.nbPublic = r.next
	for i, d := range spec {
		if err := d.checkAny(r, public[i]); err != nil {
			return nil, err
		}
	}
	return public, nil
}

func storePublic(r *Run, spec Spec, values []any) ([]any, error) {
	if len(values) != len(spec) {
		return nil, structuralMismatchf("spec has %d public inputs, %d values supplied", len(spec), len(values))
	}
	public := make([]any, len(spec))
	for i, d := range spec {
		w, err := d.storeAny(r, values[i])
		if err != nil {
			return nil, err
		}
		public[i] = w
	}
	r.nbPublic = r.next
	for i, d := range spec {
		if err := d.checkAny(r, public[i]); err != nil {
			return nil, err
		}
	}
	return public, nil
}

func runProver[T any](f field.Field, spec Spec, values []any, evaluate bool, c ValuedComputation[T]) (T, *Inputs, error) {
	var zero T
	start := time.Now()
	r := newRun(f, ModeProver, evaluate)

	public, err := storePublic(r, spec, values)
	if err != nil {
		return zero, nil, err
	}
	res, err := c(r, public)
	if err != nil {
		return zero, nil, err
	}
	if err := r.settle(); err != nil {
		return zero, nil, err
	}

	if assigned := r.nbAssigned(); assigned != r.next {
		return zero, nil, fmt.Errorf("checked: %d of %d variables have no value after the walk", r.next-assigned, r.next)
	}
	inputs := &Inputs{
		Public:    append([]field.Element(nil), r.values[:r.nbPublic]...),
		Auxiliary: append([]field.Element(nil), r.values[r.nbPublic:]...),
	}

	r.log.Debug().
		Bool("evaluated", evaluate).
		Int("nbConstraints", r.nbConstraints).
		Int("nbPublic", r.nbPublic).
		Int("nbAuxiliary", r.next-r.nbPublic).
		Dur("took", time.Since(start)).
		Msg("completed concrete-assignment walk")
	return res, inputs, nil
}
