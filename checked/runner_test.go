// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Firobe/snarky/checked"
	"github.com/Firobe/snarky/constraint"
	"github.com/Firobe/snarky/expr"
	"github.com/Firobe/snarky/field"
	"github.com/Firobe/snarky/field/bn254"
)

// squareCircuit asserts x² = 9 for a public x: one existential for x² and
// one Square constraint.
func squareCircuit(r *checked.Run, public []any) error {
	f := r.Field()
	x := public[0].(expr.LinearCombination)
	x2, err := checked.ExistsField(r, checked.Compute(func(p *checked.Prover) (field.Element, error) {
		v, err := p.Value(x)
		if err != nil {
			return field.Element{}, err
		}
		return f.Mul(v, v), nil
	}))
	if err != nil {
		return err
	}
	if err := r.AssertSquare(x, x2); err != nil {
		return err
	}
	return r.AssertEqual(x2, r.Constant(9))
}

func fieldSpec() checked.Spec {
	return checked.Spec{checked.FieldTyp()}
}

func TestConstraintSystemWalk(t *testing.T) {
	f := bn254.New()

	sys, err := checked.ConstraintSystem(f, fieldSpec(), squareCircuit)
	require.NoError(t, err)

	assert.True(t, sys.IsFinalized())
	assert.Equal(t, 2, sys.NbConstraints())
	assert.Equal(t, 1, sys.NbPublic())
	assert.Equal(t, 1, sys.NbAuxiliary())
	assert.Equal(t, constraint.KindSquare, sys.Constraints()[0].Kind)
	assert.Equal(t, constraint.KindEqual, sys.Constraints()[1].Kind)
}

func TestGenerateWitness(t *testing.T) {
	f := bn254.New()

	inputs, err := checked.GenerateWitness(f, fieldSpec(), []any{f.FromInterface(3)}, squareCircuit)
	require.NoError(t, err)
	require.Len(t, inputs.Public, 1)
	require.Len(t, inputs.Auxiliary, 1)
	assert.Equal(t, f.FromInterface(3), inputs.Public[0])
	assert.Equal(t, f.FromInterface(9), inputs.Auxiliary[0])
}

// Both walks of one description must agree on variable counts and emit the
// same constraints in the same order.
func TestWalkParity(t *testing.T) {
	f := bn254.New()

	var setupKinds, proverKinds []constraint.Kind
	record := func(dst *[]constraint.Kind) func(constraint.Constraint) {
		return func(c constraint.Constraint) { *dst = append(*dst, c.Kind) }
	}

	checked.InstallConstraintHook(record(&setupKinds))
	sys, err := checked.ConstraintSystem(f, fieldSpec(), squareCircuit)
	checked.ClearConstraintHook()
	require.NoError(t, err)

	checked.InstallConstraintHook(record(&proverKinds))
	inputs, err := checked.GenerateWitness(f, fieldSpec(), []any{f.FromInterface(3)}, squareCircuit)
	checked.ClearConstraintHook()
	require.NoError(t, err)

	assert.Equal(t, setupKinds, proverKinds)
	assert.Equal(t, sys.NbPublic(), len(inputs.Public))
	assert.Equal(t, sys.NbAuxiliary(), len(inputs.Auxiliary))
	assert.Equal(t, sys.NbConstraints(), len(proverKinds))
}

func TestCheckModes(t *testing.T) {
	f := bn254.New()

	require.NoError(t, checked.Check(f, fieldSpec(), []any{f.FromInterface(3)}, squareCircuit))

	// 4² ≠ 9: the checking walk refuses, the unchecked walk does not.
	err := checked.Check(f, fieldSpec(), []any{f.FromInterface(4)}, squareCircuit)
	require.Error(t, err)
	var unsat *checked.UnsatisfiedConstraintError
	require.True(t, errors.As(err, &unsat))
	assert.Equal(t, constraint.KindEqual, unsat.Constraint.Kind)

	_, err = checked.RunUnchecked(f, fieldSpec(), []any{f.FromInterface(4)},
		func(r *checked.Run, public []any) (struct{}, error) {
			return struct{}{}, squareCircuit(r, public)
		})
	assert.NoError(t, err)
}

func TestRunAndCheckResult(t *testing.T) {
	f := bn254.New()

	got, err := checked.RunAndCheck(f, fieldSpec(), []any{f.FromInterface(3)},
		func(r *checked.Run, public []any) (field.Element, error) {
			if err := squareCircuit(r, public); err != nil {
				return field.Element{}, err
			}
			var out field.Element
			err := r.AsProver(func(p *checked.Prover) error {
				v, err := p.Value(public[0].(expr.LinearCombination))
				out = v
				return err
			})
			return out, err
		})
	require.NoError(t, err)
	assert.Equal(t, f.FromInterface(3), got)
}

func TestGenerateWitnessConv(t *testing.T) {
	f := bn254.New()

	var seen field.Element
	inputs, err := checked.GenerateWitnessConv(f, fieldSpec(), []any{f.FromInterface(3)},
		func(r *checked.Run, public []any) (string, error) {
			return "done", squareCircuit(r, public)
		},
		func(res string, in *checked.Inputs) error {
			assert.Equal(t, "done", res)
			seen = in.Auxiliary[0]
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, f.FromInterface(9), seen)
	assert.Equal(t, f.FromInterface(9), inputs.Auxiliary[0])
}

func TestStorePublicArity(t *testing.T) {
	f := bn254.New()

	_, err := checked.GenerateWitness(f, fieldSpec(), nil, squareCircuit)
	require.Error(t, err)
	var mismatch *checked.StructuralMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestUnassignedVariableRejected(t *testing.T) {
	f := bn254.New()

	// Alloc in a prover walk leaves the variable without a value.
	leaky := func(r *checked.Run, public []any) error {
		checked.FieldTyp().Alloc(r)
		return nil
	}
	_, err := checked.GenerateWitness(f, fieldSpec(), []any{f.FromInterface(1)}, leaky)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value")
}

// A bare Alloc must not break later stores: the walk carries the hole and
// reports it at the end instead of panicking mid-walk.
func TestAllocHoleSurvivesLaterStores(t *testing.T) {
	f := bn254.New()

	leaky := func(r *checked.Run, public []any) error {
		hole := checked.FieldTyp().Alloc(r)
		filled, err := checked.ExistsField(r, checked.Const(f.One()))
		if err != nil {
			return err
		}
		// The hole is present but unreadable; the stored value is fine.
		return r.AsProver(func(p *checked.Prover) error {
			if _, err := p.Value(hole); err == nil {
				return errors.New("expected the unassigned variable to be unreadable")
			}
			v, err := p.Value(filled)
			if err != nil {
				return err
			}
			if !f.IsOne(v) {
				return errors.New("stored value corrupted")
			}
			return nil
		})
	}

	_, err := checked.GenerateWitness(f, fieldSpec(), []any{f.FromInterface(1)}, leaky)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 variables have no value")
}

func TestConstraintLabels(t *testing.T) {
	f := bn254.New()

	labelled := func(r *checked.Run, public []any) error {
		x := public[0].(expr.LinearCombination)
		return r.WithLabel("outer", func() error {
			return r.WithLabel("inner", func() error {
				return r.AssertEqual(x, r.Constant(1))
			})
		})
	}

	sys, err := checked.ConstraintSystem(f, fieldSpec(), labelled)
	require.NoError(t, err)
	assert.Equal(t, "outer/inner", sys.Constraints()[0].Label)

	err = checked.Check(f, fieldSpec(), []any{f.FromInterface(2)}, labelled)
	var unsat *checked.UnsatisfiedConstraintError
	require.True(t, errors.As(err, &unsat))
	assert.Equal(t, "outer/inner", unsat.Label)
}

func TestProverArithmeticDomain(t *testing.T) {
	f := bn254.New()

	invert := func(r *checked.Run, public []any) error {
		x := public[0].(expr.LinearCombination)
		_, err := checked.ExistsField(r, checked.Compute(func(p *checked.Prover) (field.Element, error) {
			return p.Inverse(x)
		}))
		return err
	}

	_, err := checked.GenerateWitness(f, fieldSpec(), []any{f.FromInterface(7)}, invert)
	require.NoError(t, err)

	_, err = checked.GenerateWitness(f, fieldSpec(), []any{field.Element{}}, invert)
	require.Error(t, err)
	var domain *checked.ArithmeticDomainError
	require.True(t, errors.As(err, &domain))
	assert.Equal(t, "inverse", domain.Op)
}

type squareRequest struct{}

func (squareRequest) RequestName() string { return "square" }

// A handler that answers with a value violating a constraint must be caught
// by the checking walk, pointing at the constraint it broke.
func TestTamperedWitnessFailsCheck(t *testing.T) {
	f := bn254.New()

	// y = x² with y coming from the handler stack, falling back to the
	// honest computation.
	circuit := func(r *checked.Run, public []any) error {
		x := public[0].(expr.LinearCombination)
		y, err := checked.ExistsField(r, checked.Source[field.Element]{
			Request: squareRequest{},
			Compute: func(p *checked.Prover) (field.Element, error) {
				v, err := p.Value(x)
				if err != nil {
					return field.Element{}, err
				}
				return f.Mul(v, v), nil
			},
		})
		if err != nil {
			return err
		}
		return r.AssertSquare(x, y)
	}

	three := []any{f.FromInterface(3)}
	require.NoError(t, checked.Check(f, fieldSpec(), three, circuit))

	tampered := func(r *checked.Run, public []any) error {
		return r.Handle(func(checked.Request) (any, error) {
			return f.FromInterface(10), nil
		}, func() error {
			return circuit(r, public)
		})
	}
	err := checked.Check(f, fieldSpec(), three, tampered)
	require.Error(t, err)
	var unsat *checked.UnsatisfiedConstraintError
	require.True(t, errors.As(err, &unsat))
	assert.Equal(t, constraint.KindSquare, unsat.Constraint.Kind)
}

// Concurrent walks of the same description must not interfere: all state is
// confined to each walk's Run.
func TestConcurrentWalks(t *testing.T) {
	f := bn254.New()

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		x := uint64(3)
		wantErr := i%2 == 1
		if wantErr {
			x = 4
		}
		g.Go(func() error {
			err := checked.Check(f, fieldSpec(), []any{f.FromInterface(x)}, squareCircuit)
			if wantErr {
				var unsat *checked.UnsatisfiedConstraintError
				if !errors.As(err, &unsat) {
					return errors.New("expected an unsatisfied constraint")
				}
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
}
