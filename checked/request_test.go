// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Firobe/snarky/checked"
	"github.com/Firobe/snarky/expr"
	"github.com/Firobe/snarky/field"
	"github.com/Firobe/snarky/field/bn254"
)

type valueRequest struct{ name string }

func (q valueRequest) RequestName() string { return q.name }

// answerWith answers every request with a fixed element.
func answerWith(v field.Element) checked.Handler {
	return func(checked.Request) (any, error) { return v, nil }
}

func decline() checked.Handler {
	return func(checked.Request) (any, error) { return nil, checked.ErrDeclined }
}

// askFor performs a concrete-assignment walk of body with no public inputs.
func askFor(f field.Field, body func(*checked.Run) error) error {
	_, err := checked.RunUnchecked(f, checked.Spec{}, nil,
		func(r *checked.Run, _ []any) (struct{}, error) {
			return struct{}{}, body(r)
		})
	return err
}

func resolveOnce(r *checked.Run, req checked.Request) (field.Element, error) {
	lc, err := checked.ExistsField(r, checked.FromRequest[field.Element](req))
	if err != nil {
		return field.Element{}, err
	}
	var got field.Element
	err = r.AsProver(func(p *checked.Prover) error {
		v, err := p.Value(lc)
		got = v
		return err
	})
	return got, err
}

func TestHandlerAnswers(t *testing.T) {
	f := bn254.New()

	got, err := checked.RunUnchecked(f, checked.Spec{}, nil,
		func(r *checked.Run, _ []any) (field.Element, error) {
			var got field.Element
			err := r.Handle(answerWith(f.FromInterface(11)), func() error {
				v, err := resolveOnce(r, valueRequest{"x"})
				got = v
				return err
			})
			return got, err
		})
	require.NoError(t, err)
	assert.Equal(t, f.FromInterface(11), got)
}

func TestHandlerStackOrder(t *testing.T) {
	f := bn254.New()

	// The innermost handler wins; a decline falls through to the outer one.
	got, err := checked.RunUnchecked(f, checked.Spec{}, nil,
		func(r *checked.Run, _ []any) (field.Element, error) {
			var inner, declined field.Element
			err := r.Handle(answerWith(f.FromInterface(1)), func() error {
				return r.Handle(answerWith(f.FromInterface(2)), func() error {
					v, err := resolveOnce(r, valueRequest{"x"})
					if err != nil {
						return err
					}
					inner = v
					return r.Handle(decline(), func() error {
						v, err := resolveOnce(r, valueRequest{"x"})
						declined = v
						return err
					})
				})
			})
			if err != nil {
				return field.Element{}, err
			}
			assert.Equal(t, f.FromInterface(2), inner)
			return declined, nil
		})
	require.NoError(t, err)
	assert.Equal(t, f.FromInterface(2), got)
}

func TestHandlerScopeEnds(t *testing.T) {
	f := bn254.New()

	err := askFor(f, func(r *checked.Run) error {
		if err := r.Handle(answerWith(f.One()), func() error {
			_, err := resolveOnce(r, valueRequest{"x"})
			return err
		}); err != nil {
			return err
		}
		// Outside the Handle extent the request is unanswered.
		_, err := resolveOnce(r, valueRequest{"x"})
		return err
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, checked.ErrUnhandledRequest)
	assert.Contains(t, err.Error(), "x")
}

// A wrong-typed answer must fall through the stack exactly like a decline:
// a handler below the offending one still gets the request.
func TestWrongTypeAnswerFallsThrough(t *testing.T) {
	f := bn254.New()

	badType := func(checked.Request) (any, error) { return "not an element", nil }
	got, err := checked.RunUnchecked(f, checked.Spec{}, nil,
		func(r *checked.Run, _ []any) (field.Element, error) {
			var out field.Element
			err := r.Handle(answerWith(f.One()), func() error {
				return r.Handle(badType, func() error {
					v, err := resolveOnce(r, valueRequest{"x"})
					out = v
					return err
				})
			})
			return out, err
		})
	require.NoError(t, err)
	assert.True(t, f.IsOne(got))
}

func TestWrongTypeAnswerIsMiss(t *testing.T) {
	f := bn254.New()

	badType := func(checked.Request) (any, error) { return "not an element", nil }
	err := askFor(f, func(r *checked.Run) error {
		return r.Handle(badType, func() error {
			_, err := resolveOnce(r, valueRequest{"x"})
			return err
		})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, checked.ErrUnhandledRequest)
}

func TestRequestFallsBackToCompute(t *testing.T) {
	f := bn254.New()

	src := checked.Source[field.Element]{
		Request: valueRequest{"x"},
		Compute: func(*checked.Prover) (field.Element, error) {
			return f.FromInterface(77), nil
		},
	}
	got, err := checked.RunUnchecked(f, checked.Spec{}, nil,
		func(r *checked.Run, _ []any) (field.Element, error) {
			lc, err := checked.ExistsField(r, src)
			if err != nil {
				return field.Element{}, err
			}
			var out field.Element
			err = r.AsProver(func(p *checked.Prover) error {
				v, err := p.Value(lc)
				out = v
				return err
			})
			return out, err
		})
	require.NoError(t, err)
	assert.Equal(t, f.FromInterface(77), got)
}

func TestHandleAsProver(t *testing.T) {
	f := bn254.New()
	spec := checked.Spec{checked.FieldTyp()}

	// The handler derives its answer from the public input's concrete value.
	doubled := func(r *checked.Run, public []any) error {
		x := public[0].(expr.LinearCombination)
		return r.HandleAsProver(func(p *checked.Prover) (checked.Handler, error) {
			v, err := p.Value(x)
			if err != nil {
				return nil, err
			}
			two := f.Add(v, v)
			return answerWith(two), nil
		}, func() error {
			y, err := resolveOnce(r, valueRequest{"double"})
			if err != nil {
				return err
			}
			if r.IsProver() && y != f.FromInterface(10) {
				return errors.New("unexpected answer")
			}
			return nil
		})
	}

	// Both walks must traverse the same shape even though the constructor
	// only runs in the prover walk.
	_, err := checked.ConstraintSystem(f, spec, doubled)
	require.NoError(t, err)
	_, err = checked.GenerateWitness(f, spec, []any{f.FromInterface(5)}, doubled)
	require.NoError(t, err)
}
