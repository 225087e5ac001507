// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package expr_test

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Firobe/snarky/expr"
	"github.com/Firobe/snarky/field"
	"github.com/Firobe/snarky/field/bn254"
)

func TestFromTermsNormalizes(t *testing.T) {
	f := bn254.New()

	// Unsorted, duplicated, and partially cancelling terms.
	lc := expr.FromTerms(f, f.FromInterface(7), []expr.Term{
		expr.NewTerm(f.FromInterface(3), 2),
		expr.NewTerm(f.FromInterface(1), 0),
		expr.NewTerm(f.FromInterface(2), 2),
		expr.NewTerm(f.Neg(f.FromInterface(1)), 0),
	})

	c, terms := lc.ConstantAndTerms()
	assert.Equal(t, f.FromInterface(7), c)
	require.Len(t, terms, 1)
	assert.Equal(t, expr.Variable(2), terms[0].VID)
	assert.Equal(t, f.FromInterface(5), terms[0].Coeff)
}

func TestAddSubCancel(t *testing.T) {
	f := bn254.New()

	a := expr.Add(f, expr.FromVar(f, 0), expr.NewConstant(f.FromInterface(4)))
	diff := expr.Sub(f, a, a)
	c, ok := diff.AsConstant()
	require.True(t, ok)
	assert.True(t, c.IsZero())
	assert.True(t, diff.Equal(expr.Zero()))
}

func TestScaleByZero(t *testing.T) {
	f := bn254.New()

	a := expr.Add(f, expr.FromVar(f, 3), expr.NewConstant(f.FromInterface(9)))
	z := expr.Scale(f, field.Element{}, a)
	assert.True(t, z.Equal(expr.Zero()))
}

func TestProjectWeights(t *testing.T) {
	f := bn254.New()

	// Constant bits 1,0,1 → 1 + 4 = 5.
	bits := []expr.LinearCombination{
		expr.NewConstant(f.One()),
		expr.Zero(),
		expr.NewConstant(f.One()),
	}
	c, ok := expr.Project(f, bits).AsConstant()
	require.True(t, ok)
	assert.Equal(t, f.FromInterface(5), c)
}

func TestPackRejectsWideInput(t *testing.T) {
	f := bn254.New()

	narrow := make([]expr.LinearCombination, f.BitLen()-1)
	for i := range narrow {
		narrow[i] = expr.Zero()
	}
	_, err := expr.Pack(f, narrow)
	require.NoError(t, err)

	wide := make([]expr.LinearCombination, f.BitLen())
	for i := range wide {
		wide[i] = expr.Zero()
	}
	_, err = expr.Pack(f, wide)
	require.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	f := bn254.New()

	// 2·v0 + 3·v1 + 5 at v0=7, v1=11 → 52.
	lc := expr.FromTerms(f, f.FromInterface(5), []expr.Term{
		expr.NewTerm(f.FromInterface(2), 0),
		expr.NewTerm(f.FromInterface(3), 1),
	})
	vals := []field.Element{f.FromInterface(7), f.FromInterface(11)}
	got, err := lc.Evaluate(f, func(v expr.Variable) (field.Element, error) {
		return vals[v], nil
	})
	require.NoError(t, err)
	assert.Equal(t, f.FromInterface(52), got)
}

func genLC(f field.Field) gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 8).FlatMap(func(v interface{}) gopter.Gen {
		vid := v.(int)
		return gen.Int64Range(-50, 50).Map(func(c int64) expr.Term {
			return expr.NewTerm(field.FromInteger(f, c), expr.Variable(vid))
		})
	}, reflect.TypeOf(expr.Term{}))).Map(func(terms []expr.Term) expr.LinearCombination {
		return expr.FromTerms(f, field.Element{}, terms)
	})
}

func TestAlgebraProperties(t *testing.T) {
	f := bn254.New()
	at := func(v expr.Variable) (field.Element, error) {
		return f.FromInterface(uint64(v) + 1), nil
	}
	eval := func(l expr.LinearCombination) field.Element {
		e, err := l.Evaluate(f, at)
		require.NoError(t, err)
		return e
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Add commutes", prop.ForAll(
		func(a, b expr.LinearCombination) bool {
			return expr.Add(f, a, b).Equal(expr.Add(f, b, a))
		},
		genLC(f), genLC(f),
	))

	properties.Property("Add is homomorphic under evaluation", prop.ForAll(
		func(a, b expr.LinearCombination) bool {
			return eval(expr.Add(f, a, b)) == f.Add(eval(a), eval(b))
		},
		genLC(f), genLC(f),
	))

	properties.Property("Sub of self is zero", prop.ForAll(
		func(a expr.LinearCombination) bool {
			return expr.Sub(f, a, a).Equal(expr.Zero())
		},
		genLC(f),
	))

	properties.Property("Neg negates evaluation", prop.ForAll(
		func(a expr.LinearCombination) bool {
			return eval(expr.Neg(f, a)) == f.Neg(eval(a))
		},
		genLC(f),
	))

	properties.TestingRun(t)
}
