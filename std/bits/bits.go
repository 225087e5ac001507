// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

// Package bits provides bit decomposition of field values and bit-level
// comparison, built entirely on the checked engine and the boolean
// library.
package bits

import (
	"fmt"

	"github.com/Firobe/snarky/checked"
	"github.com/Firobe/snarky/expr"
	"github.com/Firobe/snarky/std/boolean"
)

// Unpack decomposes x into length little-endian bits, each constrained
// boolean, with the projection constrained equal to x. Witness generation
// fails if the concrete value does not fit in length bits.
//
// With length at or above the field bit size the projection admits
// non-canonical decompositions; witness generation always produces the
// canonical one.
func Unpack(r *checked.Run, x expr.LinearCombination, length int) ([]boolean.Var, error) {
	if length < 0 || length > r.Field().BitLen() {
		return nil, fmt.Errorf("bits: cannot unpack to %d bits over a %d-bit field", length, r.Field().BitLen())
	}
	vars, err := checked.Exists(r, checked.SliceOf(boolean.Typ(), length),
		checked.Compute(func(p *checked.Prover) ([]bool, error) {
			return decompose(p, x, length, true)
		}))
	if err != nil {
		return nil, err
	}
	if err := r.AssertEqual(expr.Project(r.Field(), toLCs(vars)), x); err != nil {
		return nil, err
	}
	return vars, nil
}

// UnpackFull is Unpack at the full field bit length.
func UnpackFull(r *checked.Run, x expr.LinearCombination) ([]boolean.Var, error) {
	return Unpack(r, x, r.Field().BitLen())
}

// UnpackFlagged is Unpack that never fails on out-of-range values: it
// returns a success flag instead. When the flag is 1 the bits are
// constrained to project to x; when it is 0 nothing is claimed about them.
// The flag's guarantee is one-sided by construction.
func UnpackFlagged(r *checked.Run, x expr.LinearCombination, length int) ([]boolean.Var, boolean.Var, error) {
	if length < 0 || length > r.Field().BitLen() {
		return nil, boolean.Var{}, fmt.Errorf("bits: cannot unpack to %d bits over a %d-bit field", length, r.Field().BitLen())
	}
	t := checked.Tuple2(checked.SliceOf(boolean.Typ(), length), boolean.Typ())
	w, err := checked.Exists(r, t,
		checked.Compute(func(p *checked.Prover) (checked.Pair[[]bool, bool], error) {
			var res checked.Pair[[]bool, bool]
			bs, err := decompose(p, x, length, false)
			if err != nil {
				return res, err
			}
			res.First = make([]bool, length)
			if bs != nil {
				copy(res.First, bs)
				res.Second = true
			}
			return res, nil
		}))
	if err != nil {
		return nil, boolean.Var{}, err
	}
	bitVars, ok := w.First, w.Second

	f := r.Field()
	diff := expr.Sub(f, expr.Project(f, toLCs(bitVars)), x)
	if err := r.AssertR1C(diff, ok.LC(), expr.Zero()); err != nil {
		return nil, boolean.Var{}, err
	}
	return bitVars, ok, nil
}

// Compared carries the two comparison flags.
type Compared struct {
	Less        boolean.Var
	LessOrEqual boolean.Var
}

// Compare compares x and y over bitLength bits. It requires
// bitLength <= Field.BitLen()-2 (checked), and that both operands are
// already known to be < 2^bitLength; violating the latter gives an
// unspecified result, not a bounded-but-wrong one.
//
// Both operands are decomposed and compared by a bit-serial subtraction:
// Less is the final borrow of x-y, LessOrEqual the negated final borrow of
// y-x.
func Compare(r *checked.Run, bitLength int, x, y expr.LinearCombination) (Compared, error) {
	if bitLength <= 0 || bitLength > r.Field().BitLen()-2 {
		return Compared{}, fmt.Errorf("bits: comparison bit length %d out of range (1..%d)", bitLength, r.Field().BitLen()-2)
	}
	xb, err := Unpack(r, x, bitLength)
	if err != nil {
		return Compared{}, err
	}
	yb, err := Unpack(r, y, bitLength)
	if err != nil {
		return Compared{}, err
	}
	less, err := borrowOut(r, xb, yb)
	if err != nil {
		return Compared{}, err
	}
	greater, err := borrowOut(r, yb, xb)
	if err != nil {
		return Compared{}, err
	}
	return Compared{
		Less:        less,
		LessOrEqual: boolean.Not(r.Field(), greater),
	}, nil
}

// borrowOut runs the subtract-with-borrow chain of a-b from the least
// significant bit and returns the final borrow, i.e. a < b.
func borrowOut(r *checked.Run, a, b []boolean.Var) (boolean.Var, error) {
	f := r.Field()
	borrow := boolean.Constant(f, false)
	for i := range a {
		// borrow' = (b_i ∧ ¬a_i) ∨ (borrow ∧ (a_i ≡ b_i))
		diff, err := boolean.Xor(r, a[i], b[i])
		if err != nil {
			return boolean.Var{}, err
		}
		t1, err := boolean.And(r, b[i], boolean.Not(f, a[i]))
		if err != nil {
			return boolean.Var{}, err
		}
		t2, err := boolean.And(r, borrow, boolean.Not(f, diff))
		if err != nil {
			return boolean.Var{}, err
		}
		borrow, err = boolean.Or(r, t1, t2)
		if err != nil {
			return boolean.Var{}, err
		}
	}
	return borrow, nil
}

// decompose reads x and returns its length little-endian bits. Values that
// do not fit yield an error when strict, a nil slice otherwise.
func decompose(p *checked.Prover, x expr.LinearCombination, length int, strict bool) ([]bool, error) {
	v, err := p.Value(x)
	if err != nil {
		return nil, err
	}
	b := p.Field().ToBigInt(v)
	if b.BitLen() > length {
		if strict {
			return nil, fmt.Errorf("bits: value %s does not fit in %d bits", b.String(), length)
		}
		return nil, nil
	}
	out := make([]bool, length)
	for i := range out {
		out[i] = b.Bit(i) == 1
	}
	return out, nil
}

func toLCs(vs []boolean.Var) []expr.LinearCombination {
	lcs := make([]expr.LinearCombination, len(vs))
	for i, v := range vs {
		lcs[i] = v.LC()
	}
	return lcs
}
