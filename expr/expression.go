// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

// Package expr implements the affine linear-combination algebra circuit
// quantities are expressed in: a constant plus a normalized, sorted list of
// coeff*variable terms. The package is pure data and arithmetic; it
// allocates no variables and emits no constraints.
package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Firobe/snarky/field"
)

// LinearCombination is constant + Σ coeff_i * v_i.
//
// Invariant: Terms is sorted by variable index, holds no duplicate variable
// and no zero coefficient. All constructors and operations in this package
// preserve the invariant.
type LinearCombination struct {
	Constant field.Element
	Terms    []Term
}

// NewConstant returns a combination with no variable references.
func NewConstant(c field.Element) LinearCombination {
	return LinearCombination{Constant: c}
}

// Zero returns the zero combination.
func Zero() LinearCombination {
	return LinearCombination{}
}

// FromVar returns 1 * v.
func FromVar(f field.Field, v Variable) LinearCombination {
	return LinearCombination{Terms: []Term{{Coeff: f.One(), VID: v}}}
}

// FromTerms normalizes constant + Σ terms: duplicate variables are merged
// and zero coefficients dropped.
func FromTerms(f field.Field, constant field.Element, terms []Term) LinearCombination {
	ts := make([]Term, len(terms))
	copy(ts, terms)
	sort.Slice(ts, func(i, j int) bool { return ts[i].VID < ts[j].VID })

	res := make([]Term, 0, len(ts))
	for _, t := range ts {
		if n := len(res); n > 0 && res[n-1].VID == t.VID {
			c := f.Add(res[n-1].Coeff, t.Coeff)
			if c.IsZero() {
				res = res[:n-1]
			} else {
				res[n-1].Coeff = c
			}
			continue
		}
		if !t.Coeff.IsZero() {
			res = append(res, t)
		}
	}
	return LinearCombination{Constant: constant, Terms: res}
}

// Clone returns a deep copy.
func (l LinearCombination) Clone() LinearCombination {
	terms := make([]Term, len(l.Terms))
	copy(terms, l.Terms)
	return LinearCombination{Constant: l.Constant, Terms: terms}
}

// Add returns a + b.
func Add(f field.Field, a, b LinearCombination) LinearCombination {
	return LinearCombination{
		Constant: f.Add(a.Constant, b.Constant),
		Terms:    mergeTerms(f, a.Terms, b.Terms),
	}
}

// Sub returns a - b.
func Sub(f field.Field, a, b LinearCombination) LinearCombination {
	return Add(f, a, Neg(f, b))
}

// Neg returns -a.
func Neg(f field.Field, a LinearCombination) LinearCombination {
	terms := make([]Term, len(a.Terms))
	for i, t := range a.Terms {
		terms[i] = Term{Coeff: f.Neg(t.Coeff), VID: t.VID}
	}
	return LinearCombination{Constant: f.Neg(a.Constant), Terms: terms}
}

// Scale returns c * a.
func Scale(f field.Field, c field.Element, a LinearCombination) LinearCombination {
	if c.IsZero() {
		return LinearCombination{}
	}
	terms := make([]Term, len(a.Terms))
	for i, t := range a.Terms {
		terms[i] = Term{Coeff: f.Mul(c, t.Coeff), VID: t.VID}
	}
	return LinearCombination{Constant: f.Mul(c, a.Constant), Terms: terms}
}

// Sum returns Σ ls.
func Sum(f field.Field, ls ...LinearCombination) LinearCombination {
	var res LinearCombination
	for _, l := range ls {
		res = Add(f, res, l)
	}
	return res
}

// Project returns the little-endian weighted sum Σ 2^i * bits[i]. There is
// no bound check: with len(bits) at or above the field bit size, distinct
// bit vectors can project to the same element.
func Project(f field.Field, bits []LinearCombination) LinearCombination {
	res := LinearCombination{}
	w := f.One()
	for _, b := range bits {
		res = Add(f, res, Scale(f, w, b))
		w = f.Add(w, w)
	}
	return res
}

// Pack is Project restricted to unambiguous widths: it fails if len(bits)
// reaches the field bit size, where the weighted sum would wrap.
func Pack(f field.Field, bits []LinearCombination) (LinearCombination, error) {
	if len(bits) >= f.BitLen() {
		return LinearCombination{}, fmt.Errorf("expr: packing %d bits into a %d-bit field is ambiguous", len(bits), f.BitLen())
	}
	return Project(f, bits), nil
}

// ConstantAndTerms decomposes the combination.
func (l LinearCombination) ConstantAndTerms() (field.Element, []Term) {
	return l.Constant, l.Terms
}

// AsConstant returns the constant and true when the combination references
// no variable.
func (l LinearCombination) AsConstant() (field.Element, bool) {
	if len(l.Terms) == 0 {
		return l.Constant, true
	}
	return field.Element{}, false
}

// Equal reports structural equality.
func (l LinearCombination) Equal(o LinearCombination) bool {
	if l.Constant != o.Constant || len(l.Terms) != len(o.Terms) {
		return false
	}
	for i := range l.Terms {
		if l.Terms[i] != o.Terms[i] {
			return false
		}
	}
	return true
}

// Evaluate resolves the combination against an assignment.
func (l LinearCombination) Evaluate(f field.Field, at func(Variable) (field.Element, error)) (field.Element, error) {
	res := l.Constant
	for _, t := range l.Terms {
		v, err := at(t.VID)
		if err != nil {
			return field.Element{}, err
		}
		res = f.Add(res, f.Mul(t.Coeff, v))
	}
	return res, nil
}

// String renders the combination for diagnostics.
func (l LinearCombination) String(f field.Field) string {
	var sbb strings.Builder
	sbb.WriteString(f.String(l.Constant))
	for _, t := range l.Terms {
		sbb.WriteString(" + ")
		sbb.WriteString(f.String(t.Coeff))
		sbb.WriteString("*v")
		fmt.Fprintf(&sbb, "%d", t.VID)
	}
	return sbb.String()
}

func mergeTerms(f field.Field, a, b []Term) []Term {
	res := make([]Term, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].VID < b[j].VID:
			res = append(res, a[i])
			i++
		case a[i].VID > b[j].VID:
			res = append(res, b[j])
			j++
		default:
			c := f.Add(a[i].Coeff, b[j].Coeff)
			if !c.IsZero() {
				res = append(res, Term{Coeff: c, VID: a[i].VID})
			}
			i++
			j++
		}
	}
	res = append(res, a[i:]...)
	res = append(res, b[j:]...)
	return res
}
