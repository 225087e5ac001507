// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked

import (
	"github.com/Firobe/snarky/expr"
	"github.com/Firobe/snarky/field"
)

// Typ relates a domain value type V to a variable-layout type W through a
// fixed field-element footprint. The footprint must not depend on the value
// stored: the same constraint system has to serve every witness.
//
// The four contract operations (Store, Alloc, Read, Check) derive from the
// conversion fields; custom Typs are built either from the fields directly
// or by composing FieldTyp with Tuple2/Tuple3, SliceOf, Transport and
// TransportVar.
type Typ[V, W any] struct {
	// Size is the number of field elements in the layout.
	Size int
	// VarToFields flattens a layout into its per-element combinations.
	VarToFields func(W) []expr.LinearCombination
	// VarFromFields rebuilds a layout from Size combinations.
	VarFromFields func([]expr.LinearCombination) W
	// ValueToFields encodes a value as Size field elements.
	ValueToFields func(field.Field, V) ([]field.Element, error)
	// ValueFromFields decodes a value from Size field elements.
	ValueFromFields func(field.Field, []field.Element) (V, error)
	// CheckFn emits constraints asserting the representation is valid
	// (e.g. booleanness). nil means no invariant.
	CheckFn func(*Run, W) error
}

// Alloc allocates the layout with no concrete value. In prover walks the
// variables stay unassigned; prefer Store or Exists there.
func (t Typ[V, W]) Alloc(r *Run) W {
	lcs := make([]expr.LinearCombination, t.Size)
	for i := range lcs {
		lcs[i] = expr.FromVar(r.f, r.alloc())
	}
	return t.VarFromFields(lcs)
}

// Store embeds a concrete value into freshly allocated variables. Valid
// only during a concrete-assignment walk.
func (t Typ[V, W]) Store(r *Run, v V) (W, error) {
	var zero W
	els, err := t.ValueToFields(r.f, v)
	if err != nil {
		return zero, err
	}
	if len(els) != t.Size {
		return zero, structuralMismatchf("value encodes to %d field elements, layout has %d", len(els), t.Size)
	}
	lcs := make([]expr.LinearCombination, t.Size)
	for i, el := range els {
		vid := r.alloc()
		r.assign(vid, el)
		lcs[i] = expr.FromVar(r.f, vid)
	}
	return t.VarFromFields(lcs), nil
}

// Read recovers the concrete value of a layout under the walk's assignment.
func (t Typ[V, W]) Read(p *Prover, w W) (V, error) {
	var zero V
	lcs := t.VarToFields(w)
	els := make([]field.Element, len(lcs))
	for i, lc := range lcs {
		el, err := p.Value(lc)
		if err != nil {
			return zero, err
		}
		els[i] = el
	}
	return t.ValueFromFields(p.run.f, els)
}

// Check emits the layout's validity constraints; a no-op for Typs without
// an invariant.
func (t Typ[V, W]) Check(r *Run, w W) error {
	if t.CheckFn == nil {
		return nil
	}
	return t.CheckFn(r, w)
}

// FieldTyp is the layout of a single unconstrained field element.
func FieldTyp() Typ[field.Element, expr.LinearCombination] {
	return Typ[field.Element, expr.LinearCombination]{
		Size: 1,
		VarToFields: func(w expr.LinearCombination) []expr.LinearCombination {
			return []expr.LinearCombination{w}
		},
		VarFromFields: func(lcs []expr.LinearCombination) expr.LinearCombination {
			return lcs[0]
		},
		ValueToFields: func(_ field.Field, v field.Element) ([]field.Element, error) {
			return []field.Element{v}, nil
		},
		ValueFromFields: func(_ field.Field, els []field.Element) (field.Element, error) {
			return els[0], nil
		},
	}
}

// Pair is the value (and layout) shape of Tuple2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the value (and layout) shape of Tuple3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple2 concatenates two layouts positionally.
func Tuple2[VA, VB, WA, WB any](ta Typ[VA, WA], tb Typ[VB, WB]) Typ[Pair[VA, VB], Pair[WA, WB]] {
	return Typ[Pair[VA, VB], Pair[WA, WB]]{
		Size: ta.Size + tb.Size,
		VarToFields: func(w Pair[WA, WB]) []expr.LinearCombination {
			return append(ta.VarToFields(w.First), tb.VarToFields(w.Second)...)
		},
		VarFromFields: func(lcs []expr.LinearCombination) Pair[WA, WB] {
			return Pair[WA, WB]{
				First:  ta.VarFromFields(lcs[:ta.Size]),
				Second: tb.VarFromFields(lcs[ta.Size:]),
			}
		},
		ValueToFields: func(f field.Field, v Pair[VA, VB]) ([]field.Element, error) {
			fa, err := ta.ValueToFields(f, v.First)
			if err != nil {
				return nil, err
			}
			fb, err := tb.ValueToFields(f, v.Second)
			if err != nil {
				return nil, err
			}
			return append(fa, fb...), nil
		},
		ValueFromFields: func(f field.Field, els []field.Element) (Pair[VA, VB], error) {
			var zero Pair[VA, VB]
			va, err := ta.ValueFromFields(f, els[:ta.Size])
			if err != nil {
				return zero, err
			}
			vb, err := tb.ValueFromFields(f, els[ta.Size:])
			if err != nil {
				return zero, err
			}
			return Pair[VA, VB]{First: va, Second: vb}, nil
		},
		CheckFn: func(r *Run, w Pair[WA, WB]) error {
			if err := ta.Check(r, w.First); err != nil {
				return err
			}
			return tb.Check(r, w.Second)
		},
	}
}

// Tuple3 concatenates three layouts positionally.
func Tuple3[VA, VB, VC, WA, WB, WC any](ta Typ[VA, WA], tb Typ[VB, WB], tc Typ[VC, WC]) Typ[Triple[VA, VB, VC], Triple[WA, WB, WC]] {
	inner := Tuple2(ta, Tuple2(tb, tc))
	return Transport(
		TransportVar(inner,
			func(w Triple[WA, WB, WC]) Pair[WA, Pair[WB, WC]] {
				return Pair[WA, Pair[WB, WC]]{First: w.First, Second: Pair[WB, WC]{First: w.Second, Second: w.Third}}
			},
			func(p Pair[WA, Pair[WB, WC]]) Triple[WA, WB, WC] {
				return Triple[WA, WB, WC]{First: p.First, Second: p.Second.First, Third: p.Second.Second}
			},
		),
		func(v Triple[VA, VB, VC]) (Pair[VA, Pair[VB, VC]], error) {
			return Pair[VA, Pair[VB, VC]]{First: v.First, Second: Pair[VB, VC]{First: v.Second, Second: v.Third}}, nil
		},
		func(p Pair[VA, Pair[VB, VC]]) (Triple[VA, VB, VC], error) {
			return Triple[VA, VB, VC]{First: p.First, Second: p.Second.First, Third: p.Second.Second}, nil
		},
	)
}

// SliceOf is the layout of exactly length values of t. A value with any
// other length is a structural mismatch.
func SliceOf[V, W any](t Typ[V, W], length int) Typ[[]V, []W] {
	return Typ[[]V, []W]{
		Size: t.Size * length,
		VarToFields: func(ws []W) []expr.LinearCombination {
			if len(ws) != length {
				panic(structuralMismatchf("layout slice has length %d, typ is fixed at %d", len(ws), length))
			}
			lcs := make([]expr.LinearCombination, 0, t.Size*length)
			for _, w := range ws {
				lcs = append(lcs, t.VarToFields(w)...)
			}
			return lcs
		},
		VarFromFields: func(lcs []expr.LinearCombination) []W {
			ws := make([]W, length)
			for i := range ws {
				ws[i] = t.VarFromFields(lcs[i*t.Size : (i+1)*t.Size])
			}
			return ws
		},
		ValueToFields: func(f field.Field, vs []V) ([]field.Element, error) {
			if len(vs) != length {
				return nil, structuralMismatchf("value slice has length %d, typ is fixed at %d", len(vs), length)
			}
			els := make([]field.Element, 0, t.Size*length)
			for _, v := range vs {
				e, err := t.ValueToFields(f, v)
				if err != nil {
					return nil, err
				}
				els = append(els, e...)
			}
			return els, nil
		},
		ValueFromFields: func(f field.Field, els []field.Element) ([]V, error) {
			vs := make([]V, length)
			for i := range vs {
				v, err := t.ValueFromFields(f, els[i*t.Size:(i+1)*t.Size])
				if err != nil {
					return nil, err
				}
				vs[i] = v
			}
			return vs, nil
		},
		CheckFn: func(r *Run, ws []W) error {
			if len(ws) != length {
				return structuralMismatchf("layout slice has length %d, typ is fixed at %d", len(ws), length)
			}
			for _, w := range ws {
				if err := t.Check(r, w); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Transport converts a Typ through a value isomorphism without touching the
// variable layout. there and back must be mutually inverse and
// value-preserving; the engine cannot verify this.
func Transport[V2, V1, W any](t Typ[V1, W], there func(V2) (V1, error), back func(V1) (V2, error)) Typ[V2, W] {
	return Typ[V2, W]{
		Size:          t.Size,
		VarToFields:   t.VarToFields,
		VarFromFields: t.VarFromFields,
		ValueToFields: func(f field.Field, v2 V2) ([]field.Element, error) {
			v1, err := there(v2)
			if err != nil {
				return nil, err
			}
			return t.ValueToFields(f, v1)
		},
		ValueFromFields: func(f field.Field, els []field.Element) (V2, error) {
			var zero V2
			v1, err := t.ValueFromFields(f, els)
			if err != nil {
				return zero, err
			}
			return back(v1)
		},
		CheckFn: t.CheckFn,
	}
}

// TransportVar converts a Typ through a layout isomorphism without touching
// the value side. there and back must be mutually inverse.
func TransportVar[V, W2, W1 any](t Typ[V, W1], there func(W2) W1, back func(W1) W2) Typ[V, W2] {
	return Typ[V, W2]{
		Size: t.Size,
		VarToFields: func(w2 W2) []expr.LinearCombination {
			return t.VarToFields(there(w2))
		},
		VarFromFields: func(lcs []expr.LinearCombination) W2 {
			return back(t.VarFromFields(lcs))
		},
		ValueToFields:   t.ValueToFields,
		ValueFromFields: t.ValueFromFields,
		CheckFn: func(r *Run, w2 W2) error {
			return t.Check(r, there(w2))
		},
	}
}
