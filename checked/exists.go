// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked

import (
	"fmt"

	"github.com/Firobe/snarky/expr"
	"github.com/Firobe/snarky/field"
)

// Source describes how an existential value is resolved during a
// concrete-assignment walk. Resolution order: the Request is offered to the
// handler stack (most recent handler first; a decline or error falls
// through), then Compute runs, and with neither the walk fails with
// ErrUnhandledRequest. The zero Source always fails, which is the right
// shape for values that must come from a caller-installed handler.
type Source[V any] struct {
	Request Request
	Compute func(*Prover) (V, error)
}

// Compute is the Source resolving through fallback computation only.
func Compute[V any](fn func(*Prover) (V, error)) Source[V] {
	return Source[V]{Compute: fn}
}

// FromRequest is the Source resolving through the handler stack only.
func FromRequest[V any](req Request) Source[V] {
	return Source[V]{Request: req}
}

// Const is the Source resolving to a fixed value.
func Const[V any](v V) Source[V] {
	return Source[V]{Compute: func(*Prover) (V, error) { return v, nil }}
}

// Exists allocates a value existentially. In an allocation-only walk it
// allocates the layout and never consults src; in a concrete-assignment
// walk it resolves a value through src and stores it. In both modes the
// Typ's validity constraints are then emitted at the same point, keeping
// the walks in lockstep.
func Exists[V, W any](r *Run, t Typ[V, W], src Source[V]) (W, error) {
	var w W
	if r.mode == ModeSetup {
		w = t.Alloc(r)
	} else {
		v, err := resolve(r, src)
		if err != nil {
			return w, err
		}
		w, err = t.Store(r, v)
		if err != nil {
			return w, err
		}
	}
	if err := t.Check(r, w); err != nil {
		return w, err
	}
	return w, nil
}

// ExistsField is Exists specialized to a single field element.
func ExistsField(r *Run, src Source[field.Element]) (expr.LinearCombination, error) {
	return Exists(r, FieldTyp(), src)
}

func resolve[V any](r *Run, src Source[V]) (V, error) {
	var zero V
	if src.Request != nil {
		if v, ok := dispatch[V](r, src.Request); ok {
			return v, nil
		}
	}
	if src.Compute != nil {
		return src.Compute(&Prover{run: r})
	}
	if src.Request != nil {
		return zero, fmt.Errorf("%w: %s", ErrUnhandledRequest, src.Request.RequestName())
	}
	return zero, ErrUnhandledRequest
}
