// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked

import (
	"fmt"
)

// Descriptor is a type-erased Typ, used to describe positional public
// inputs. Every Typ[V, W] is a Descriptor; values cross the erased boundary
// as `any` and are validated positionally at store time.
type Descriptor interface {
	// SizeInFields is the descriptor's field-element footprint.
	SizeInFields() int

	allocAny(r *Run) any
	storeAny(r *Run, v any) (any, error)
	checkAny(r *Run, w any) error
}

// Spec is the ordered sequence of descriptors for a computation's public
// inputs. It is immutable once a computation description is in use: all
// walks of the description must see the same Spec.
type Spec []Descriptor

// SizeInFields is the total public-input footprint.
func (s Spec) SizeInFields() int {
	n := 0
	for _, d := range s {
		n += d.SizeInFields()
	}
	return n
}

// SizeInFields implements Descriptor.
func (t Typ[V, W]) SizeInFields() int { return t.Size }

func (t Typ[V, W]) allocAny(r *Run) any { return t.Alloc(r) }

func (t Typ[V, W]) storeAny(r *Run, v any) (any, error) {
	tv, ok := v.(V)
	if !ok {
		return nil, structuralMismatchf("public input has type %T, descriptor expects %s", v, typeName[V]())
	}
	return t.Store(r, tv)
}

func (t Typ[V, W]) checkAny(r *Run, w any) error {
	tw, ok := w.(W)
	if !ok {
		return structuralMismatchf("layout has type %T, descriptor expects %s", w, typeName[W]())
	}
	return t.Check(r, tw)
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
