// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

// Package field defines the backend capability set the engine is compiled
// against: a finite-field arithmetic contract and, for verifier-style
// consumers, curve pairing primitives. Concrete bindings live in
// subpackages (bn254, bls12381) and are the only code that knows which
// curve is plugged in.
package field

import (
	"math/big"

	"golang.org/x/exp/constraints"
)

// Element is an opaque field element, stored on 4 uint64 limbs in the
// binding's internal representation. Elements are only meaningful to the
// Field that produced them; mixing elements across bindings is undefined.
type Element [4]uint64

// IsZero returns true if the element is the additive identity. The zero
// Element is the additive identity in every binding.
func (z Element) IsZero() bool {
	return (z[3] | z[2] | z[1] | z[0]) == 0
}

// Field is the arithmetic capability set consumed by the engine.
//
// All operations are modular with respect to Modulus; results wrap by
// reduction, which is the intended behavior everywhere an explicit bound
// precondition is not documented.
type Field interface {
	// FromInterface coerces a Go value (integers, strings, big.Int,
	// Element, ...) into an Element. It panics on unsupported kinds;
	// callers validating untrusted positional inputs must type-check
	// before conversion.
	FromInterface(interface{}) Element
	ToBigInt(Element) *big.Int
	FromBigInt(*big.Int) Element

	Add(a, b Element) Element
	Sub(a, b Element) Element
	Mul(a, b Element) Element
	Neg(a Element) Element
	// Inverse returns (1/a, true), or (0, false) if a == 0.
	Inverse(a Element) (Element, bool)
	// Sqrt returns (√a, true), or (0, false) if a is not a quadratic residue.
	Sqrt(a Element) (Element, bool)

	One() Element
	IsOne(Element) bool
	// Uint64 returns the canonical value of a if it fits in a uint64.
	Uint64(Element) (uint64, bool)
	String(Element) string

	Modulus() *big.Int
	// BitLen is the size of the field in bits (bit length of the modulus).
	BitLen() int
}

// Pairing is the optional curve capability used by proof-verification
// consumers built on top of the engine. Group handles are opaque values
// owned by the binding; passing handles from another binding panics.
type Pairing interface {
	// MillerLoop computes the product of Miller loops over the paired
	// G1/G2 handle slices.
	MillerLoop(g1s, g2s []any) (any, error)
	FinalExponentiation(gt any) any
	// GTIsOne reports whether a target-group handle is the identity.
	GTIsOne(gt any) bool
}

// FromInteger converts any Go integer to an Element, mapping negative
// values to their additive inverse mod the field modulus.
func FromInteger[T constraints.Integer](f Field, v T) Element {
	if v < 0 {
		return f.Neg(f.FromInterface(uint64(-v)))
	}
	return f.FromInterface(uint64(v))
}

// Two returns 2 as an Element.
func Two(f Field) Element {
	one := f.One()
	return f.Add(one, one)
}
