// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

// Package bls12381 binds the engine's field capability set to the BLS12-381
// scalar field.
package bls12381

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/Firobe/snarky/field"
)

type scalarField struct{}

// New returns the BLS12-381 scalar field.
func New() field.Field {
	return scalarField{}
}

func toFr(e field.Element) fr.Element   { return fr.Element(e) }
func fromFr(e fr.Element) field.Element { return field.Element(e) }

func (scalarField) FromInterface(i interface{}) field.Element {
	if e, ok := i.(field.Element); ok {
		return e
	}
	var z fr.Element
	if _, err := z.SetInterface(i); err != nil {
		panic(fmt.Sprintf("bls12381: cannot convert %T to field element: %v", i, err))
	}
	return fromFr(z)
}

func (scalarField) ToBigInt(a field.Element) *big.Int {
	z := toFr(a)
	res := new(big.Int)
	z.BigInt(res)
	return res
}

func (scalarField) FromBigInt(b *big.Int) field.Element {
	var z fr.Element
	z.SetBigInt(b)
	return fromFr(z)
}

func (scalarField) Add(a, b field.Element) field.Element {
	x, y := toFr(a), toFr(b)
	var z fr.Element
	z.Add(&x, &y)
	return fromFr(z)
}

func (scalarField) Sub(a, b field.Element) field.Element {
	x, y := toFr(a), toFr(b)
	var z fr.Element
	z.Sub(&x, &y)
	return fromFr(z)
}

func (scalarField) Mul(a, b field.Element) field.Element {
	x, y := toFr(a), toFr(b)
	var z fr.Element
	z.Mul(&x, &y)
	return fromFr(z)
}

func (scalarField) Neg(a field.Element) field.Element {
	x := toFr(a)
	var z fr.Element
	z.Neg(&x)
	return fromFr(z)
}

func (scalarField) Inverse(a field.Element) (field.Element, bool) {
	x := toFr(a)
	if x.IsZero() {
		return field.Element{}, false
	}
	var z fr.Element
	z.Inverse(&x)
	return fromFr(z), true
}

func (scalarField) Sqrt(a field.Element) (field.Element, bool) {
	x := toFr(a)
	var z fr.Element
	if z.Sqrt(&x) == nil {
		return field.Element{}, false
	}
	return fromFr(z), true
}

func (scalarField) One() field.Element {
	var z fr.Element
	z.SetOne()
	return fromFr(z)
}

func (scalarField) IsOne(a field.Element) bool {
	z := toFr(a)
	return z.IsOne()
}

func (scalarField) Uint64(a field.Element) (uint64, bool) {
	z := toFr(a)
	if !z.IsUint64() {
		return 0, false
	}
	return z.Uint64(), true
}

func (scalarField) String(a field.Element) string {
	z := toFr(a)
	return z.String()
}

func (scalarField) Modulus() *big.Int {
	return fr.Modulus()
}

func (scalarField) BitLen() int {
	return fr.Bits
}
