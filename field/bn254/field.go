// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

// Package bn254 binds the engine's field capability set to the BN254 scalar
// field, and its pairing capability to the BN254 curve.
package bn254

import (
	"fmt"
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/Firobe/snarky/field"
)

type scalarField struct{}

// New returns the BN254 scalar field. The returned value also implements
// field.Pairing.
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
		panic(fmt.Sprintf("bn254: cannot convert %T to field element: %v", i, err))
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

// pairing capability

func (scalarField) MillerLoop(g1s, g2s []any) (any, error) {
	if len(g1s) != len(g2s) {
		return nil, fmt.Errorf("bn254: miller loop expects paired slices, got %d and %d", len(g1s), len(g2s))
	}
	ps := make([]curve.G1Affine, len(g1s))
	qs := make([]curve.G2Affine, len(g2s))
	for i := range g1s {
		p, ok := g1s[i].(curve.G1Affine)
		if !ok {
			return nil, fmt.Errorf("bn254: g1 handle %d has type %T", i, g1s[i])
		}
		q, ok := g2s[i].(curve.G2Affine)
		if !ok {
			return nil, fmt.Errorf("bn254: g2 handle %d has type %T", i, g2s[i])
		}
		ps[i], qs[i] = p, q
	}
	return curve.MillerLoop(ps, qs)
}

func (scalarField) FinalExponentiation(gt any) any {
	z := gt.(curve.GT)
	return curve.FinalExponentiation(&z)
}

func (scalarField) GTIsOne(gt any) bool {
	z := gt.(curve.GT)
	var one curve.GT
	one.SetOne()
	return z.Equal(&one)
}
