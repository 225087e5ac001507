// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package constraint

import (
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/Firobe/snarky/expr"
)

// The digest hashes a canonical encoding of the system: constraint kinds and
// topology plus canonical (non-Montgomery) coefficient bytes, in emission
// order. Labels are diagnostics and are excluded, so relabeling a circuit
// keeps its digest.

type encTerm struct {
	Coeff []byte `cbor:"1,keyasint"`
	VID   int64  `cbor:"2,keyasint"`
}

type encLC struct {
	Constant []byte    `cbor:"1,keyasint"`
	Terms    []encTerm `cbor:"2,keyasint"`
}

type encConstraint struct {
	Kind uint8 `cbor:"1,keyasint"`
	A    encLC `cbor:"2,keyasint"`
	B    encLC `cbor:"3,keyasint"`
	C    encLC `cbor:"4,keyasint"`
}

type encSystem struct {
	Modulus     []byte          `cbor:"1,keyasint"`
	NbPublic    int64           `cbor:"2,keyasint"`
	NbAuxiliary int64           `cbor:"3,keyasint"`
	Constraints []encConstraint `cbor:"4,keyasint"`
}

// Digest returns a content hash of the system's structure: identical across
// rebuilds of the same computation description, different (with overwhelming
// probability) if any coefficient or the constraint topology changes.
func (s *System) Digest() ([32]byte, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return [32]byte{}, err
	}

	body := encSystem{
		Modulus:     s.f.Modulus().Bytes(),
		NbPublic:    int64(s.nbPublic),
		NbAuxiliary: int64(s.nbAuxiliary),
		Constraints: make([]encConstraint, len(s.constraints)),
	}
	for i, c := range s.constraints {
		body.Constraints[i] = encConstraint{
			Kind: uint8(c.Kind),
			A:    s.encodeLC(c.A),
			B:    s.encodeLC(c.B),
			C:    s.encodeLC(c.C),
		}
	}

	buf, err := enc.Marshal(&body)
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(buf), nil
}

func (s *System) encodeLC(l expr.LinearCombination) encLC {
	res := encLC{
		Constant: s.f.ToBigInt(l.Constant).Bytes(),
		Terms:    make([]encTerm, len(l.Terms)),
	}
	for i, t := range l.Terms {
		res.Terms[i] = encTerm{
			Coeff: s.f.ToBigInt(t.Coeff).Bytes(),
			VID:   int64(t.VID),
		}
	}
	return res
}
