// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package constraint

import (
	"encoding/json"
	"io"

	"github.com/Firobe/snarky/expr"
)

// The JSON dump is a structural debugging format: each constraint is its
// kind plus the operands it uses, an operand being a constant and a list of
// [coefficient, variable_index] pairs. It is not guaranteed stable across
// versions and must not be used as an interchange format.

type jsonTerm struct {
	coeff string
	vid   int
}

func (t jsonTerm) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{t.coeff, t.vid})
}

type jsonLC struct {
	Constant string     `json:"constant"`
	Terms    []jsonTerm `json:"terms"`
}

type jsonConstraint struct {
	Kind  string  `json:"kind"`
	Label string  `json:"label,omitempty"`
	A     *jsonLC `json:"a,omitempty"`
	B     *jsonLC `json:"b,omitempty"`
	C     *jsonLC `json:"c,omitempty"`
}

type jsonSystem struct {
	NbPublic    int              `json:"nbPublic"`
	NbAuxiliary int              `json:"nbAuxiliary"`
	Constraints []jsonConstraint `json:"constraints"`
}

// MarshalJSON implements json.Marshaler.
func (s *System) MarshalJSON() ([]byte, error) {
	body := jsonSystem{
		NbPublic:    s.nbPublic,
		NbAuxiliary: s.nbAuxiliary,
		Constraints: make([]jsonConstraint, len(s.constraints)),
	}
	for i, c := range s.constraints {
		jc := jsonConstraint{
			Kind:  c.Kind.String(),
			Label: c.Label,
		}
		switch c.Kind {
		case KindBoolean:
			jc.A = s.jsonLC(c.A)
		case KindEqual:
			jc.A = s.jsonLC(c.A)
			jc.B = s.jsonLC(c.B)
		case KindR1C:
			jc.A = s.jsonLC(c.A)
			jc.B = s.jsonLC(c.B)
			jc.C = s.jsonLC(c.C)
		case KindSquare:
			jc.A = s.jsonLC(c.A)
			jc.C = s.jsonLC(c.C)
		}
		body.Constraints[i] = jc
	}
	return json.Marshal(&body)
}

// WriteJSON dumps the system to w.
func (s *System) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func (s *System) jsonLC(l expr.LinearCombination) *jsonLC {
	res := &jsonLC{
		Constant: s.f.ToBigInt(l.Constant).String(),
		Terms:    make([]jsonTerm, len(l.Terms)),
	}
	for i, t := range l.Terms {
		res.Terms[i] = jsonTerm{
			coeff: s.f.ToBigInt(t.Coeff).String(),
			vid:   int(t.VID),
		}
	}
	return res
}
