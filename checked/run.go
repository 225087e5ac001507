// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

// Package checked implements the checked-computation engine: a computation
// description is an ordinary Go function over a *Run, replayed once per
// execution mode. An allocation-only walk collects constraints into a
// system; a concrete-assignment walk additionally records a value for every
// allocated variable and can evaluate constraints in-line. Both walks must
// visit every allocation, branch and constraint-emission point in the same
// order, so that variable index i denotes the same quantity in both; the
// package API is arranged so that well-typed programs keep this invariant.
package checked

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"

	"github.com/Firobe/snarky/constraint"
	"github.com/Firobe/snarky/debug"
	"github.com/Firobe/snarky/expr"
	"github.com/Firobe/snarky/field"
	"github.com/Firobe/snarky/logger"
)

// Mode discriminates the two walk interpretations of a computation
// description.
type Mode uint8

const (
	// ModeSetup is the allocation-only walk: variables carry no values and
	// emitted constraints are collected into a constraint.System.
	ModeSetup Mode = iota + 1
	// ModeProver is the concrete-assignment walk: every allocation records
	// a field value, and constraints are optionally evaluated in-line.
	ModeProver
)

// Run is the state threaded through one walk of a computation description:
// next variable index, the constraint sink or assignment table depending on
// mode, and the active handler and label stacks. A Run is owned exclusively
// by its walk; it must not be retained past it or shared between walks.
type Run struct {
	f    field.Field
	mode Mode

	next     int // next variable index
	nbPublic int

	sys *constraint.System // ModeSetup only

	values   []field.Element // ModeProver only, indexed by variable
	assigned *bitset.BitSet  // ModeProver only
	evaluate bool            // ModeProver: evaluate constraints as they are emitted

	handlers []Handler
	labels   []string
	deferred []forceable

	nbConstraints int // constraints emitted, all modes

	log zerolog.Logger
}

func newRun(f field.Field, mode Mode, evaluate bool) *Run {
	r := &Run{
		f:        f,
		mode:     mode,
		evaluate: evaluate,
		log:      logger.Logger("checked"),
	}
	if mode == ModeSetup {
		r.sys = constraint.NewSystem(f)
	} else {
		r.assigned = bitset.New(64)
	}
	return r
}

// Field returns the field this walk computes over.
func (r *Run) Field() field.Field { return r.f }

// Mode returns the walk mode.
func (r *Run) Mode() Mode { return r.mode }

// IsProver reports whether this is a concrete-assignment walk.
func (r *Run) IsProver() bool { return r.mode == ModeProver }

// One returns the constant combination 1.
func (r *Run) One() expr.LinearCombination {
	return expr.NewConstant(r.f.One())
}

// Constant coerces a Go value into a constant combination. It panics on
// kinds the field cannot convert, like field.Field.FromInterface.
func (r *Run) Constant(v interface{}) expr.LinearCombination {
	return expr.NewConstant(r.f.FromInterface(v))
}

// alloc reserves the next variable index.
func (r *Run) alloc() expr.Variable {
	v := expr.Variable(r.next)
	r.next++
	return v
}

// assign records the value of v. Valid only in prover walks. Assignment is
// index-addressed: a bare Alloc leaves a hole behind, later assignments
// land past it, and the walk fails at the end if any hole remains.
func (r *Run) assign(v expr.Variable, val field.Element) {
	if r.mode != ModeProver {
		panic("checked: value assignment during an allocation-only walk")
	}
	for len(r.values) <= int(v) {
		r.values = append(r.values, field.Element{})
	}
	r.values[v] = val
	r.assigned.Set(uint(v))
}

// nbAssigned counts the variables holding a value.
func (r *Run) nbAssigned() int {
	return int(r.assigned.Count())
}

// valueOf resolves a variable against the assignment table.
func (r *Run) valueOf(v expr.Variable) (field.Element, error) {
	if r.mode != ModeProver {
		panic("checked: value read during an allocation-only walk")
	}
	if int(v) >= len(r.values) || !r.assigned.Test(uint(v)) {
		return field.Element{}, fmt.Errorf("checked: variable v%d has no value", v)
	}
	return r.values[v], nil
}

// Assert emits one constraint. In an allocation-only walk it is appended to
// the system under construction; in a checking walk its equation is
// evaluated against the assignment and a violation surfaces as
// *UnsatisfiedConstraintError.
func (r *Run) Assert(c constraint.Constraint) error {
	if scope := r.scopeLabel(); scope != "" {
		if c.Label == "" {
			c.Label = scope
		} else {
			c.Label = scope + "/" + c.Label
		}
	}
	if debug.Debug && c.Label == "" {
		c.Label = debug.Stack()
	}
	if hook := currentHook(); hook != nil {
		hook(c)
	}
	r.nbConstraints++

	if r.mode == ModeSetup {
		return r.sys.AddConstraint(c)
	}
	if !r.evaluate {
		return nil
	}
	ok, err := c.Satisfied(r.f, r.valueOf)
	if err != nil {
		return err
	}
	if !ok {
		return &UnsatisfiedConstraintError{Constraint: c, Label: c.Label}
	}
	return nil
}

// AssertAll emits constraints in order, stopping at the first failure.
func (r *Run) AssertAll(cs ...constraint.Constraint) error {
	for _, c := range cs {
		if err := r.Assert(c); err != nil {
			return err
		}
	}
	return nil
}

// AssertEqual emits x = y.
func (r *Run) AssertEqual(x, y expr.LinearCombination) error {
	return r.Assert(constraint.NewEqual(x, y))
}

// AssertR1C emits a·b = c.
func (r *Run) AssertR1C(a, b, c expr.LinearCombination) error {
	return r.Assert(constraint.NewR1C(a, b, c))
}

// AssertSquare emits x·x = y.
func (r *Run) AssertSquare(x, y expr.LinearCombination) error {
	return r.Assert(constraint.NewSquare(x, y))
}

// AssertBoolean emits x·x = x.
func (r *Run) AssertBoolean(x expr.LinearCombination) error {
	return r.Assert(constraint.NewBoolean(x))
}

// WithLabel pushes a diagnostic label for the extent of body; labels nest
// and are joined with '/' on emitted constraints.
func (r *Run) WithLabel(label string, body func() error) error {
	r.labels = append(r.labels, label)
	defer func() {
		r.labels = r.labels[:len(r.labels)-1]
	}()
	return body()
}

func (r *Run) scopeLabel() string {
	if len(r.labels) == 0 {
		return ""
	}
	return strings.Join(r.labels, "/")
}

// settle forces every deferred computation that was not forced during the
// walk, in registration order. It runs in every mode, so a thunk forced in
// one walk cannot stay unforced in another.
func (r *Run) settle() error {
	for i := 0; i < len(r.deferred); i++ {
		if err := r.deferred[i].force(); err != nil {
			return err
		}
	}
	return nil
}
