// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

package checked

import (
	"errors"
)

// Request is a typed query for an out-of-band witness value, answered by
// the handler stack during a concrete-assignment walk. Concrete request
// types carry their own parameters; handlers recover them by type switch.
type Request interface {
	// RequestName identifies the request kind in diagnostics.
	RequestName() string
}

// Handler answers a Request with a value of the type the requesting Exists
// expects. Returning ErrDeclined (or any error) counts as a miss and the
// request falls through to the next handler, then to the Compute fallback.
type Handler func(Request) (any, error)

// Handle pushes h on the handler stack for the dynamic extent of body.
// The most recently installed handler is offered requests first.
func (r *Run) Handle(h Handler, body func() error) error {
	r.handlers = append(r.handlers, h)
	defer func() {
		r.handlers = r.handlers[:len(r.handlers)-1]
	}()
	return body()
}

// HandleAsProver is Handle with a handler built with concrete-value access.
// In an allocation-only walk the constructor never runs and body executes
// without the handler, keeping walk shape identical across modes.
func (r *Run) HandleAsProver(mk func(*Prover) (Handler, error), body func() error) error {
	if r.mode != ModeProver {
		return body()
	}
	h, err := mk(&Prover{run: r})
	if err != nil {
		return err
	}
	return r.Handle(h, body)
}

// dispatch offers req to the stack, most recent first. Any handler error is
// a miss, and so is an answer of the wrong dynamic type: both fall through
// to the next handler down. Non-decline misses are logged for diagnosis.
func dispatch[V any](r *Run, req Request) (V, bool) {
	var zero V
	for i := len(r.handlers) - 1; i >= 0; i-- {
		ans, err := r.handlers[i](req)
		if err != nil {
			if !errors.Is(err, ErrDeclined) {
				r.log.Debug().Str("request", req.RequestName()).Err(err).Msg("handler failed, treating as miss")
			}
			continue
		}
		if v, ok := ans.(V); ok {
			return v, true
		}
		r.log.Debug().Str("request", req.RequestName()).
			Msgf("handler answered with %T, treating as miss", ans)
	}
	return zero, false
}
