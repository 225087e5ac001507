// Copyright 2023-2026 The snarky authors
// SPDX-License-Identifier: Apache-2.0

// Package logger provides the process-wide logger snarky components write
// to, built on github.com/rs/zerolog. Each component obtains a sublogger
// tagged with its name; the root logger is replaceable and is a nop under
// `go test` unless the debug build tag is set.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Firobe/snarky/debug"
)

var root zerolog.Logger

func init() {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	root = zerolog.New(w).With().Timestamp().Logger()

	if !debug.Debug && strings.HasSuffix(os.Args[0], ".test") {
		root = zerolog.Nop()
	}
}

// Logger returns a sublogger tagged with the component name.
func Logger(component string) zerolog.Logger {
	return root.With().Str("component", component).Logger()
}

// Set replaces the root logger; subloggers handed out afterwards derive
// from l.
func Set(l zerolog.Logger) {
	root = l
}

// SetOutput redirects the root logger's output.
func SetOutput(w io.Writer) {
	root = root.Output(w)
}

// Disable turns logging off process-wide.
func Disable() {
	root = zerolog.Nop()
}
