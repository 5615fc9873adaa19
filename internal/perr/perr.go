// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package perr defines the closed set of fatal error kinds shared by every
// analysis entry point in this module. NotConverged and Cancelled are not
// represented here: those are non-fatal outcomes carried on the result
// record itself (Converged=false), never returned as an error.
package perr

import "fmt"

// Kind is one of the fatal error categories from the error handling design.
type Kind int

const (
	// InvalidInput marks a missing or non-physical input caught during
	// validation, before any solve begins.
	InvalidInput Kind = iota

	// DegenerateGeometry marks an embedment too short to discretise, or a
	// discretisation producing fewer than four nodes.
	DegenerateGeometry

	// Singular marks a banded or dense system that could not be factored
	// (EI=0 and k=0 everywhere is the common cause).
	Singular
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case DegenerateGeometry:
		return "DegenerateGeometry"
	case Singular:
		return "Singular"
	default:
		return "Unknown"
	}
}

// Error is the fatal error type returned by every entry point in this
// module. It carries a Kind so callers can discriminate with errors.As
// instead of parsing message text.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New builds an *Error of the given kind with a formatted message, in the
// style of gosl/chk.Err.
func New(kind Kind, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...)}
}

// Invalid is a shorthand for New(InvalidInput, ...).
func Invalid(msg string, args ...interface{}) *Error {
	return New(InvalidInput, msg, args...)
}

// Degenerate is a shorthand for New(DegenerateGeometry, ...).
func Degenerate(msg string, args ...interface{}) *Error {
	return New(DegenerateGeometry, msg, args...)
}

// SingularErr is a shorthand for New(Singular, ...).
func SingularErr(msg string, args ...interface{}) *Error {
	return New(Singular, msg, args...)
}
