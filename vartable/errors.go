package vartable

import "errors"

// Sentinel errors for the vartable package. Callers MUST use errors.Is to
// branch on semantics; messages are never stringified into callers' logic.

// ErrTooManyVariables indicates the universe already holds MaxVariables
// distinct identifiers and a new one was requested. Soft error (resource
// cap): clings to the first occurrence per line, per spec error discipline.
var ErrTooManyVariables = errors.New("vartable: too many variables")

// ErrIdentifierTooLong indicates a variable name longer than MaxNameLength.
var ErrIdentifierTooLong = errors.New("vartable: identifier too long")

// ErrNoNewVariables is a hard error: raised when ArmNoNew is active and an
// identifier not already interned is requested (used while parsing a macro
// body, where only the declared parameters may be used as variables).
var ErrNoNewVariables = errors.New("vartable: only macro arguments can be used")

// ErrEmptyIdentifier indicates an attempt to intern the empty string.
var ErrEmptyIdentifier = errors.New("vartable: empty identifier")
