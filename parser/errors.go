package parser

import (
	"errors"
	"fmt"
)

// HardError is a syntax error: a message plus the cursor position it was
// raised at. The top level renders this as the message followed by an
// underline "----^" pointing at Pos.
type HardError struct {
	Msg     string
	Pos     int
	wrapped error
}

func (e *HardError) Error() string {
	return e.Msg
}

// Unwrap exposes the sentinel latched via FailSentinel, if any, so
// errors.Is(err, ErrEmpty) and friends work against the returned error.
func (e *HardError) Unwrap() error {
	return e.wrapped
}

// Sentinel hard errors for grammar-shape violations (spec.md §4.5 "Termination checks").
var (
	// ErrEmpty indicates no term was parsed at all.
	ErrEmpty = errors.New("parser: empty expression")
	// ErrNoRelation indicates a mode that requires a relation found none.
	ErrNoRelation = errors.New("parser: no relation found")
	// ErrNoRHS indicates a relation was seen but nothing followed it.
	ErrNoRHS = errors.New("parser: right-hand side is empty")
	// ErrAllZero indicates no term was ever accumulated at all (every
	// coefficient in the input was literally zero) — not an expression
	// that algebraically cancels to zero after accumulation, which is
	// instead reported as a trivial "simplifies to 0=0"/"0<=0" outcome.
	ErrAllZero = errors.New("parser: all coefficients are zero")
	// ErrOnlyOneRelation indicates a second relation symbol in one expression.
	ErrOnlyOneRelation = errors.New("parser: only one relation allowed")
	// ErrExpectedSign indicates a term after the first in a side lacked an explicit sign.
	ErrExpectedSign = errors.New("parser: expected '+' or '-'")
	// ErrExpectedAtom indicates no recognised atomic entropy form was found.
	ErrExpectedAtom = errors.New("parser: expected an entropy term")
	ErrExpectedChar = errors.New("parser: unexpected character")
	// ErrUnknownMacro names the case of no macro matching an invocation's name
	// and shape; invocation parsing reports that case as ErrBadMacroCall.
	ErrUnknownMacro = errors.New("parser: no macro with this name and shape")
	ErrBadMacroCall = errors.New("parser: macro arguments do not match any definition")
	// ErrNotHomogeneous indicates a nonzero constant stood next to a relation sign.
	ErrNotHomogeneous = errors.New("parser: constant before or after the relation sign must be zero")
	// ErrBadMultiply indicates a '*' appeared somewhere other than between a constant and a term.
	ErrBadMultiply = errors.New("parser: '*' at a wrong place")
	// ErrExtraText indicates trailing input survived after a complete parse.
	ErrExtraText = errors.New("parser: extra characters at the end")
	// ErrUseDiffEq indicates a diff (zap) expression used something other than '=='.
	ErrUseDiffEq = errors.New("parser: use '==' to separate the expressions")
	// ErrUseRelEq indicates a checkable expression used '==' instead of '=', '<=', or '>='.
	ErrUseRelEq = errors.New("parser: use '=', '<=', or '>=' to separate the two sides")
	// ErrRelationInMacro indicates a relation symbol appeared in a macro definition body.
	ErrRelationInMacro = errors.New("parser: no relation is allowed in a macro definition")
	// ErrBareGreater indicates a '>' not immediately followed by '='.
	ErrBareGreater = errors.New("parser: '>' symbol should be followed by '='")
	// ErrBareLess indicates a '<' not immediately followed by '='.
	ErrBareLess = errors.New("parser: '<' symbol should be followed by '='")
)

// Outcome classifies a successful parse beyond plain OK, mirroring the
// PARSE_OK/PARSE_EQ/PARSE_GE taxonomy of spec.md §4.5.
type Outcome int

const (
	// OutcomeOK is a regular, checkable expression.
	OutcomeOK Outcome = iota
	// OutcomeTrivialEqZero: the expression collapsed to "0=0".
	OutcomeTrivialEqZero
	// OutcomeTrivialGeZero: the expression collapsed to "0<=0".
	OutcomeTrivialGeZero
	// OutcomePositiveCombination: a KindGe expression whose surviving
	// coefficients are all non-negative — TRUE without invoking the LP.
	OutcomePositiveCombination
	// OutcomeSingleTerm: exactly one term survived; no check performed.
	OutcomeSingleTerm
)

// Fail latches msg/pos as the parser's hard error if none is recorded
// yet, and always returns that latched error (first cursor is most
// informative, per spec.md §7).
func (p *Parser) Fail(msg string) error {
	if p.err == nil {
		p.err = &HardError{Msg: msg, Pos: p.cur.pos}
	}
	return p.err
}

// Failf is Fail with fmt.Sprintf formatting.
func (p *Parser) Failf(format string, args ...interface{}) error {
	return p.Fail(fmt.Sprintf(format, args...))
}

// FailSentinel latches one of the package's grammar-shape sentinels
// (ErrEmpty, ErrNoRelation, ...) as a hard error at the current cursor
// position. Unlike Fail, the result unwraps to sentinel, so callers can
// still errors.Is against it.
func (p *Parser) FailSentinel(sentinel error) error {
	if p.err == nil {
		p.err = &HardError{Msg: sentinel.Error(), Pos: p.cur.pos, wrapped: sentinel}
	}
	return p.err
}

// FailSoft latches a soft (resource) sentinel error if none is recorded
// yet, and always returns the latched error.
func (p *Parser) FailSoft(err error) error {
	if p.err == nil {
		p.err = err
	}
	return p.err
}

// Err returns the first error latched on this parser, or nil.
func (p *Parser) Err() error {
	return p.err
}
