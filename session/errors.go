package session

import "errors"

// ErrAmbiguousSeparator indicates an attempt to select a compact-style
// separator character that is also a decimal digit while simplevar is
// "extended" (spec.md §9 Open Question): with extended identifiers such
// as "a123" in force, a digit-like separator could be swallowed into the
// preceding identifier instead of terminating it. Rather than guess at
// the original's intended behaviour, minitip refuses the combination.
var ErrAmbiguousSeparator = errors.New("session: separator character is ambiguous with simplevar=extended")

// ErrUnknownSetting indicates a "set name=value" referencing a runtime
// parameter name not in the documented surface.
var ErrUnknownSetting = errors.New("session: unknown setting")

// ErrBadSettingValue indicates a "set name=value" whose value is out of
// the parameter's documented range or of the wrong shape.
var ErrBadSettingValue = errors.New("session: setting value out of range")

// ErrNoSuchConstraint indicates a "del n" referencing a constraint-table
// index that does not exist.
var ErrNoSuchConstraint = errors.New("session: no such constraint")

// ErrTooManyConstraints is a soft (resource) cap on the constraint table,
// mirroring macro.ErrTooManyMacros for the sibling resource.
var ErrTooManyConstraints = errors.New("session: too many constraints")

// ErrRunFileTooDeep indicates nested "run FILE" commands exceeded the
// depth cap (spec.md §7 "nested-depth exceeded, which cap out at 5").
var ErrRunFileTooDeep = errors.New("session: run file nesting too deep")

// ErrRunLineTooLong indicates a line read from a run file exceeded the
// fatal length cap (spec.md §7).
var ErrRunLineTooLong = errors.New("session: run file line too long")

// ErrNoSuchMacroHead names the case of a "macro delete Name(...)" whose
// header does not match any catalogue entry. DeleteMacro reports that case
// with the parser's own ErrMacroNotFound; no function in this package
// returns ErrNoSuchMacroHead.
var ErrNoSuchMacroHead = errors.New("session: no macro with this name and shape")
