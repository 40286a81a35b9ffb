// Package parser implements the back-tracking recursive-descent grammar
// for minitip's two surface syntaxes, realizing spec components C2
// (lexer/position), C5 (expression parser), C6 (constraint parser), and
// C7 (macro-definition parser).
//
// Grammar rules are expressed as methods on *Parser — a type threading
// explicit state (cursor position, first-error latch, the active
// vartable.Table and macro.Catalogue) rather than hidden mutable globals,
// per the teacher's no-package-globals discipline (builderConfig is
// always constructed and passed, never stored in a package var; see
// builder/config.go). Back-tracking is cheap save/restore of a single int
// cursor position (the unexported cursor mark/reset), matching spec.md §9's
// guidance to prefer explicit state threading for this family of parser.
//
// Two error families coexist, both "first occurrence wins": HardError
// (syntax — caught via errors.As) and the soft sentinel errors passed through
// unchanged from exprstore/vartable/macro (resource caps). Parser.Fail and
// Parser.FailSoft both write once to the same latch.
package parser
