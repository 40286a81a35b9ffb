// Package macro stores, looks up, and expands named parameterised linear
// combinations of entropies, realizing spec component C4.
//
// A macro's identity is the triple (name, arity, signature): the same
// letter can name several macros of different arity or different
// separator shape (e.g. a user A(x|y) alongside a user A(x,y,z)), so
// lookup during invocation parsing must be able to answer "which macros
// named A are still consistent with what I've parsed so far" — see
// Catalogue.Candidates, used by the parser package between arguments to
// decide whether the next separator can legally be ')', the list
// separator, or '|'.
//
// Four standard macros — H(a), H(a|b), I(a;b), I(a;b|c) — are installed
// by New and are undeletable; their names ("H" and "I") can never be
// redefined, matching the teacher's standard-item shadowing idiom (see
// builder's standard alphabet in letters_spec.go for the analogous
// "fixed vocabulary the catalogue always knows about" pattern).
package macro
