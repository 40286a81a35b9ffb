// Command minitip is an interactive proof assistant for Shannon-type
// information inequalities.
//
// Given an entropy expression over a handful of random variables and an
// optional set of constraints (functional dependencies, independence
// statements, or arbitrary linear relations among entropies), minitip
// decides whether the expression follows from the elemental Shannon
// inequalities conjoined with the constraints, by building and solving a
// linear program over the entropy region.
//
// The library is organized as:
//
//	vartable/   — interning of variable names into bitmask subsets
//	exprstore/  — entropy expressions as sparse term vectors
//	macro/      — user-definable named expression shorthands (plus the
//	              built-in H/I entropy and mutual-information macros)
//	parser/     — recursive-descent parsing of expressions, constraints
//	              and macro definitions, in full and compact styles
//	compact/    — pre-LP variable compaction for always-co-occurring sets
//	lp/         — LP construction and the feasibility decision procedure
//	session/    — orchestration of one interactive run (spec.md §9's
//	              "global-ish mutable state", as explicit struct fields)
//	cmd/minitip/ — the CLI entry point and readline-backed REPL
package minitip
