// Package exprstore accumulates, normalises, and pretty-prints linear
// combinations of joint entropies, realizing spec component C3.
//
// An Expr is a Kind tag plus an ordered slice of Term{Subset, Coeff} pairs,
// deduplicated on Subset during accumulation (Add/Sub locate-or-insert by
// linear search, which is the teacher's own bench_test-validated approach
// for small collections rather than a hash map — term counts are capped at
// MaxTerms and dominated by the LP build afterwards, so the O(n) locate
// cost never matters in practice).
//
// Floating-point simplification uses a symmetric epsilon of 1.5e-10
// (Epsilon): this is part of the contract, not an implementation detail —
// coefficients round-trip through an LP solver and users expect "almost
// zero" to vanish on print. Do not tighten it.
package exprstore
