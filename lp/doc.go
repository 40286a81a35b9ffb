// Package lp implements spec component C9: translating a compacted goal
// expression and its active constraints into a Farkas-style feasibility
// linear program — is the goal's row vector expressible as a combination
// of the elemental Shannon inequalities, the monotonicity inequalities,
// and the constraint rows? — and interpreting the external solver's
// verdict per spec.md §4.9's OPT/NOFEAS table.
package lp
