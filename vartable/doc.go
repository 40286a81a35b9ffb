// Package vartable interns random-variable identifiers and maps each to a
// single bit in a machine word.
//
// A variable universe never exceeds MaxVariables members (27): the count
// of elemental Shannon inequalities grows as n(n-1)*2^(n-3), so the cap is
// simultaneously a semantic and a memory bound, not an arbitrary limit.
// Masks are a Mask newtype around uint32 with named set operations
// (Union, Contains, PopCount, SubsetOf) rather than bare integers, so
// callers never confuse a variable index with a variable mask.
//
// Table is not safe for concurrent use: minitip is single-threaded at the
// session level (see the session package), unlike the teacher's core.Graph
// which is deliberately lock-protected for multi-goroutine mutation.
package vartable
