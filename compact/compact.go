package compact

import (
	"github.com/katalvlaran/minitip/vartable"
)

// Map translates masks from the original variable universe into a smaller
// compacted universe in which variables that always co-occur across the
// masks Build saw are merged into one bit, realizing spec.md §4.8.
//
// A Map is immutable once built.
type Map struct {
	tr [vartable.MaxVariables]vartable.Mask // original bit i -> representative bit in the compacted universe
	n  int                                  // compacted variable count
}

// Build computes the compaction map from every mask appearing across the
// goal and the active constraints. For each original variable i, it forms
// the intersection — over every mask — of that mask (if i is a member) or
// its complement (if not): variables landing in the same group always
// co-occur and are merged to a single compacted bit. Fails with
// ErrTooFewVariables if the compacted universe ends up with fewer than
// two members.
func Build(masks []vartable.Mask) (*Map, error) {
	var opt [vartable.MaxVariables]vartable.Mask
	for i := range opt {
		opt[i] = ^vartable.Mask(0)
	}
	var all vartable.Mask
	for _, m := range masks {
		all = all.Union(m)
		comp := ^m
		for i := 0; i < vartable.MaxVariables; i++ {
			if m.Contains(i) {
				opt[i] = opt[i].Intersect(m)
			} else {
				opt[i] = opt[i].Intersect(comp)
			}
		}
	}
	for i := 0; i < vartable.MaxVariables; i++ {
		opt[i] = opt[i].Intersect(all)
	}

	var tr [vartable.MaxVariables]vartable.Mask
	nextBit := vartable.Mask(1)
	n := 0
	for i := 0; i < vartable.MaxVariables; i++ {
		if !all.Contains(i) || tr[i] != 0 {
			continue
		}
		group := opt[i] >> uint(i)
		for j := i; group != 0; j, group = j+1, group>>1 {
			if group&1 != 0 {
				tr[j] = nextBit
			}
		}
		nextBit <<= 1
		n++
	}
	if n < 2 {
		return nil, ErrTooFewVariables
	}
	return &Map{tr: tr, n: n}, nil
}

// N returns the compacted variable count.
func (m *Map) N() int {
	return m.n
}

// Rows returns 2^N - 1, the number of nonempty subsets of the compacted
// universe — the LP's row count.
func (m *Map) Rows() int {
	return (1 << uint(m.n)) - 1
}

// Translate maps an original-universe mask into the compacted universe by
// unioning the representative bit of every member variable.
func (m *Map) Translate(orig vartable.Mask) vartable.Mask {
	var out vartable.Mask
	for i := 0; i < vartable.MaxVariables; i++ {
		if orig.Contains(i) {
			out = out.Union(m.tr[i])
		}
	}
	return out
}
