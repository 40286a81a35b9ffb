package lp

import (
	"github.com/katalvlaran/minitip/compact"
	"github.com/katalvlaran/minitip/exprstore"
	"github.com/katalvlaran/minitip/vartable"
)

// column is one generator of the LP, expressed as a sparse map from a
// compacted-universe subset (the row it contributes to) to a coefficient.
// free marks an equality-style column (split into two nonnegative physical
// columns at assembly time); non-free columns are already "x >= 0".
type column struct {
	entries map[vartable.Mask]float64
	free    bool
}

func newColumn(raw map[vartable.Mask]float64, free bool) column {
	out := make(map[vartable.Mask]float64, len(raw))
	for subset, coeff := range raw {
		if subset == 0 || coeff == 0 {
			continue
		}
		out[subset] += coeff
	}
	return column{entries: out, free: free}
}

// shannonColumns generates every elemental conditional-mutual-information
// inequality I(a;b|K) >= 0 over the n-variable compacted universe: all
// unordered pairs {a,b} and all subsets K of the remaining n-2 variables
// (spec.md §4.9). For n==2 this degenerates to the single I(a;b) >= 0
// inequality, matching the n(n-1)*2^(n-3) count for n>=3 and 1 for n==2.
func shannonColumns(n int) []column {
	var cols []column
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			var others []int
			for v := 0; v < n; v++ {
				if v != a && v != b {
					others = append(others, v)
				}
			}
			m := len(others)
			for sub := 0; sub < (1 << uint(m)); sub++ {
				var k vartable.Mask
				for bi, v := range others {
					if sub&(1<<uint(bi)) != 0 {
						k = k.Union(vartable.Bit(v))
					}
				}
				va, vb := vartable.Bit(a), vartable.Bit(b)
				entries := map[vartable.Mask]float64{
					va.Union(k):           1,
					vb.Union(k):           1,
					va.Union(vb).Union(k): -1,
				}
				if k != 0 {
					entries[k] = -1
				}
				cols = append(cols, newColumn(entries, false))
			}
		}
	}
	return cols
}

// monotonicityColumns generates H(U) - H(U\{i}) >= 0 for every variable i
// in the n-variable compacted universe.
func monotonicityColumns(n int) []column {
	var full vartable.Mask
	for i := 0; i < n; i++ {
		full = full.Union(vartable.Bit(i))
	}
	cols := make([]column, 0, n)
	for i := 0; i < n; i++ {
		entries := map[vartable.Mask]float64{
			full:                           1,
			full.Without(vartable.Bit(i)): -1,
		}
		cols = append(cols, newColumn(entries, false))
	}
	return cols
}

// constraintColumns translates one active constraint into its LP columns.
// A scalar (Eq/Ge) constraint contributes one column, free for Eq and
// nonnegative for Ge. A Markov chain of k links contributes k-2 columns,
// one conditional-independence equality per interior link.
func constraintColumns(cmap *compact.Map, e *exprstore.Expr) []column {
	if e.Kind == exprstore.KindMarkov {
		k := len(e.Terms)
		if k < 3 {
			return nil
		}
		cols := make([]column, 0, k-2)
		for idx := 0; idx <= k-3; idx++ {
			var left, right vartable.Mask
			for j := 0; j <= idx; j++ {
				left = left.Union(cmap.Translate(e.Terms[j].Subset))
			}
			mid := cmap.Translate(e.Terms[idx+1].Subset)
			for j := idx + 2; j < k; j++ {
				right = right.Union(cmap.Translate(e.Terms[j].Subset))
			}
			entries := map[vartable.Mask]float64{
				left.Union(mid):               1,
				right.Union(mid):              1,
				left.Union(right).Union(mid): -1,
			}
			if mid != 0 {
				entries[mid] = -1
			}
			cols = append(cols, newColumn(entries, true))
		}
		return cols
	}

	entries := map[vartable.Mask]float64{}
	for _, t := range e.Terms {
		r := cmap.Translate(t.Subset)
		if r == 0 {
			continue
		}
		entries[r] += t.Coeff
	}
	return []column{newColumn(entries, e.Kind == exprstore.KindEq)}
}
