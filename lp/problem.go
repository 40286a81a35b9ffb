package lp

import (
	"errors"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"
	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/minitip/compact"
	"github.com/katalvlaran/minitip/exprstore"
	"github.com/katalvlaran/minitip/vartable"
)

// Status is the outcome of one Solve call (spec.md §4.9's OPT/NOFEAS
// table, collapsed to the two outcomes a scalar check reports).
type Status int

const (
	StatusTrue Status = iota
	StatusFalse
)

// physColumn is one nonnegative decision variable of the assembled system,
// after any free content column has been split into a plus and a minus
// part (x = x+ - x-, both >= 0 — the standard trick for turning a free
// variable into the nonnegative form gonum's Simplex requires).
type physColumn struct {
	entries map[vartable.Mask]float64
}

// Problem is one compacted, permuted LP instance built from a goal and
// its active constraints. Rows are indexed canonically by the compacted-
// universe subset they represent (1..2^n-1); Build draws one row
// permutation and one column permutation up front, shared by every
// Solve call against this Problem (the double-solve for an Eq goal reuses
// both).
type Problem struct {
	cmap     *compact.Map
	rows     int
	physCols []physColumn
	rowPerm  []int // rowPerm[subset-1] = physical row index
}

// Build collects every mask mentioned by goal and the active constraints,
// compacts the variable universe (spec.md §4.8), generates the Shannon,
// monotonicity, and constraint columns, splits free columns into
// nonnegative pairs, and draws the row/column permutation (spec.md §4.9).
func Build(goal *exprstore.Expr, constraints []*exprstore.Expr, rng *rand.Rand) (*Problem, error) {
	var masks []vartable.Mask
	collect := func(e *exprstore.Expr) {
		for _, t := range e.Terms {
			masks = append(masks, t.Subset)
		}
	}
	collect(goal)
	for _, c := range constraints {
		collect(c)
	}

	cmap, err := compact.Build(masks)
	if err != nil {
		return nil, err
	}
	n := cmap.N()

	cols := shannonColumns(n)
	cols = append(cols, monotonicityColumns(n)...)
	for _, c := range constraints {
		cols = append(cols, constraintColumns(cmap, c)...)
	}

	var phys []physColumn
	for _, col := range cols {
		phys = append(phys, physColumn{entries: col.entries})
		if col.free {
			neg := make(map[vartable.Mask]float64, len(col.entries))
			for subset, coeff := range col.entries {
				neg[subset] = -coeff
			}
			phys = append(phys, physColumn{entries: neg})
		}
	}
	shuffleColumns(phys, rng)

	rows := cmap.Rows()
	return &Problem{
		cmap:     cmap,
		rows:     rows,
		physCols: phys,
		rowPerm:  permutation(rows, rng),
	}, nil
}

// permutation draws a Fisher-Yates shuffle of {0, ..., size-1}.
func permutation(size int, rng *rand.Rand) []int {
	perm := make([]int, size)
	for i := range perm {
		perm[i] = i
	}
	for i := size - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func shuffleColumns(cols []physColumn, rng *rand.Rand) {
	for i := len(cols) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cols[i], cols[j] = cols[j], cols[i]
	}
}

func (p *Problem) rowPhysical(subset vartable.Mask) int {
	return p.rowPerm[int(subset)-1]
}

// Solve assembles the dense A/b system for one invocation of the goal
// (scaled by mult, +1 or -1), and runs the external solver as a zero-
// objective feasibility check: the goal's row vector is the right-hand
// side, every column is a generator of the cone spanned by the Shannon,
// monotonicity, and constraint rows, and a feasible point exists (OPT)
// exactly when the goal is implied by that cone.
func (p *Problem) Solve(goal *exprstore.Expr, mult float64, timeLimit time.Duration) (Status, error) {
	b := make([]float64, p.rows)
	for _, t := range goal.Terms {
		r := p.cmap.Translate(t.Subset)
		if r == 0 {
			continue
		}
		b[p.rowPhysical(r)] += mult * t.Coeff
	}

	a := mat.NewDense(p.rows, len(p.physCols), nil)
	c := make([]float64, len(p.physCols))
	for j, col := range p.physCols {
		for subset, val := range col.entries {
			a.Set(p.rowPhysical(subset), j, val)
		}
	}

	type result struct {
		status Status
		err    error
	}
	done := make(chan result, 1)
	go func() {
		_, _, err := gonumlp.Simplex(c, a, b, 1e-10, nil)
		switch {
		case err == nil:
			done <- result{StatusTrue, nil}
		case errors.Is(err, gonumlp.ErrInfeasible):
			done <- result{StatusFalse, nil}
		default:
			done <- result{status: 0, err: err}
		}
	}()

	select {
	case res := <-done:
		return res.status, res.err
	case <-time.After(timeLimit):
		return 0, ErrSolverTimeout
	}
}
