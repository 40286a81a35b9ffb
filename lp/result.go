package lp

import (
	"time"

	"github.com/katalvlaran/minitip/exprstore"
)

// Outcome is the combined verdict spec.md §4.9 describes for a check: a
// Ge goal collapses to plain True/False, while an Eq goal — solved in
// both directions — can also come out one-sided.
type Outcome int

const (
	// OutcomeTrue: the goal holds.
	OutcomeTrue Outcome = iota
	// OutcomeFalse: the goal does not hold (Ge), or neither direction
	// holds (Eq).
	OutcomeFalse
	// OutcomeGeOnly: an Eq goal's ">= 0" direction holds but "<= 0" does
	// not.
	OutcomeGeOnly
	// OutcomeLeOnly: an Eq goal's "<= 0" direction holds but ">= 0" does
	// not.
	OutcomeLeOnly
)

// Check runs Problem.Solve once for a Ge goal, or twice (mult=+1 then
// mult=-1) for an Eq goal, combining the two directions exactly as the
// original call_lp does.
func Check(p *Problem, goal *exprstore.Expr, timeLimit time.Duration) (Outcome, error) {
	geStatus, err := p.Solve(goal, 1.0, timeLimit)
	if err != nil {
		return 0, err
	}
	if goal.Kind != exprstore.KindEq {
		if geStatus == StatusTrue {
			return OutcomeTrue, nil
		}
		return OutcomeFalse, nil
	}

	leStatus, err := p.Solve(goal, -1.0, timeLimit)
	if err != nil {
		return 0, err
	}
	switch {
	case geStatus == StatusTrue && leStatus == StatusTrue:
		return OutcomeTrue, nil
	case geStatus == StatusTrue && leStatus == StatusFalse:
		return OutcomeGeOnly, nil
	case geStatus == StatusFalse && leStatus == StatusTrue:
		return OutcomeLeOnly, nil
	default:
		return OutcomeFalse, nil
	}
}
