package lp

import "errors"

// ErrSolverTimeout indicates the solver goroutine did not return within
// the configured time limit (spec.md §5).
var ErrSolverTimeout = errors.New("lp: solver timed out")
