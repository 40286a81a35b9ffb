package exprstore

import "errors"

// ErrTooManyTerms is a soft (resource) error: the term array hit MaxTerms
// while accumulating a single expression. Clings to the first occurrence.
var ErrTooManyTerms = errors.New("exprstore: expanded expression too long")
