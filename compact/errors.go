package compact

import "errors"

// ErrTooFewVariables indicates the compacted universe has fewer than two
// members: an LP check is meaningless over zero or one variable.
var ErrTooFewVariables = errors.New("compact: fewer than two variables")
