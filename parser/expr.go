package parser

import (
	"github.com/katalvlaran/minitip/exprstore"
)

// relationMode parametrizes which relation symbols parseRelation accepts
// and how it classifies the result, mirroring spec.md §4.5's three
// contexts: a checkable expression, a diff (zap) expression, and a
// macro-definition body.
type relationMode int

const (
	modeCheck relationMode = iota
	modeDiff
	modeMacro
)

// relKind is the relation symbol recognised by tryRelation.
type relKind int

const (
	relNone relKind = iota
	relEqual
	relGreater
	relLess
	relDiff
)

// relState tracks progress through the term/relation grammar: before any
// term, after the left-hand side, immediately after the relation symbol,
// and after the right-hand side.
type relState int

const (
	relStateStart relState = iota
	relStateBExpr
	relStateRel
	relStateAExpr
)

// tryRelation recognises '=', '==', '>=', or '<=' at the cursor, consuming
// it. A bare '>' or '<' not followed by '=' is a hard error — minitip has
// no strict-inequality relation — but is still reported as "a relation was
// here" (ok=true) so the caller doesn't also complain about a missing sign.
func (p *Parser) tryRelation() (relKind, bool) {
	switch p.cur.byte() {
	case '=':
		p.cur.advance()
		if p.cur.byte() == '=' {
			p.cur.advance()
			p.cur.skipSpace()
			return relDiff, true
		}
		p.cur.skipSpace()
		return relEqual, true
	case '>':
		p.cur.advance()
		if p.cur.byte() != '=' {
			p.FailSentinel(ErrBareGreater)
			return relNone, true
		}
		p.cur.advance()
		p.cur.skipSpace()
		return relGreater, true
	case '<':
		p.cur.advance()
		if p.cur.byte() != '=' {
			p.FailSentinel(ErrBareLess)
			return relNone, true
		}
		p.cur.advance()
		p.cur.skipSpace()
		return relLess, true
	default:
		return relNone, false
	}
}

// trySignedCoefficient parses an optional leading sign and number:
// "+3", "-1.5", "+", "-", "7", or nothing. A lone sign with no following
// digits yields magnitude 1. has is false only when neither a sign nor a
// number was present at all.
func (p *Parser) trySignedCoefficient() (value float64, has bool) {
	switch p.cur.byte() {
	case '+':
		p.cur.advance()
		if v, ok := p.tryParseNumber(); ok {
			return v, true
		}
		return 1.0, true
	case '-':
		p.cur.advance()
		if v, ok := p.tryParseNumber(); ok {
			return -v, true
		}
		return -1.0, true
	default:
		if v, ok := p.tryParseNumber(); ok {
			return v, true
		}
		return 0, false
	}
}

// applyRelation folds a just-seen relation symbol into dst's Kind and the
// running negate flag, exactly as the original parser's convert_item_to_expr
// does: '=' and '>=' start negating subsequent terms (so the right-hand
// side is subtracted from the left), '<=' instead negates every term seen
// so far (so the left-hand side is subtracted from the right), and '=='
// negates subsequent terms to form a plain algebraic difference.
func applyRelation(dst *exprstore.Expr, kind relKind, negate *bool) {
	switch kind {
	case relEqual:
		dst.Kind = exprstore.KindEq
		*negate = true
	case relGreater:
		dst.Kind = exprstore.KindGe
		*negate = true
	case relLess:
		for i := range dst.Terms {
			dst.Terms[i].Coeff = -dst.Terms[i].Coeff
		}
		dst.Kind = exprstore.KindGe
	case relDiff:
		dst.Kind = exprstore.KindDiff
		*negate = true
	}
}

// parseRelation runs the full term/relation grammar over the remainder of
// the input, accumulating terms into a fresh Expr under mode's symbol
// rules. It mirrors the original parser's parse_entropyexpr state machine
// (START/BEXPR/REL/AEXPR) term for term.
func (p *Parser) parseRelation(mode relationMode) (*exprstore.Expr, error) {
	dst := exprstore.New(exprstore.KindGe)
	state := relStateStart
	negate := false

	for {
		p.cur.skipSpace()
		if p.cur.atEnd() || p.err != nil {
			break
		}

		if state != relStateStart {
			if kind, ok := p.tryRelation(); ok {
				if p.err != nil {
					break
				}
				if state != relStateBExpr {
					p.FailSentinel(ErrOnlyOneRelation)
					break
				}
				switch mode {
				case modeDiff:
					if kind != relDiff {
						p.FailSentinel(ErrUseDiffEq)
						break
					}
				case modeMacro:
					p.FailSentinel(ErrRelationInMacro)
				case modeCheck:
					if kind == relDiff {
						p.FailSentinel(ErrUseRelEq)
						break
					}
				}
				if p.err != nil {
					break
				}
				applyRelation(dst, kind, &negate)
				state = relStateRel
				continue
			}
		}

		if state != relStateStart && state != relStateRel {
			if p.cur.byte() != '+' && p.cur.byte() != '-' {
				p.FailSentinel(ErrExpectedSign)
				break
			}
		}

		coeff, hasCoeff := p.trySignedCoefficient()
		sawStar := false
		if hasCoeff && p.cur.byte() == '*' {
			p.cur.advance()
			sawStar = true
		}
		if !hasCoeff {
			coeff = 1.0
		}

		effectiveCoeff := coeff
		if negate {
			effectiveCoeff = -effectiveCoeff
		}
		p.cur.skipSpace()
		mark := p.cur.mark()
		p.parseAtomic(dst, effectiveCoeff)
		if p.err == nil {
			if state == relStateStart {
				state = relStateBExpr
			} else if state == relStateRel {
				state = relStateAExpr
			}
			continue
		}
		if p.cur.mark() != mark {
			// The atomic form committed past its first character (e.g. a
			// macro name matched but its arguments were malformed): this is
			// a real syntax error, not "no atomic term starts here".
			return dst, p.err
		}
		// Nothing consumed: no atomic form starts at this character at
		// all. Clear the latch and fall through to the state-specific
		// idioms below (a relation symbol, or — for the lone "0" before/
		// after a relation — a bare zero constant).
		p.err = nil

		if sawStar {
			p.FailSentinel(ErrBadMultiply)
			break
		}

		switch state {
		case relStateStart:
			if mode == modeMacro {
				p.FailSentinel(ErrExpectedAtom)
				break
			}
			if !hasCoeff {
				p.FailSentinel(ErrExpectedAtom)
				break
			}
			kind, ok := p.tryRelation()
			if !ok {
				p.FailSentinel(ErrExpectedAtom)
				break
			}
			if p.err != nil {
				break
			}
			if mode == modeDiff && kind != relDiff {
				p.FailSentinel(ErrUseDiffEq)
				break
			}
			if mode == modeCheck && kind == relDiff {
				p.FailSentinel(ErrUseRelEq)
				break
			}
			if coeff != 0 {
				p.FailSentinel(ErrNotHomogeneous)
				break
			}
			applyRelation(dst, kind, &negate)
			state = relStateRel
			continue
		case relStateRel:
			if !hasCoeff {
				p.FailSentinel(ErrExpectedAtom)
				break
			}
			if coeff != 0 {
				p.FailSentinel(ErrNotHomogeneous)
				break
			}
			state = relStateAExpr
			p.cur.skipSpace()
			if !p.cur.atEnd() {
				p.FailSentinel(ErrExtraText)
			}
		default:
			p.FailSentinel(ErrExtraText)
		}
		break
	}

	if p.err != nil {
		return dst, p.err
	}
	if state == relStateStart {
		return dst, p.FailSentinel(ErrEmpty)
	}
	if mode != modeMacro && state == relStateBExpr {
		return dst, p.FailSentinel(ErrNoRelation)
	}
	if mode == modeCheck && state == relStateRel {
		return dst, p.FailSentinel(ErrNoRHS)
	}
	// A term's entry is created (Terms grows) the first time its subset is
	// touched with a nonzero coefficient; later accumulation onto the same
	// subset can cancel it to zero without removing the entry. So the
	// pre-collapse count distinguishes literal all-zero input (no entry
	// ever created, e.g. "0=0") from input that algebraically cancels
	// (e.g. "a=a": one entry is created, then cancelled to zero) —
	// matching the original's entropy_expr.n>0 check, which runs before
	// its own collapse step (parser.c:1130).
	preCollapseTerms := len(dst.Terms)
	dst.Collapse()
	if preCollapseTerms == 0 {
		return dst, p.FailSentinel(ErrAllZero)
	}
	return dst, nil
}

// classify derives an Outcome for a successfully parsed, checkable
// (modeCheck) expression: trivial collapses to zero, TRUE-by-positive-
// combination, and single-term all bypass the LP and are reported
// directly rather than handed to the constructor.
func classify(e *exprstore.Expr) Outcome {
	if len(e.Terms) == 0 {
		if e.Kind == exprstore.KindEq {
			return OutcomeTrivialEqZero
		}
		return OutcomeTrivialGeZero
	}
	if len(e.Terms) == 1 {
		return OutcomeSingleTerm
	}
	if e.IsPositiveGe() {
		return OutcomePositiveCombination
	}
	return OutcomeOK
}

// ParseExpression parses a full checkable relation (spec.md §4.5): a
// linear combination of entropy terms, a relation symbol ('=', '<=', or
// '>='), and another combination. The returned Expr's Kind is KindEq or
// KindGe and holds the left-hand side minus the right-hand side, so the
// claim under test is always "expr == 0" or "expr >= 0".
func (p *Parser) ParseExpression() (*exprstore.Expr, Outcome, error) {
	e, err := p.parseRelation(modeCheck)
	if err != nil {
		return e, OutcomeOK, err
	}
	return e, classify(e), nil
}

// ParseDiff parses a "zap" expression: two sides joined by '==', with no
// truth judgement attached. The returned Expr has Kind KindDiff and holds
// the left-hand side minus the right-hand side.
func (p *Parser) ParseDiff() (*exprstore.Expr, error) {
	return p.parseRelation(modeDiff)
}
