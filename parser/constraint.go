package parser

import (
	"strings"

	"github.com/katalvlaran/minitip/exprstore"
	"github.com/katalvlaran/minitip/vartable"
)

// Sentinel hard errors specific to the constraint shorthands (spec.md §4.6).
var (
	// ErrFuncEqual indicates a functional-dependency constraint "v1:v2"
	// where v1 contributes nothing beyond v2 (the dependency is vacuous).
	ErrFuncEqual = newErrConst("parser: the first variable set is always a function of the other")
	// ErrRedundantIndependent indicates one member of a total-independence
	// constraint is already determined by the rest.
	ErrRedundantIndependent = newErrConst("parser: one part is a function of the others - cannot be independent")
	// ErrMarkovTooShort indicates a Markov-chain constraint named fewer
	// than three links.
	ErrMarkovTooShort = newErrConst("parser: a Markov chain must contain at least three tags")
)

func newErrConst(msg string) error { return &constErr{msg} }

type constErr struct{ msg string }

func (e *constErr) Error() string { return e.msg }

// ParseConstraint parses one constraint declaration (spec.md §4.6): either
// a functional dependency ("v1:v2"), a total-independence list
// ("v1.v2.v3" or "v1||v2||v3"), a Markov chain ("v1/v2/v3" or
// "v1->v2->v3"), or — falling through when none of those shapes match —
// a plain relation, exactly as ParseExpression accepts.
//
// Mirroring the original implementation, the shorthand forms are only
// attempted when the source contains no '=' at all (a relation always
// contains one), and a failed tentative parse rewinds the cursor, clears
// the error latch and restarts from the beginning as a plain relation;
// variables it interned stay in the table.
func (p *Parser) ParseConstraint() (*exprstore.Expr, error) {
	if !strings.ContainsRune(p.cur.src, '=') {
		if e, ok, err := p.tryConstraintShorthand(); ok {
			return e, err
		}
		p.cur.reset(0)
		p.err = nil
	}
	e, err := p.parseRelation(modeCheck)
	return e, err
}

// tryConstraintShorthand attempts the three non-relation constraint
// shapes. ok is false (with the cursor unchanged) when nothing matches,
// so the caller restarts as a plain relation.
func (p *Parser) tryConstraintShorthand() (*exprstore.Expr, bool, error) {
	mark := p.cur.mark()
	v1, err := p.parseVarList()
	if err != nil {
		p.cur.reset(mark)
		p.err = nil
		return nil, false, nil
	}

	switch p.cur.byte() {
	case ':':
		p.cur.advance()
		if v2, ok := p.tryVarList(); ok {
			return p.buildFuncDep(v1, v2), true, p.err
		}
	case '.':
		p.cur.advance()
		if v2, ok := p.tryVarList(); ok {
			return p.buildIndependence('.', v1, v2)
		}
	case '|':
		save := p.cur.mark()
		p.cur.advance()
		if p.cur.byte() == '|' {
			p.cur.advance()
			if v2, ok := p.tryVarList(); ok {
				return p.buildIndependence('|', v1, v2)
			}
		}
		p.cur.reset(save)
	case '/':
		p.cur.advance()
		if v2, ok := p.tryVarList(); ok {
			return p.buildMarkov('/', v1, v2)
		}
	case '-':
		save := p.cur.mark()
		p.cur.advance()
		if p.cur.byte() == '>' {
			p.cur.advance()
			if v2, ok := p.tryVarList(); ok {
				return p.buildMarkov('-', v1, v2)
			}
		}
		p.cur.reset(save)
	}

	p.cur.reset(mark)
	p.err = nil
	return nil, false, nil
}

// tryVarList parses a variable list, reporting ok=false without consuming
// input on failure (used where the caller treats failure as "this isn't
// the shorthand form after all", not as a hard error).
func (p *Parser) tryVarList() (vartable.Mask, bool) {
	mark := p.cur.mark()
	v, err := p.parseVarList()
	if err != nil {
		p.cur.reset(mark)
		p.err = nil
		return 0, false
	}
	return v, true
}

// buildFuncDep builds "H(v1,v2) - H(v2) = 0", the statement that v1 is a
// deterministic function of v2.
func (p *Parser) buildFuncDep(v1, v2 vartable.Mask) *exprstore.Expr {
	union := v1.Union(v2)
	e := exprstore.New(exprstore.KindEq)
	if union == v2 {
		p.FailSentinel(ErrFuncEqual)
		return e
	}
	_ = e.Add(union, 1)
	_ = e.Add(v2, -1)
	if p.cur.skipSpace(); !p.cur.atEnd() {
		p.FailSentinel(ErrExtraText)
	}
	return e
}

// buildIndependence builds "H(v1)+H(v2)+...-H(v1,v2,...)=0", the
// statement that the listed variable sets are totally independent. sep is
// '.' for "v1.v2.v3..." or '|' for "v1||v2||v3...".
func (p *Parser) buildIndependence(sep byte, v1, v2 vartable.Mask) (*exprstore.Expr, bool, error) {
	e := exprstore.New(exprstore.KindEq)
	parts := []vartable.Mask{v1, v2}
	_ = e.Add(v1, 1)
	_ = e.Add(v2, 1)
	all := v1.Union(v2)

	for {
		mark := p.cur.mark()
		if sep == '.' {
			if p.cur.byte() != '.' {
				break
			}
			p.cur.advance()
		} else {
			if p.cur.byte() != '|' {
				break
			}
			p.cur.advance()
			if p.cur.byte() != '|' {
				p.cur.reset(mark)
				break
			}
			p.cur.advance()
		}
		v, ok := p.tryVarList()
		if !ok {
			p.cur.reset(mark)
			break
		}
		parts = append(parts, v)
		_ = e.Add(v, 1)
		all = all.Union(v)
	}

	for _, part := range parts {
		var restUnion vartable.Mask
		for _, other := range parts {
			if other != part {
				restUnion = restUnion.Union(other)
			}
		}
		if restUnion == all {
			p.FailSentinel(ErrRedundantIndependent)
			return e, true, p.err
		}
	}

	p.cur.skipSpace()
	if !p.cur.atEnd() {
		p.FailSentinel(ErrExtraText)
		return e, true, p.err
	}
	_ = e.Add(all, -1)
	return e, true, nil
}

// buildMarkov builds a KindMarkov Expr, one term per chain link (a Markov
// chain v1 -> v2 -> ... -> vk). sep is '/' for "v1/v2/.../vk" or '-' for
// "v1->v2->...->vk".
func (p *Parser) buildMarkov(sep byte, v1, v2 vartable.Mask) (*exprstore.Expr, bool, error) {
	// Each link is appended as its own term, never merged with an equal
	// subset elsewhere in the chain: a chain may revisit a variable set
	// (e.g. a->b->a), and the sequence — not a deduplicated sum — is what
	// the LP layer's chain-to-conditional-independence reduction needs.
	e := exprstore.New(exprstore.KindMarkov)
	e.Terms = append(e.Terms, exprstore.Term{Subset: v1, Coeff: 1}, exprstore.Term{Subset: v2, Coeff: 1})
	count := 2

	for {
		mark := p.cur.mark()
		if sep == '/' {
			if p.cur.byte() != '/' {
				break
			}
			p.cur.advance()
		} else {
			if p.cur.byte() != '-' {
				break
			}
			p.cur.advance()
			if p.cur.byte() != '>' {
				p.cur.reset(mark)
				break
			}
			p.cur.advance()
		}
		v, ok := p.tryVarList()
		if !ok {
			p.cur.reset(mark)
			break
		}
		e.Terms = append(e.Terms, exprstore.Term{Subset: v, Coeff: 1})
		count++
	}

	if count < 3 {
		p.FailSentinel(ErrMarkovTooShort)
		return e, true, p.err
	}
	p.cur.skipSpace()
	if !p.cur.atEnd() {
		p.FailSentinel(ErrExtraText)
		return e, true, p.err
	}
	return e, true, nil
}
