package parser

import (
	"github.com/katalvlaran/minitip/exprstore"
	"github.com/katalvlaran/minitip/macro"
	"github.com/katalvlaran/minitip/vartable"
)

// parseAtomic recognises one atomic entropy item (spec.md §4.5 table) and
// accumulates its contribution into dst, scaled by coeff. Bare var-list
// forms ("a", "a,b", "a|b", "a,b|c") and the bare-paren forms
// ("(a,b)", "(a|b)", "(a,b|c)") are compact-style only; H(...)/I(...) are
// not special syntax at all — they resolve through the macro catalogue,
// since "H" and "I" are themselves standard macro names, the same as in
// full style.
func (p *Parser) parseAtomic(dst *exprstore.Expr, coeff float64) error {
	p.cur.skipSpace()
	ch := p.cur.byte()

	if p.syn.Style == StyleCompact {
		if isLower(ch) {
			return p.parseSimpleExpression(dst, coeff)
		}
		if ch == '(' {
			return p.parseParenForm(dst, coeff)
		}
	}
	if ch == '[' {
		return p.parseIngletonForm(dst, coeff)
	}
	if isUpper(ch) {
		handled, err := p.tryParseMacroInvocation(dst, coeff)
		if handled {
			return err
		}
	}
	return p.FailSentinel(ErrExpectedAtom)
}

// parseSimpleExpression parses the compact bare form: a var-list, then
// optionally "|" var-list (conditional entropy) or Sep var-list
// (mutual information), itself optionally followed by "|" var-list
// (conditional mutual information).
func (p *Parser) parseSimpleExpression(dst *exprstore.Expr, coeff float64) error {
	v1, err := p.parseVarList()
	if err != nil {
		return err
	}
	if p.cur.byte() == '|' {
		p.cur.advance()
		p.cur.skipSpace()
		v2, err := p.parseVarList()
		if err != nil {
			return err
		}
		if err := p.addErr(dst.Add(v1.Union(v2), coeff)); err != nil {
			return err
		}
		return p.addErr(dst.Sub(v2, coeff))
	}
	if p.cur.byte() == p.syn.sep() {
		p.cur.advance()
		p.cur.skipSpace()
		v2, err := p.parseVarList()
		if err != nil {
			return err
		}
		if p.cur.byte() == '|' {
			p.cur.advance()
			p.cur.skipSpace()
			v3, err := p.parseVarList()
			if err != nil {
				return err
			}
			return p.addErr(dst.AddI3(v1, v2, v3, coeff))
		}
		return p.addErr(dst.AddI2(v1, v2, coeff))
	}
	return p.addErr(dst.Add(v1, coeff))
}

// addErr wraps an exprstore soft error (e.g. ErrTooManyTerms) into the
// parser's first-error latch, leaving nil untouched.
func (p *Parser) addErr(err error) error {
	if err == nil {
		return nil
	}
	return p.FailSoft(err)
}

// parseParenForm parses "(" V ")" | "(" V "|" V ")" | "(" V sep V ")" |
// "(" V sep V "|" V ")", which cover H(V), H(V1|V2), I(V1;V2), and
// I(V1;V2|V3) respectively.
func (p *Parser) parseParenForm(dst *exprstore.Expr, coeff float64) error {
	p.cur.advance() // '('
	p.cur.skipSpace()
	v1, err := p.parseVarList()
	if err != nil {
		return err
	}
	p.cur.skipSpace()

	switch p.cur.byte() {
	case ')':
		p.cur.advance()
		return p.addErr(dst.Add(v1, coeff))
	case '|':
		p.cur.advance()
		p.cur.skipSpace()
		v2, err := p.parseVarList()
		if err != nil {
			return err
		}
		if err := p.expectByte(')'); err != nil {
			return err
		}
		if err := p.addErr(dst.Add(v1.Union(v2), coeff)); err != nil {
			return err
		}
		return p.addErr(dst.Sub(v2, coeff))
	case p.syn.sep():
		p.cur.advance()
		p.cur.skipSpace()
		v2, err := p.parseVarList()
		if err != nil {
			return err
		}
		p.cur.skipSpace()
		if p.cur.byte() == '|' {
			p.cur.advance()
			p.cur.skipSpace()
			v3, err := p.parseVarList()
			if err != nil {
				return err
			}
			if err := p.expectByte(')'); err != nil {
				return err
			}
			return p.addErr(dst.AddI3(v1, v2, v3, coeff))
		}
		if err := p.expectByte(')'); err != nil {
			return err
		}
		return p.addErr(dst.AddI2(v1, v2, coeff))
	default:
		return p.FailSentinel(ErrExpectedChar)
	}
}

// parseIngletonForm parses "[" V1 sep V2 sep V3 sep V4 "]", the Ingleton
// bracket: -I(V1;V2)+I(V1;V2|V3)+I(V1;V2|V4)+I(V3;V4).
func (p *Parser) parseIngletonForm(dst *exprstore.Expr, coeff float64) error {
	p.cur.advance() // '['
	p.cur.skipSpace()

	vars := make([]vartable.Mask, 0, 4)
	for i := 0; i < 4; i++ {
		v, err := p.parseVarList()
		if err != nil {
			return err
		}
		vars = append(vars, v)
		p.cur.skipSpace()
		if i < 3 {
			if err := p.expectByte(p.syn.sep()); err != nil {
				return err
			}
			p.cur.skipSpace()
		}
	}
	if err := p.expectByte(']'); err != nil {
		return err
	}
	v1, v2, v3, v4 := vars[0], vars[1], vars[2], vars[3]
	if err := p.addErr(dst.AddI2(v1, v2, -coeff)); err != nil {
		return err
	}
	if err := p.addErr(dst.AddI3(v1, v2, v3, coeff)); err != nil {
		return err
	}
	if err := p.addErr(dst.AddI3(v1, v2, v4, coeff)); err != nil {
		return err
	}
	return p.addErr(dst.AddI2(v3, v4, coeff))
}

// expectByte skips space, requires the current character to equal ch,
// consumes it, and skips trailing space; otherwise raises a hard error.
func (p *Parser) expectByte(ch byte) error {
	p.cur.skipSpace()
	if p.cur.byte() != ch {
		return p.FailSentinel(ErrExpectedChar)
	}
	p.cur.advance()
	p.cur.skipSpace()
	return nil
}

// tryParseMacroInvocation tentatively parses "Name(" args ")" where Name
// is a single uppercase letter. If no macro of this name exists at all,
// it back-tracks to before the name and reports handled=false so the
// caller can try another alternative. Once '(' is confirmed legal against
// the catalogue, failures are hard errors (no further back-tracking).
func (p *Parser) tryParseMacroInvocation(dst *exprstore.Expr, coeff float64) (handled bool, err error) {
	mark := p.cur.mark()
	name := string(p.cur.byte())
	p.cur.advance()
	p.cur.skipSpace()
	if p.cur.byte() != '(' || !p.cat.HasAnyNamed(name) {
		p.cur.reset(mark)
		return false, nil
	}
	p.cur.advance()
	p.cur.skipSpace()

	var actuals []vartable.Mask
	var sig uint32
	argIdx := 0
	for {
		v, perr := p.parseVarList()
		if perr != nil {
			return true, perr
		}
		actuals = append(actuals, v)
		argIdx++
		p.cur.skipSpace()

		ch := p.cur.byte()
		if ch == ')' {
			p.cur.advance()
			d := p.cat.Find(name, argIdx, sig)
			if d == nil {
				return true, p.FailSentinel(ErrBadMacroCall)
			}
			return true, p.addErr(d.Expand(dst, actuals, coeff))
		}

		isPipe := ch == '|'
		isSep := ch == p.syn.sep()
		if !isPipe && !isSep {
			return true, p.FailSentinel(ErrExpectedChar)
		}
		cands := p.cat.Candidates(name, macro.ModePrefix, argIdx, sig)
		wantBit := uint32(0)
		if isPipe {
			wantBit = 1
		}
		legal := false
		for _, d := range cands {
			if (d.Signature>>uint(argIdx-1))&1 == wantBit {
				legal = true
				break
			}
		}
		if !legal {
			return true, p.FailSentinel(ErrBadMacroCall)
		}
		if isPipe {
			sig |= 1 << uint(argIdx-1)
		}
		p.cur.advance()
		p.cur.skipSpace()
	}
}
