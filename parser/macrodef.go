package parser

import (
	"github.com/katalvlaran/minitip/vartable"
)

// Sentinel hard errors for macro definition and deletion headers
// (spec.md §4.7), grounded in the original parser's e_MDEF_* / e_MDEL_*
// messages.
var (
	ErrMacroNoName   = newErrConst("parser: expected a macro name (an uppercase letter)")
	ErrMacroNoParen  = newErrConst("parser: expected '(' after the macro name")
	ErrMacroBadParam = newErrConst("parser: expected a parameter name")
	ErrMacroDupParam = newErrConst("parser: all parameters must be different")
	ErrMacroNoEquals = newErrConst("parser: expected '=' after the macro header")
	ErrMacroNotFound = newErrConst("parser: no macro with this name and shape - use 'macro list' to see defined macros")
)

// parseMacroName reads a macro name: the single uppercase letter the
// catalogue indexes macros by.
func (p *Parser) parseMacroName() (string, error) {
	p.cur.skipSpace()
	if !isUpper(p.cur.byte()) {
		return "", p.FailSentinel(ErrMacroNoName)
	}
	name := string(p.cur.byte())
	p.cur.advance()
	return name, nil
}

// paramIdent reads one parameter identifier under the parser's active
// style, the same lexical shape as any other variable identifier.
func (p *Parser) paramIdent() (string, bool) {
	if p.syn.Style == StyleCompact {
		return p.parseCompactIdentifier()
	}
	return p.parseFullIdentifier()
}

// parseMacroHead parses "Name(" p1 sep p2 ... ")", interning each
// parameter identifier into tbl and requiring it intern to exactly bit
// argno — a fresh name in positional order. A repeated or out-of-order
// name interns to an earlier bit and trips ErrMacroDupParam, exactly as
// the original's must(var==1<<head.argno, e_MDEF_SAMEPAR) does. tbl is a
// throwaway table local to one definition or deletion parse, so this
// same freshness check is harmless to reuse for deletion headers too:
// any well-formed head naturally satisfies it.
func (p *Parser) parseMacroHead(tbl *vartable.Table) (name string, arity int, signature uint32, err error) {
	name, err = p.parseMacroName()
	if err != nil {
		return "", 0, 0, err
	}
	p.cur.skipSpace()
	if p.cur.byte() != '(' {
		return "", 0, 0, p.FailSentinel(ErrMacroNoParen)
	}
	p.cur.advance()
	p.cur.skipSpace()

	var sig uint32
	argno := 0
	for {
		ident, ok := p.paramIdent()
		if !ok {
			return "", 0, 0, p.FailSentinel(ErrMacroBadParam)
		}
		idx, ierr := tbl.Intern(ident)
		if ierr != nil {
			return "", 0, 0, p.FailSoft(ierr)
		}
		if idx != argno {
			return "", 0, 0, p.FailSentinel(ErrMacroDupParam)
		}
		argno++
		p.cur.skipSpace()

		ch := p.cur.byte()
		if ch == ')' {
			p.cur.advance()
			return name, argno, sig, nil
		}
		isPipe := ch == '|'
		isSep := ch == p.syn.sep()
		if !isPipe && !isSep {
			return "", 0, 0, p.FailSentinel(ErrExpectedChar)
		}
		if isPipe {
			sig |= 1 << uint(argno-1)
		}
		p.cur.advance()
		p.cur.skipSpace()
	}
}

// ParseMacroDefinition parses a full macro definition "Name(p1,...) =
// body" (spec.md §4.7) and installs it into the parser's catalogue. The
// header is parsed against a fresh, throwaway variable table — a macro
// body is expressed over abstract parameter slots, never the caller's
// real variables — so parameter i always denotes bit i regardless of
// what the session's variable table already holds. The body is then
// parsed with no new identifiers permitted beyond the declared
// parameters (ArmNoNew) and no relation symbol allowed (modeMacro); the
// catalogue itself enforces the standard-name, duplicate, unused-
// parameter, and capacity invariants.
func (p *Parser) ParseMacroDefinition() (name string, arity int, signature uint32, err error) {
	tmpTbl := vartable.New()
	sub := &Parser{cur: p.cur, syn: p.syn, tbl: tmpTbl, cat: p.cat}

	name, arity, signature, err = sub.parseMacroHead(tmpTbl)
	p.cur = sub.cur
	if err != nil {
		p.err = sub.err
		return "", 0, 0, err
	}

	sub.cur.skipSpace()
	if sub.cur.byte() != '=' {
		p.cur = sub.cur
		return "", 0, 0, p.FailSentinel(ErrMacroNoEquals)
	}
	sub.cur.advance()
	sub.cur.skipSpace()

	tmpTbl.ArmNoNew()
	body, berr := sub.parseRelation(modeMacro)
	p.cur = sub.cur
	if berr != nil {
		p.err = sub.err
		return "", 0, 0, berr
	}

	if _, aerr := p.cat.Add(name, arity, signature, body); aerr != nil {
		return "", 0, 0, p.FailSoft(aerr)
	}
	return name, arity, signature, nil
}

// ParseMacroDeletion parses a macro-deletion header "Name(p1,...)" with
// no body and removes the exactly-matching descriptor from the parser's
// catalogue, mirroring the original's parse_delete_macro. Trailing input
// after the header is rejected; a header with no exact match is a hard
// error naming the "macro list" command, as in the original.
func (p *Parser) ParseMacroDeletion() (name string, arity int, signature uint32, err error) {
	tmpTbl := vartable.New()
	sub := &Parser{cur: p.cur, syn: p.syn, tbl: tmpTbl, cat: p.cat}

	name, arity, signature, err = sub.parseMacroHead(tmpTbl)
	p.cur = sub.cur
	if err != nil {
		p.err = sub.err
		return "", 0, 0, err
	}

	sub.cur.skipSpace()
	if !sub.cur.atEnd() {
		p.cur = sub.cur
		return "", 0, 0, p.FailSentinel(ErrExtraText)
	}

	if _, derr := p.cat.DeleteByHead(name, arity, signature); derr != nil {
		return "", 0, 0, p.FailSentinel(ErrMacroNotFound)
	}
	return name, arity, signature, nil
}
