package parser

import (
	"github.com/katalvlaran/minitip/vartable"
)

func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlnum(b byte) bool {
	return isLower(b) || isUpper(b) || isDigit(b) || b == '_'
}

// parseCompactIdentifier reads one compact-style variable name: a single
// lowercase letter, followed by any number of primes ('), and — when
// p.syn.Extended is set — any number of trailing digits.
func (p *Parser) parseCompactIdentifier() (string, bool) {
	start := p.cur.pos
	if !isLower(p.cur.byte()) {
		return "", false
	}
	p.cur.advance()
	for p.cur.byte() == '\'' {
		p.cur.advance()
	}
	if p.syn.Extended {
		for isDigit(p.cur.byte()) {
			p.cur.advance()
		}
	}
	return p.cur.src[start:p.cur.pos], true
}

// parseFullIdentifier reads one full-style identifier: a maximal run of
// letters, digits, and underscore, case-sensitive, capped at
// vartable.MaxNameLength characters (a soft overflow is reported by the
// caller via vartable.Intern, which itself enforces the cap).
func (p *Parser) parseFullIdentifier() (string, bool) {
	start := p.cur.pos
	if !isLower(p.cur.byte()) && !isUpper(p.cur.byte()) {
		return "", false
	}
	for isAlnum(p.cur.byte()) {
		p.cur.advance()
	}
	return p.cur.src[start:p.cur.pos], true
}

// internVar interns name into p.tbl, translating vartable's soft/hard
// errors into the parser's latch.
func (p *Parser) internVar(name string) (vartable.Mask, error) {
	idx, err := p.tbl.Intern(name)
	if err != nil {
		return 0, p.FailSoft(err)
	}
	return vartable.Bit(idx), nil
}

// parseVarList parses one variable list: in compact style a concatenated
// run of single-letter identifiers unioned together; in full style a
// comma-separated list of multi-character identifiers. At least one
// variable is required.
func (p *Parser) parseVarList() (vartable.Mask, error) {
	p.cur.skipSpace()
	var mask vartable.Mask

	if p.syn.Style == StyleCompact {
		name, ok := p.parseCompactIdentifier()
		if !ok {
			return 0, p.Fail("expected a variable")
		}
		m, err := p.internVar(name)
		if err != nil {
			return 0, err
		}
		mask = m
		for isLower(p.cur.byte()) {
			name, _ = p.parseCompactIdentifier()
			m, err = p.internVar(name)
			if err != nil {
				return 0, err
			}
			mask = mask.Union(m)
		}
		return mask, nil
	}

	name, ok := p.parseFullIdentifier()
	if !ok {
		return 0, p.Fail("expected a variable")
	}
	m, err := p.internVar(name)
	if err != nil {
		return 0, err
	}
	mask = m
	for {
		mark := p.cur.mark()
		p.cur.skipSpace()
		if p.cur.byte() != ',' {
			p.cur.reset(mark)
			break
		}
		p.cur.advance()
		p.cur.skipSpace()
		name, ok = p.parseFullIdentifier()
		if !ok {
			return 0, p.Fail("expected a variable after ','")
		}
		m, err = p.internVar(name)
		if err != nil {
			return 0, err
		}
		mask = mask.Union(m)
	}
	return mask, nil
}
