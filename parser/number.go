package parser

import "strconv"

// tryParseNumber reads an optional decimal number (digits, optionally
// with a fractional part). Returns ok=false (no cursor movement) if the
// next character isn't a digit or '.'.
func (p *Parser) tryParseNumber() (value float64, ok bool) {
	start := p.cur.pos
	sawDigit := false
	for isDigit(p.cur.byte()) {
		p.cur.advance()
		sawDigit = true
	}
	if p.cur.byte() == '.' {
		mark := p.cur.pos
		p.cur.advance()
		fracStart := p.cur.pos
		for isDigit(p.cur.byte()) {
			p.cur.advance()
		}
		if p.cur.pos == fracStart && !sawDigit {
			// bare '.' with no digits at all: not a number, back off.
			p.cur.reset(mark)
		} else {
			sawDigit = true
		}
	}
	if !sawDigit {
		p.cur.reset(start)
		return 0, false
	}
	v, err := strconv.ParseFloat(p.cur.src[start:p.cur.pos], 64)
	if err != nil {
		p.cur.reset(start)
		return 0, false
	}
	return v, true
}
