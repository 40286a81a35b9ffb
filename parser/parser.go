package parser

import (
	"github.com/katalvlaran/minitip/macro"
	"github.com/katalvlaran/minitip/vartable"
)

// Parser threads the mutable state one grammar pass needs: the cursor,
// the first-error latch, and references to the shared variable table and
// macro catalogue it resolves identifiers and invocations against.
//
// A Parser is single-use: construct one per call to ParseExpression,
// ParseConstraint, or ParseMacroDefinition.
type Parser struct {
	cur cursor
	syn Syntax
	tbl *vartable.Table
	cat *macro.Catalogue
	err error
}

// New returns a Parser over src using syn, resolving variables against tbl
// and macro invocations against cat.
func New(src string, syn Syntax, tbl *vartable.Table, cat *macro.Catalogue) *Parser {
	return &Parser{
		cur: newCursor(src),
		syn: syn,
		tbl: tbl,
		cat: cat,
	}
}

// Pos returns the current cursor position, for error reporting.
func (p *Parser) Pos() int {
	return p.cur.pos
}
