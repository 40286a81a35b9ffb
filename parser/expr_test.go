package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/minitip/exprstore"
	"github.com/katalvlaran/minitip/macro"
	"github.com/katalvlaran/minitip/parser"
	"github.com/katalvlaran/minitip/vartable"
)

func newCompact() (*vartable.Table, *macro.Catalogue) {
	return vartable.New(), macro.New(macro.DefaultMaxMacros)
}

func termSum(e *exprstore.Expr) map[vartable.Mask]float64 {
	out := map[vartable.Mask]float64{}
	for _, t := range e.Terms {
		out[t.Subset] += t.Coeff
	}
	return out
}

func TestParseExpression_ConditionalEntropyCompact(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a|b >= 0", parser.DefaultCompact(), tbl, cat)

	e, outcome, err := p.ParseExpression()
	require.NoError(t, err)
	require.Equal(t, parser.OutcomeOK, outcome)

	a, _ := tbl.Lookup("a")
	b, _ := tbl.Lookup("b")
	sum := termSum(e)
	require.InDelta(t, 1, sum[vartable.Bit(a).Union(vartable.Bit(b))], 1e-12)
	require.InDelta(t, -1, sum[vartable.Bit(b)], 1e-12)
}

func TestParseExpression_MutualInformationIsRegularOutcome(t *testing.T) {
	// I(a;b) expands to H(a)+H(b)-H(a,b): the negative coefficient keeps it
	// out of the positive-combination shortcut, so it goes to the LP.
	tbl, cat := newCompact()
	p := parser.New("a,b >= 0", parser.DefaultCompact(), tbl, cat)

	_, outcome, err := p.ParseExpression()
	require.NoError(t, err)
	require.Equal(t, parser.OutcomeOK, outcome)
}

func TestParseExpression_SubtractionYieldsRegularOutcome(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a,b - a|b >= 0", parser.DefaultCompact(), tbl, cat)

	_, outcome, err := p.ParseExpression()
	require.NoError(t, err)
	require.Equal(t, parser.OutcomeOK, outcome)
}

func TestParseExpression_AlgebraicCancellationIsTrivialZero(t *testing.T) {
	// "a = a" accumulates one term (H(a) on both sides) that cancels to
	// zero on Collapse: this is the trivial "simplifies to 0=0" outcome,
	// not ErrAllZero — the term's entry was created (and so counted
	// nonzero pre-collapse) before it cancelled, matching the original's
	// entropy_expr.n>0 check inside parse_entropyexpr (parser.c:1130),
	// which only rejects input that never accumulated a term at all.
	tbl, cat := newCompact()
	p := parser.New("a = a", parser.DefaultCompact(), tbl, cat)

	_, outcome, err := p.ParseExpression()
	require.NoError(t, err)
	require.Equal(t, parser.OutcomeTrivialEqZero, outcome)
}

func TestParseExpression_LiteralAllZeroIsAnError(t *testing.T) {
	// "0=0" never accumulates a single term: no subset is ever touched
	// with a nonzero coefficient, so this is the literal ErrAllZero case
	// the original rejects before collapse is even considered.
	tbl, cat := newCompact()
	p := parser.New("0=0", parser.DefaultCompact(), tbl, cat)

	_, _, err := p.ParseExpression()
	require.True(t, errors.Is(err, parser.ErrAllZero))
}

func TestParseExpression_SingleTerm(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a >= 0", parser.DefaultCompact(), tbl, cat)

	_, outcome, err := p.ParseExpression()
	require.NoError(t, err)
	require.Equal(t, parser.OutcomeSingleTerm, outcome)
}

func TestParseExpression_LessThanFlipsSign(t *testing.T) {
	tbl, cat := newCompact()
	pGe := parser.New("a,b >= a", parser.DefaultCompact(), tbl, cat)
	eGe, _, err := pGe.ParseExpression()
	require.NoError(t, err)

	tbl2, cat2 := newCompact()
	pLe := parser.New("a <= a,b", parser.DefaultCompact(), tbl2, cat2)
	eLe, _, err := pLe.ParseExpression()
	require.NoError(t, err)

	require.Equal(t, len(eGe.Terms), len(eLe.Terms))
}

func TestParseExpression_BareGreaterIsHardError(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a > 0", parser.DefaultCompact(), tbl, cat)

	_, _, err := p.ParseExpression()
	require.True(t, errors.Is(err, parser.ErrBareGreater))
}

func TestParseExpression_OnlyOneRelation(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a = b = c", parser.DefaultCompact(), tbl, cat)

	_, _, err := p.ParseExpression()
	require.True(t, errors.Is(err, parser.ErrOnlyOneRelation))
}

func TestParseExpression_MissingSignBetweenTerms(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a b >= 0", parser.DefaultCompact(), tbl, cat)

	_, _, err := p.ParseExpression()
	require.True(t, errors.Is(err, parser.ErrExpectedSign))
}

func TestParseExpression_NoRelationFound(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a,b", parser.DefaultCompact(), tbl, cat)

	_, _, err := p.ParseExpression()
	require.True(t, errors.Is(err, parser.ErrNoRelation))
}

func TestParseExpression_EmptyInput(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("   ", parser.DefaultCompact(), tbl, cat)

	_, _, err := p.ParseExpression()
	require.True(t, errors.Is(err, parser.ErrEmpty))
}

func TestParseExpression_UsingDiffSymbolIsRejected(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a == b", parser.DefaultCompact(), tbl, cat)

	_, _, err := p.ParseExpression()
	require.True(t, errors.Is(err, parser.ErrUseRelEq))
}

func TestParseDiff_RequiresDoubleEquals(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a,b = a", parser.DefaultCompact(), tbl, cat)

	_, err := p.ParseDiff()
	require.True(t, errors.Is(err, parser.ErrUseDiffEq))
}

func TestParseDiff_OK(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a,b == a", parser.DefaultCompact(), tbl, cat)

	e, err := p.ParseDiff()
	require.NoError(t, err)
	require.Equal(t, exprstore.KindDiff, e.Kind)

	b, _ := tbl.Lookup("b")
	sum := termSum(e)
	require.InDelta(t, 1, sum[vartable.Bit(b)], 1e-12)
}

func TestParseExpression_IngletonBracket(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("[a,b,c,d] >= 0", parser.DefaultCompact(), tbl, cat)

	e, outcome, err := p.ParseExpression()
	require.NoError(t, err)
	require.Equal(t, parser.OutcomeOK, outcome)
	require.True(t, len(e.Terms) > 0)
}

func TestParseExpression_FullStyleMacroInvocation(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("H(a,b) >= 0", parser.DefaultFull(), tbl, cat)

	e, outcome, err := p.ParseExpression()
	require.NoError(t, err)
	require.Equal(t, parser.OutcomeSingleTerm, outcome)
	require.Len(t, e.Terms, 1)
}

func TestParseExpression_MutualInformationMacroFullStyle(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("I(a;b) >= 0", parser.DefaultFull(), tbl, cat)

	_, outcome, err := p.ParseExpression()
	require.NoError(t, err)
	require.Equal(t, parser.OutcomeOK, outcome)
}
