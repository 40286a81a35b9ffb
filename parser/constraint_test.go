package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/minitip/exprstore"
	"github.com/katalvlaran/minitip/parser"
)

func TestParseConstraint_FunctionalDependency(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("ab:b", parser.DefaultCompact(), tbl, cat)

	e, err := p.ParseConstraint()
	require.NoError(t, err)
	require.Equal(t, exprstore.KindEq, e.Kind)
	require.Len(t, e.Terms, 2)
}

func TestParseConstraint_FunctionalDependencyVacuousIsError(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a:ab", parser.DefaultCompact(), tbl, cat)

	_, err := p.ParseConstraint()
	require.True(t, errors.Is(err, parser.ErrFuncEqual))
}

func TestParseConstraint_TotalIndependenceDotForm(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a.b.c", parser.DefaultCompact(), tbl, cat)

	e, err := p.ParseConstraint()
	require.NoError(t, err)
	require.Equal(t, exprstore.KindEq, e.Kind)
	require.Len(t, e.Terms, 4) // H(a)+H(b)+H(c)-H(abc)
}

func TestParseConstraint_TotalIndependencePipeForm(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a||b||c", parser.DefaultCompact(), tbl, cat)

	e, err := p.ParseConstraint()
	require.NoError(t, err)
	require.Len(t, e.Terms, 4)
}

func TestParseConstraint_RedundantIndependenceIsError(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("ab.a.b", parser.DefaultCompact(), tbl, cat)

	_, err := p.ParseConstraint()
	require.True(t, errors.Is(err, parser.ErrRedundantIndependent))
}

func TestParseConstraint_MarkovChainSlash(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a/b/c", parser.DefaultCompact(), tbl, cat)

	e, err := p.ParseConstraint()
	require.NoError(t, err)
	require.Equal(t, exprstore.KindMarkov, e.Kind)
	require.Len(t, e.Terms, 3)
}

func TestParseConstraint_MarkovChainArrow(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a->b->a", parser.DefaultCompact(), tbl, cat)

	e, err := p.ParseConstraint()
	require.NoError(t, err)
	require.Len(t, e.Terms, 3) // revisiting 'a' must not deduplicate

	a, _ := tbl.Lookup("a")
	count := 0
	for _, term := range e.Terms {
		if term.Subset.Contains(a) && term.Subset.PopCount() == 1 {
			count++
		}
	}
	require.Equal(t, 2, count)
}

func TestParseConstraint_MarkovChainTooShort(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a/b", parser.DefaultCompact(), tbl, cat)

	_, err := p.ParseConstraint()
	require.True(t, errors.Is(err, parser.ErrMarkovTooShort))
}

func TestParseConstraint_FallsThroughToPlainRelation(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("a,b >= 0", parser.DefaultCompact(), tbl, cat)

	e, err := p.ParseConstraint()
	require.NoError(t, err)
	require.Equal(t, exprstore.KindGe, e.Kind)
}
