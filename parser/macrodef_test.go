package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/minitip/macro"
	"github.com/katalvlaran/minitip/parser"
)

func TestParseMacroDefinition_InstallsIntoCatalogue(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("D(x,y) = x|y", parser.DefaultCompact(), tbl, cat)

	name, arity, sig, err := p.ParseMacroDefinition()
	require.NoError(t, err)
	require.Equal(t, "D", name)
	require.Equal(t, 2, arity)
	require.Equal(t, uint32(0), sig)
	require.NotNil(t, cat.Find("D", 2, 0))
}

func TestParseMacroDefinition_PipeSignature(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("M(x|y) = x|y", parser.DefaultCompact(), tbl, cat)

	_, _, sig, err := p.ParseMacroDefinition()
	require.NoError(t, err)
	require.Equal(t, uint32(1), sig)
}

func TestParseMacroDefinition_RepeatedParameterRejected(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("D(x,x) = x", parser.DefaultCompact(), tbl, cat)

	_, _, _, err := p.ParseMacroDefinition()
	require.True(t, errors.Is(err, parser.ErrMacroDupParam))
}

func TestParseMacroDefinition_RelationInBodyRejected(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("D(x,y) = x >= y", parser.DefaultCompact(), tbl, cat)

	_, _, _, err := p.ParseMacroDefinition()
	require.True(t, errors.Is(err, parser.ErrRelationInMacro))
}

func TestParseMacroDefinition_UnusedParameterRejectedByCatalogue(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("D(x,y) = x", parser.DefaultCompact(), tbl, cat)

	_, _, _, err := p.ParseMacroDefinition()
	require.True(t, errors.Is(err, macro.ErrUnusedParameter))
}

func TestParseMacroDefinition_UndeclaredIdentifierInBodyRejected(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("D(x,y) = x|z", parser.DefaultCompact(), tbl, cat)

	_, _, _, err := p.ParseMacroDefinition()
	require.Error(t, err)
}

func TestParseMacroDefinition_StandardNameRejectedByCatalogue(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("H(x,y) = x|y", parser.DefaultCompact(), tbl, cat)

	_, _, _, err := p.ParseMacroDefinition()
	require.True(t, errors.Is(err, macro.ErrStandardMacro))
}

func TestParseMacroDeletion_RemovesDefinedMacro(t *testing.T) {
	tbl, cat := newCompact()
	def := parser.New("D(x,y) = x|y", parser.DefaultCompact(), tbl, cat)
	_, _, _, err := def.ParseMacroDefinition()
	require.NoError(t, err)
	require.NotNil(t, cat.Find("D", 2, 0))

	del := parser.New("D(p,q)", parser.DefaultCompact(), tbl, cat)
	name, arity, sig, err := del.ParseMacroDeletion()
	require.NoError(t, err)
	require.Equal(t, "D", name)
	require.Equal(t, 2, arity)
	require.Equal(t, uint32(0), sig)
	require.Nil(t, cat.Find("D", 2, 0))
}

func TestParseMacroDeletion_NotFoundIsHardError(t *testing.T) {
	tbl, cat := newCompact()
	p := parser.New("Z(x,y)", parser.DefaultCompact(), tbl, cat)

	_, _, _, err := p.ParseMacroDeletion()
	require.True(t, errors.Is(err, parser.ErrMacroNotFound))
}
