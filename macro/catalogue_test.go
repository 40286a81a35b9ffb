package macro_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/minitip/exprstore"
	"github.com/katalvlaran/minitip/macro"
	"github.com/katalvlaran/minitip/vartable"
)

func TestNew_InstallsStandardMacros(t *testing.T) {
	cat := macro.New(macro.DefaultMaxMacros)
	require.Equal(t, 0, cat.Len())
	require.NotNil(t, cat.Find("H", 1, 0))
	require.NotNil(t, cat.Find("H", 2, 0b1))
	require.NotNil(t, cat.Find("I", 2, 0))
	require.NotNil(t, cat.Find("I", 3, 0b10))
}

func TestAdd_RejectsStandardName(t *testing.T) {
	cat := macro.New(macro.DefaultMaxMacros)
	body := exprstore.New(exprstore.KindMacroBody)
	body.Terms = append(body.Terms, exprstore.Term{Subset: vartable.Bit(0), Coeff: 1})

	_, err := cat.Add("H", 1, 0, body)
	require.True(t, errors.Is(err, macro.ErrStandardMacro))
}

func TestAdd_RejectsUnusedParameter(t *testing.T) {
	cat := macro.New(macro.DefaultMaxMacros)
	body := exprstore.New(exprstore.KindMacroBody)
	body.Terms = append(body.Terms, exprstore.Term{Subset: vartable.Bit(0), Coeff: 1})

	_, err := cat.Add("D", 2, 0, body) // arity 2, parameter slot 1 never used
	require.True(t, errors.Is(err, macro.ErrUnusedParameter))
}

func TestAdd_RejectsUnknownParameter(t *testing.T) {
	cat := macro.New(macro.DefaultMaxMacros)
	body := exprstore.New(exprstore.KindMacroBody)
	body.Terms = append(body.Terms, exprstore.Term{Subset: vartable.Bit(5), Coeff: 1})

	_, err := cat.Add("D", 1, 0, body)
	require.True(t, errors.Is(err, macro.ErrUnknownParameter))
}

func TestAdd_RejectsDuplicate(t *testing.T) {
	cat := macro.New(macro.DefaultMaxMacros)
	body := exprstore.New(exprstore.KindMacroBody)
	body.Terms = append(body.Terms, exprstore.Term{Subset: vartable.Bit(0), Coeff: 1})

	_, err := cat.Add("D", 1, 0, body)
	require.NoError(t, err)
	_, err = cat.Add("D", 1, 0, body)
	require.True(t, errors.Is(err, macro.ErrDuplicateMacro))
}

func TestDelete_StandardMacroRejected(t *testing.T) {
	cat := macro.New(macro.DefaultMaxMacros)
	err := cat.Delete(0)
	require.True(t, errors.Is(err, macro.ErrStandardMacro))
}

func TestDeleteByHead_ThenReAddReusesSlot(t *testing.T) {
	cat := macro.New(macro.DefaultMaxMacros)
	body := exprstore.New(exprstore.KindMacroBody)
	body.Terms = append(body.Terms, exprstore.Term{Subset: vartable.Bit(0), Coeff: 1})

	slot, err := cat.Add("D", 1, 0, body)
	require.NoError(t, err)

	freed, err := cat.DeleteByHead("D", 1, 0)
	require.NoError(t, err)
	require.Equal(t, slot, freed)
	require.Equal(t, 0, cat.Len())

	slot2, err := cat.Add("E", 1, 0, body)
	require.NoError(t, err)
	require.Equal(t, freed, slot2)
}

func TestCandidates_PrefixDisambiguatesSeparator(t *testing.T) {
	cat := macro.New(macro.DefaultMaxMacros)

	// D(x|y) — signature bit0=1 (pipe)
	bodyPipe := exprstore.New(exprstore.KindMacroBody)
	bodyPipe.Terms = append(bodyPipe.Terms, exprstore.Term{Subset: vartable.Bit(0).Union(vartable.Bit(1)), Coeff: 1})
	_, err := cat.Add("D", 2, 0b1, bodyPipe)
	require.NoError(t, err)

	// D(x,y,z) — signature bits 0,1 = 0 (both list separator)
	bodyList := exprstore.New(exprstore.KindMacroBody)
	bodyList.Terms = append(bodyList.Terms,
		exprstore.Term{Subset: vartable.Bit(0), Coeff: 1},
		exprstore.Term{Subset: vartable.Bit(1), Coeff: 1},
		exprstore.Term{Subset: vartable.Bit(2), Coeff: 1},
	)
	_, err = cat.Add("D", 3, 0b00, bodyList)
	require.NoError(t, err)

	// After one argument (partialArgs=1, no separator consumed yet),
	// both candidates remain (arity>1 for both).
	cands := cat.Candidates("D", macro.ModePrefix, 1, 0)
	require.Len(t, cands, 2)

	// Once the list separator is committed between the first two arguments
	// (partialArgs=2, signature bit0=0), only the list macro remains
	// consistent: D(x|y) has a pipe there and takes no third argument.
	cands = cat.Candidates("D", macro.ModePrefix, 2, 0b0)
	require.Len(t, cands, 1)
	require.Equal(t, 3, cands[0].Arity)
}

func TestExpand_SubstitutesActualMasks(t *testing.T) {
	cat := macro.New(macro.DefaultMaxMacros)
	d := cat.Find("I", 2, 0)
	require.NotNil(t, d)

	x := vartable.Bit(0)
	y := vartable.Bit(1)

	dst := exprstore.New(exprstore.KindGe)
	require.NoError(t, d.Expand(dst, []vartable.Mask{x, y}, 1))
	dst.Collapse()

	sum := map[vartable.Mask]float64{}
	for _, term := range dst.Terms {
		sum[term.Subset] += term.Coeff
	}
	require.InDelta(t, 1, sum[x], 1e-12)
	require.InDelta(t, 1, sum[y], 1e-12)
	require.InDelta(t, -1, sum[x.Union(y)], 1e-12)
}

func TestAdd_TooManyMacros(t *testing.T) {
	cat := macro.New(1)
	body := exprstore.New(exprstore.KindMacroBody)
	body.Terms = append(body.Terms, exprstore.Term{Subset: vartable.Bit(0), Coeff: 1})

	_, err := cat.Add("D", 1, 0, body)
	require.NoError(t, err)
	_, err = cat.Add("E", 1, 0, body)
	require.True(t, errors.Is(err, macro.ErrTooManyMacros))
}
