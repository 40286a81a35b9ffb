package vartable_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/minitip/vartable"
)

func TestIntern_ReturnsStableIndices(t *testing.T) {
	tbl := vartable.New()

	a, err := tbl.Intern("a")
	require.NoError(t, err)
	require.Equal(t, 0, a)

	b, err := tbl.Intern("b")
	require.NoError(t, err)
	require.Equal(t, 1, b)

	again, err := tbl.Intern("a")
	require.NoError(t, err)
	require.Equal(t, a, again)

	require.Equal(t, 2, tbl.Len())
}

func TestIntern_TooManyVariables(t *testing.T) {
	tbl := vartable.New()
	for i := 0; i < vartable.MaxVariables; i++ {
		_, err := tbl.Intern(fmt.Sprintf("v%d", i))
		require.NoError(t, err)
	}
	_, err := tbl.Intern("overflow")
	require.Error(t, err)
	require.True(t, errors.Is(err, vartable.ErrTooManyVariables))
}

func TestIntern_IdentifierTooLong(t *testing.T) {
	tbl := vartable.New()
	long := ""
	for i := 0; i <= vartable.MaxNameLength; i++ {
		long += "x"
	}
	_, err := tbl.Intern(long)
	require.True(t, errors.Is(err, vartable.ErrIdentifierTooLong))
}

func TestArmNoNew_RejectsUnknown(t *testing.T) {
	tbl := vartable.New()
	_, err := tbl.Intern("a")
	require.NoError(t, err)

	tbl.ArmNoNew()
	_, err = tbl.Intern("a") // already known, legal even while armed
	require.NoError(t, err)

	_, err = tbl.Intern("b")
	require.True(t, errors.Is(err, vartable.ErrNoNewVariables))

	tbl.DisarmNoNew()
	_, err = tbl.Intern("b")
	require.NoError(t, err)
}

func TestReset_EmptiesTable(t *testing.T) {
	tbl := vartable.New()
	_, _ = tbl.Intern("a")
	_, _ = tbl.Intern("b")
	tbl.Reset()
	require.Equal(t, 0, tbl.Len())
	_, ok := tbl.Lookup("a")
	require.False(t, ok)
}

func TestRepr_SortedAndPunctuated(t *testing.T) {
	tbl := vartable.New()
	b, _ := tbl.Intern("b")
	a, _ := tbl.Intern("a")
	c, _ := tbl.Intern("c")

	mask := vartable.Bit(a).Union(vartable.Bit(b)).Union(vartable.Bit(c))

	require.Equal(t, "a,b,c", tbl.Repr(mask, false))
	require.Equal(t, "abc", tbl.Repr(mask, true))
}

func TestRepr_RotatingBuffersDoNotAlias(t *testing.T) {
	tbl := vartable.New()
	a, _ := tbl.Intern("a")
	b, _ := tbl.Intern("b")

	s1 := tbl.Repr(vartable.Bit(a), false)
	s2 := tbl.Repr(vartable.Bit(b), false)
	require.Equal(t, "a", s1)
	require.Equal(t, "b", s2)
}

func TestMask_Operations(t *testing.T) {
	a := vartable.Bit(0)
	b := vartable.Bit(1)
	u := a.Union(b)

	require.True(t, u.Contains(0))
	require.True(t, u.Contains(1))
	require.Equal(t, 2, u.PopCount())
	require.True(t, a.SubsetOf(u))
	require.False(t, u.SubsetOf(a))
	require.Equal(t, a, u.Without(b))
	require.True(t, vartable.Mask(0).Empty())
}
