package lp_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/minitip/exprstore"
	"github.com/katalvlaran/minitip/lp"
	"github.com/katalvlaran/minitip/vartable"
)

func TestCheck_MutualInformationIsTrue(t *testing.T) {
	a, b := vartable.Bit(0), vartable.Bit(1)
	goal := exprstore.New(exprstore.KindGe)
	require.NoError(t, goal.AddI2(a, b, 1))
	goal.Collapse()

	rng := rand.New(rand.NewSource(1))
	p, err := lp.Build(goal, nil, rng)
	require.NoError(t, err)

	outcome, err := lp.Check(p, goal, 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, lp.OutcomeTrue, outcome)
}

func TestCheck_NonShannonInequalityIsFalse(t *testing.T) {
	// -I(a;b) >= 0 holds only when a,b are independent, never as a
	// Shannon-type (unconditional) consequence.
	a, b := vartable.Bit(0), vartable.Bit(1)
	goal := exprstore.New(exprstore.KindGe)
	require.NoError(t, goal.AddI2(a, b, -1))
	goal.Collapse()

	rng := rand.New(rand.NewSource(1))
	p, err := lp.Build(goal, nil, rng)
	require.NoError(t, err)

	outcome, err := lp.Check(p, goal, 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, lp.OutcomeFalse, outcome)
}

func TestCheck_FunctionalDependencyConstraintMakesGoalTrue(t *testing.T) {
	// With the constraint H(ab)-H(b)=0 (a is a function of b), H(a|b)=0,
	// so I(a;b) - H(a) >= 0 becomes an equality consequence of the
	// constraint and should check True even though it is not a bare
	// Shannon inequality.
	a, b := vartable.Bit(0), vartable.Bit(1)
	constraint := exprstore.New(exprstore.KindEq)
	require.NoError(t, constraint.Add(a.Union(b), 1))
	require.NoError(t, constraint.Sub(b, 1))
	constraint.Collapse()

	goal := exprstore.New(exprstore.KindGe)
	require.NoError(t, goal.AddI2(a, b, 1))
	require.NoError(t, goal.Sub(a, 1))
	goal.Collapse()

	rng := rand.New(rand.NewSource(1))
	p, err := lp.Build(goal, []*exprstore.Expr{constraint}, rng)
	require.NoError(t, err)

	outcome, err := lp.Check(p, goal, 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, lp.OutcomeTrue, outcome)
}
