package exprstore

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/minitip/vartable"
)

const (
	// MaxTerms bounds the number of distinct-subset terms an Expr can hold.
	MaxTerms = 550

	// Epsilon is the symmetric coefficient tolerance: |c| <= Epsilon is
	// treated as zero. Part of the contract (see package doc) — never
	// tighten silently.
	Epsilon = 1.5e-10
)

// Kind tags the relation (or lack of one) an Expr represents.
type Kind int

const (
	// KindEq is an equality relation: 0 = sum c_i H(S_i).
	KindEq Kind = iota
	// KindGe is an inequality relation: 0 <= sum c_i H(S_i).
	KindGe
	// KindDiff is a purely algebraic difference with no truth judgement
	// (the "zap" operation).
	KindDiff
	// KindMarkov stores a Markov chain: each term is one link's variable
	// set, coefficient always 1.
	KindMarkov
	// KindMacroBody is the raw body of a macro definition, over abstract
	// parameter-slot bits rather than interned variable bits.
	KindMacroBody
)

// Term is one (subset, coefficient) pair. Invariant: after Collapse, every
// surviving Term has |Coeff| > Epsilon and no two Terms share a Subset.
type Term struct {
	Subset vartable.Mask
	Coeff  float64
}

// Expr is a growable, deduplicated linear combination of joint entropies
// together with its Kind, realizing spec component C3.
type Expr struct {
	Kind  Kind
	Terms []Term
}

// New returns an empty Expr of the given kind.
func New(kind Kind) *Expr {
	return &Expr{Kind: kind}
}

// Clear empties e's term list in place, keeping its Kind.
func (e *Expr) Clear() {
	e.Terms = e.Terms[:0]
}

// find returns the index of subset in e.Terms, or -1.
func (e *Expr) find(subset vartable.Mask) int {
	for i := range e.Terms {
		if e.Terms[i].Subset == subset {
			return i
		}
	}
	return -1
}

// Add accumulates coeff onto the term for subset, inserting a new term if
// none exists yet. Fails soft with ErrTooManyTerms at the MaxTerms cap.
// A zero subset is a no-op (H(empty) is identically 0 and never stored).
func (e *Expr) Add(subset vartable.Mask, coeff float64) error {
	if subset == 0 || coeff == 0 {
		return nil
	}
	if idx := e.find(subset); idx >= 0 {
		e.Terms[idx].Coeff += coeff
		return nil
	}
	if len(e.Terms) >= MaxTerms {
		return ErrTooManyTerms
	}
	e.Terms = append(e.Terms, Term{Subset: subset, Coeff: coeff})
	return nil
}

// Sub is Add with the coefficient's sign flipped.
func (e *Expr) Sub(subset vartable.Mask, coeff float64) error {
	return e.Add(subset, -coeff)
}

// AddI2 adds d*(H(a)+H(b)-H(a∪b)) — i.e. d*I(a;b) — to e.
func (e *Expr) AddI2(a, b vartable.Mask, d float64) error {
	if err := e.Add(a, d); err != nil {
		return err
	}
	if err := e.Add(b, d); err != nil {
		return err
	}
	return e.Add(a.Union(b), -d)
}

// AddI3 adds d*(H(a∪c)+H(b∪c)-H(c)-H(a∪b∪c)) — i.e. d*I(a;b|c) — to e.
func (e *Expr) AddI3(a, b, c vartable.Mask, d float64) error {
	if err := e.Add(a.Union(c), d); err != nil {
		return err
	}
	if err := e.Add(b.Union(c), d); err != nil {
		return err
	}
	if err := e.Sub(c, d); err != nil {
		return err
	}
	return e.Sub(a.Union(b).Union(c), d)
}

// Collapse drops every term whose |Coeff| <= Epsilon.
func (e *Expr) Collapse() {
	kept := e.Terms[:0]
	for _, t := range e.Terms {
		if t.Coeff > Epsilon || t.Coeff < -Epsilon {
			kept = append(kept, t)
		}
	}
	e.Terms = kept
}

// IsPositiveGe reports whether e is a KindGe expression all of whose
// surviving coefficients are non-negative — the "TRUE by positive
// combination" trivial case.
func (e *Expr) IsPositiveGe() bool {
	if e.Kind != KindGe {
		return false
	}
	for _, t := range e.Terms {
		if t.Coeff < 0 {
			return false
		}
	}
	return true
}

// SortForPrint stable-sorts e.Terms ascending by popcount(Subset), tying
// on the canonical textual representation of Subset from tbl.
func (e *Expr) SortForPrint(tbl *vartable.Table) {
	sort.SliceStable(e.Terms, func(i, j int) bool {
		pi, pj := e.Terms[i].Subset.PopCount(), e.Terms[j].Subset.PopCount()
		if pi != pj {
			return pi < pj
		}
		return tbl.Repr(e.Terms[i].Subset, true) < tbl.Repr(e.Terms[j].Subset, true)
	})
}

// Print renders e as a signed linear combination: a term whose coefficient
// is +-1 emits a bare sign, any other coefficient is rendered numerically.
// In full style each subset is wrapped H(...); in compact style the subset
// is printed bare. Print sorts first via SortForPrint, so the result is
// independent of accumulation order.
func (e *Expr) Print(tbl *vartable.Table, compact bool) string {
	e.SortForPrint(tbl)

	var b strings.Builder
	for i, t := range e.Terms {
		sign := "+"
		mag := t.Coeff
		if mag < 0 {
			sign = "-"
			mag = -mag
		}
		if i == 0 && sign == "+" {
			sign = ""
		}
		b.WriteString(sign)
		if abs(mag-1) > Epsilon {
			b.WriteString(strconv.FormatFloat(mag, 'g', -1, 64))
		}
		rep := tbl.Repr(t.Subset, compact)
		if compact {
			b.WriteString(rep)
		} else {
			b.WriteString("H(")
			b.WriteString(rep)
			b.WriteString(")")
		}
	}
	if len(e.Terms) == 0 {
		return "0"
	}
	return b.String()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// String implements fmt.Stringer for debugging/%v: it reports only the
// expression's kind and term count, not the terms themselves.
func (e *Expr) String() string {
	return fmt.Sprintf("Expr{kind=%d, terms=%d}", e.Kind, len(e.Terms))
}
