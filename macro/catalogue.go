package macro

import (
	"fmt"

	"github.com/katalvlaran/minitip/exprstore"
	"github.com/katalvlaran/minitip/vartable"
)

const (
	// DefaultMaxMacros is the catalogue's default capacity (resizable).
	DefaultMaxMacros = 50

	// MaxArity bounds a macro's parameter count, matching MaxVariables:
	// a macro invocation's actual arguments are themselves variable lists
	// over the same universe.
	MaxArity = vartable.MaxVariables
)

// MatchMode selects how Candidates matches a query against the catalogue.
type MatchMode int

const (
	// ModeExact requires the full (name, arity, signature) triple to match.
	ModeExact MatchMode = iota
	// ModePrefix requires only that the query's partial signature (covering
	// partialArgs-1 separators already seen) agree with a macro's
	// corresponding leading separator bits; the macro's arity must be
	// strictly greater than partialArgs (more arguments remain).
	ModePrefix
)

// Descriptor identifies and holds the body of one macro.
//
// Identity is (Name, Arity, Signature). Signature bit i is set iff the
// separator between parameter i and i+1 is '|' (pipe); otherwise it is the
// list separator. Body terms are expressed over abstract parameter slots:
// parameter i is bit i of a vartable.Mask, independent of any concrete
// variable table.
type Descriptor struct {
	Name      string
	Arity     int
	Signature uint32
	Body      *exprstore.Expr
	Standard  bool
}

// sigPrefix returns the low (n-1) bits of sig, the part that describes
// separators among the first n parameters.
func sigPrefix(sig uint32, n int) uint32 {
	if n <= 1 {
		return 0
	}
	return sig & ((uint32(1) << uint(n-1)) - 1)
}

// Catalogue stores macro descriptors by slot, find/add/delete, and expands
// invocations, realizing spec component C4.
type Catalogue struct {
	slots []*Descriptor // nil entries are tombstones (deleted slots)
	max   int
	count int // live (non-tombstone, non-standard) count
}

// New returns a Catalogue with the four standard macros pre-installed and
// capacity max (use DefaultMaxMacros for the spec default of 50).
func New(max int) *Catalogue {
	c := &Catalogue{max: max}
	c.installStandard()
	return c
}

// Resize changes the catalogue's capacity. Shrinking below the current
// live count is rejected.
func (c *Catalogue) Resize(newMax int) error {
	if newMax < c.count {
		return fmt.Errorf("macro: cannot shrink capacity below %d live macros", c.count)
	}
	c.max = newMax
	return nil
}

// Len returns the number of user-defined (non-standard) live macros.
func (c *Catalogue) Len() int {
	return c.count
}

// Slots returns the live descriptors in slot order, standard macros
// included, for iteration by callers such as dump/list.
func (c *Catalogue) Slots() []*Descriptor {
	out := make([]*Descriptor, 0, len(c.slots))
	for _, d := range c.slots {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

// Find returns the descriptor exactly matching (name, arity, signature),
// or nil.
func (c *Catalogue) Find(name string, arity int, signature uint32) *Descriptor {
	for _, d := range c.slots {
		if d != nil && d.Name == name && d.Arity == arity && d.Signature == signature {
			return d
		}
	}
	return nil
}

// Candidates returns every descriptor named name consistent with mode:
//   - ModeExact: arity and signature match exactly (at most one result).
//   - ModePrefix: d.Arity > partialArgs (more parameters remain) and the
//     leading sigPrefix(d.Signature, partialArgs) equals
//     sigPrefix(partialSignature, partialArgs).
//
// Used by the expression parser to decide, after parsing partialArgs
// arguments of an invocation, which separator characters (or a closing
// parenthesis) remain legal.
func (c *Catalogue) Candidates(name string, mode MatchMode, arity int, signature uint32) []*Descriptor {
	var out []*Descriptor
	for _, d := range c.slots {
		if d == nil || d.Name != name {
			continue
		}
		switch mode {
		case ModeExact:
			if d.Arity == arity && d.Signature == signature {
				out = append(out, d)
			}
		case ModePrefix:
			if d.Arity > arity && sigPrefix(d.Signature, arity) == sigPrefix(signature, arity) {
				out = append(out, d)
			}
		}
	}
	return out
}

// HasAnyNamed reports whether any macro (standard or user) is named name,
// at any arity/signature — used by the parser to decide whether "Name("
// should even attempt macro-invocation parsing before back-tracking.
func (c *Catalogue) HasAnyNamed(name string) bool {
	for _, d := range c.slots {
		if d != nil && d.Name == name {
			return true
		}
	}
	return false
}

// Add stores a deep copy of body under (name, arity, signature). It
// rejects:
//   - ErrStandardMacro if name is a standard macro name ("H" or "I").
//   - ErrArityTooLarge if arity exceeds MaxArity.
//   - ErrDuplicateMacro if Find(exact) already hits.
//   - ErrUnknownParameter if body references a slot outside [0, arity).
//   - ErrUnusedParameter if some parameter slot never appears in body.
//   - ErrTooManyMacros at capacity.
//
// On success it returns the new slot index.
func (c *Catalogue) Add(name string, arity int, signature uint32, body *exprstore.Expr) (int, error) {
	if isStandardName(name) {
		return -1, ErrStandardMacro
	}
	if arity <= 0 || arity > MaxArity {
		return -1, ErrArityTooLarge
	}
	if c.Find(name, arity, signature) != nil {
		return -1, ErrDuplicateMacro
	}
	seen := uint32(0)
	for _, t := range body.Terms {
		if t.Subset&^((vartable.Mask(1)<<uint(arity))-1) != 0 {
			return -1, ErrUnknownParameter
		}
		seen |= uint32(t.Subset)
	}
	if seen != (uint32(1)<<uint(arity))-1 {
		return -1, ErrUnusedParameter
	}
	if c.count >= c.max {
		return -1, ErrTooManyMacros
	}

	cp := exprstore.New(exprstore.KindMacroBody)
	cp.Terms = append(cp.Terms, body.Terms...)
	d := &Descriptor{Name: name, Arity: arity, Signature: signature, Body: cp}

	for i, slot := range c.slots {
		if slot == nil {
			c.slots[i] = d
			c.count++
			return i, nil
		}
	}
	c.slots = append(c.slots, d)
	c.count++
	return len(c.slots) - 1, nil
}

// Delete tombstones the macro at slot. Standard macros cannot be deleted.
func (c *Catalogue) Delete(slot int) error {
	if slot < 0 || slot >= len(c.slots) || c.slots[slot] == nil {
		return ErrNotFound
	}
	if c.slots[slot].Standard {
		return ErrStandardMacro
	}
	c.slots[slot] = nil
	c.count--
	return nil
}

// DeleteByHead deletes the macro matching (name, arity, signature) exactly
// and returns the slot it occupied.
func (c *Catalogue) DeleteByHead(name string, arity int, signature uint32) (int, error) {
	for i, d := range c.slots {
		if d != nil && d.Name == name && d.Arity == arity && d.Signature == signature {
			if err := c.Delete(i); err != nil {
				return -1, err
			}
			return i, nil
		}
	}
	return -1, ErrNotFound
}

// Expand emits d's body into dst, scaled by callCoeff, mapping each
// abstract parameter slot i to actuals[i]. For each body term
// (Sbody, Cbody), the emitted term's subset is the union over i in Sbody
// of actuals[i], and its coefficient is Cbody*callCoeff.
func (d *Descriptor) Expand(dst *exprstore.Expr, actuals []vartable.Mask, callCoeff float64) error {
	for _, t := range d.Body.Terms {
		var union vartable.Mask
		for i := 0; i < d.Arity; i++ {
			if t.Subset.Contains(i) {
				union = union.Union(actuals[i])
			}
		}
		if err := dst.Add(union, t.Coeff*callCoeff); err != nil {
			return err
		}
	}
	return nil
}

func isStandardName(name string) bool {
	return name == "H" || name == "I"
}
