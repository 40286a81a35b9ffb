package vartable

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// MaxVariables bounds the variable universe so a Mask fits uint32 and
	// the elemental-inequality count (n(n-1)*2^(n-3)) stays tractable.
	MaxVariables = 27

	// MaxNameLength bounds an individual variable identifier.
	MaxNameLength = 25

	// MaxReprLength clamps the canonical textual rendering of a variable
	// list produced by Repr.
	MaxReprLength = 200
)

// Table interns variable identifiers in insertion order and maps each to
// the single bit 1<<i. It is the realization of spec component C1.
//
// Table is not safe for concurrent use.
type Table struct {
	names   []string       // index -> name, insertion order
	indexOf map[string]int // name -> index

	noNew    bool   // "arm_no_new" guard: only already-interned names are legal
	noNewMsg string // error text reported while the guard is armed (unused; ErrNoNewVariables is returned)

	reprBufs [2]strings.Builder // rotating buffers for Repr
	reprNext int
}

// New returns an empty variable table.
func New() *Table {
	return &Table{
		indexOf: make(map[string]int, MaxVariables),
	}
}

// Reset empties the table, as if newly constructed. Variable handles are
// process-lived only within one parse: callers reset at the start of each
// standalone parse unless "keep" is requested (see spec.md §3 Lifecycle).
func (t *Table) Reset() {
	t.names = t.names[:0]
	for k := range t.indexOf {
		delete(t.indexOf, k)
	}
	t.noNew = false
}

// ArmNoNew arms the "no new variables" guard: subsequent Intern calls for
// names not already present fail hard with ErrNoNewVariables. Used while
// parsing a macro body so only declared parameters are usable.
func (t *Table) ArmNoNew() {
	t.noNew = true
}

// DisarmNoNew releases the guard armed by ArmNoNew.
func (t *Table) DisarmNoNew() {
	t.noNew = false
}

// Len returns the number of interned variables.
func (t *Table) Len() int {
	return len(t.names)
}

// Name returns the identifier interned at index i.
func (t *Table) Name(i int) string {
	return t.names[i]
}

// Lookup returns the index of name without interning it, and whether it is
// already present.
func (t *Table) Lookup(name string) (int, bool) {
	idx, ok := t.indexOf[name]
	return idx, ok
}

// Intern returns the index of name, interning it if this is its first
// appearance. It fails soft with ErrTooManyVariables at the MaxVariables
// cap, soft with ErrIdentifierTooLong over MaxNameLength, and hard with
// ErrNoNewVariables when the no-new guard is armed and name is unknown.
func (t *Table) Intern(name string) (int, error) {
	if name == "" {
		return 0, ErrEmptyIdentifier
	}
	if idx, ok := t.indexOf[name]; ok {
		return idx, nil
	}
	if t.noNew {
		return 0, ErrNoNewVariables
	}
	if len(name) > MaxNameLength {
		return 0, fmt.Errorf("vartable: identifier %q exceeds %d characters: %w", name, MaxNameLength, ErrIdentifierTooLong)
	}
	if len(t.names) >= MaxVariables {
		return 0, fmt.Errorf("vartable: cannot intern %q, cap is %d: %w", name, MaxVariables, ErrTooManyVariables)
	}
	idx := len(t.names)
	t.names = append(t.names, name)
	t.indexOf[name] = idx
	return idx, nil
}

// Repr renders mask as a canonical, alphabetically-sorted textual list of
// its member variable names. compact controls punctuation: full style
// joins names with ",", compact style concatenates them bare. Output is
// clamped to MaxReprLength characters. Uses one of two rotating internal
// buffers so two successive Repr calls (e.g. for a conditional entropy's
// two sides) don't alias each other's result.
func (t *Table) Repr(m Mask, compact bool) string {
	var names []string
	for i := 0; i < len(t.names); i++ {
		if m.Contains(i) {
			names = append(names, t.names[i])
		}
	}
	sort.Strings(names)

	b := &t.reprBufs[t.reprNext]
	t.reprNext = (t.reprNext + 1) % len(t.reprBufs)
	b.Reset()

	sep := ","
	if compact {
		sep = ""
	}
	for i, n := range names {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(n)
	}
	out := b.String()
	if len(out) > MaxReprLength {
		out = out[:MaxReprLength]
	}
	return out
}
