package session

import (
	"fmt"
	"hash/fnv"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/minitip/exprstore"
	"github.com/katalvlaran/minitip/lp"
	"github.com/katalvlaran/minitip/macro"
	"github.com/katalvlaran/minitip/parser"
	"github.com/katalvlaran/minitip/vartable"
)

// Verdict classifies the outcome of a Check.
type Verdict int

const (
	// VerdictTrue: the goal holds.
	VerdictTrue Verdict = iota
	// VerdictFalse: the goal does not hold.
	VerdictFalse
	// VerdictGeOnly: an equality goal's ">= 0" half holds, "<= 0" does not.
	VerdictGeOnly
	// VerdictLeOnly: an equality goal's "<= 0" half holds, ">= 0" does not.
	VerdictLeOnly
	// VerdictInfo: an informative, non-LP outcome (trivial or single-term);
	// Detail carries the message. A positive combination is reported as
	// VerdictTrue with a Detail instead.
	VerdictInfo
)

// CheckResult is the user-facing report of one Check call.
type CheckResult struct {
	Verdict Verdict
	Detail  string
}

// Session bundles the process-local mutable state one minitip run shares
// across commands: the interned variable universe, the macro catalogue,
// the ordered constraint table, the active syntax, and the runtime
// parameters exposed by "set" (spec.md §9's "global-ish mutable state",
// realized as fields rather than package statics).
type Session struct {
	cfg *sessionConfig

	tbl *vartable.Table
	cat *macro.Catalogue

	constraints []string

	logger   logrus.FieldLogger
	rng      *rand.Rand
	runDepth int
}

// New returns a fresh Session: an empty variable table, a catalogue
// pre-seeded with the standard H/I macros, no constraints, and a PRNG
// seeded from wall-clock XOR process id (spec.md §5) — never
// crypto/rand, per spec.md §9's explicit instruction.
func New(opts ...Option) *Session {
	cfg := newSessionConfig(opts...)
	return &Session{
		cfg:    cfg,
		tbl:    vartable.New(),
		cat:    macro.New(cfg.macroCap),
		logger: cfg.logger,
		rng:    seedRand(os.Getpid()),
	}
}

// Syntax returns the session's active parse style.
func (s *Session) Syntax() parser.Syntax {
	return s.cfg.syntax
}

// HistoryPath returns the configured readline history file path, or ""
// if none was set (spec.md §6 "-f FILE").
func (s *Session) HistoryPath() string {
	return s.cfg.historyPath
}

// compact reports whether the active syntax renders subsets bare
// (compact style) rather than H(...)-wrapped (full style).
func (s *Session) compact() bool {
	return s.cfg.syntax.Style == parser.StyleCompact
}

// advanceLine folds line's FNV-1a hash into the session's PRNG stream
// before the next permutation draw (spec.md §5): each submitted line
// perturbs the sequence so repeated identical checks don't necessarily
// draw the identical permutation twice in a row.
func (s *Session) advanceLine(line string) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(line))
	s.rng.Seed(int64(h.Sum64()) ^ s.rng.Int63())
}

// newParser constructs a one-shot Parser over src against this session's
// shared table and catalogue.
func (s *Session) newParser(src string) *parser.Parser {
	return parser.New(src, s.cfg.syntax, s.tbl, s.cat)
}

// Check parses line as a checkable expression (spec.md §4.5) and, unless
// it classifies as a trivial/informative outcome, builds and solves the
// LP against every active constraint (spec.md §4.8–§4.9).
func (s *Session) Check(line string) (CheckResult, error) {
	return s.check(line, true)
}

// XCheck is Check with the constraint table ignored ("xcheck": check the
// entropy relation against the bare Shannon inequalities only).
func (s *Session) XCheck(line string) (CheckResult, error) {
	return s.check(line, false)
}

func (s *Session) check(line string, useConstraints bool) (CheckResult, error) {
	s.advanceLine(line)
	p := s.newParser(line)
	goal, outcome, err := p.ParseExpression()
	if err != nil {
		return CheckResult{}, err
	}
	s.logger.WithFields(logrus.Fields{"terms": len(goal.Terms), "outcome": outcome}).Debug("goal parsed")

	switch outcome {
	case parser.OutcomeTrivialEqZero:
		return CheckResult{Verdict: VerdictInfo, Detail: "simplifies to 0 = 0"}, nil
	case parser.OutcomeTrivialGeZero:
		return CheckResult{Verdict: VerdictInfo, Detail: "simplifies to 0 <= 0"}, nil
	case parser.OutcomePositiveCombination:
		return CheckResult{Verdict: VerdictTrue, Detail: "positive combination: " + goal.Print(s.tbl, s.compact())}, nil
	case parser.OutcomeSingleTerm:
		return CheckResult{Verdict: VerdictInfo, Detail: "single term, no check performed: " + goal.Print(s.tbl, s.compact())}, nil
	}

	var constraints []*exprstore.Expr
	if useConstraints {
		constraints, err = s.parseActiveConstraints()
		if err != nil {
			return CheckResult{}, err
		}
	}

	problem, err := lp.Build(goal, constraints, s.rng)
	if err != nil {
		return CheckResult{}, err
	}
	out, err := lp.Check(problem, goal, s.cfg.timeLimit)
	if err != nil {
		s.logger.WithError(err).Warn("solver call failed")
		return CheckResult{}, err
	}
	s.logger.WithField("verdict", out).Info("check complete")
	return CheckResult{Verdict: verdictFromOutcome(out)}, nil
}

func verdictFromOutcome(o lp.Outcome) Verdict {
	switch o {
	case lp.OutcomeTrue:
		return VerdictTrue
	case lp.OutcomeGeOnly:
		return VerdictGeOnly
	case lp.OutcomeLeOnly:
		return VerdictLeOnly
	default:
		return VerdictFalse
	}
}

// parseActiveConstraints re-parses every stored constraint string against
// this session's shared variable table (spec.md §3: "re-parsed at every
// check to share variable interning with the current goal").
func (s *Session) parseActiveConstraints() ([]*exprstore.Expr, error) {
	out := make([]*exprstore.Expr, 0, len(s.constraints))
	for _, raw := range s.constraints {
		p := s.newParser(raw)
		e, err := p.ParseConstraint()
		if err != nil {
			return nil, fmt.Errorf("session: re-parsing stored constraint %q: %w", raw, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Zap parses line as a "zap" diff expression and returns its printed
// algebraic simplification (spec.md §6 "print the algebraic
// simplification").
func (s *Session) Zap(line string) (string, error) {
	p := s.newParser(line)
	e, err := p.ParseDiff()
	if err != nil {
		return "", err
	}
	return e.Print(s.tbl, s.compact()), nil
}

// AddConstraint validates line as a constraint and, on success, appends
// it verbatim to the constraint table.
func (s *Session) AddConstraint(line string) error {
	if len(s.constraints) >= s.cfg.constrCap {
		return ErrTooManyConstraints
	}
	p := s.newParser(line)
	if _, err := p.ParseConstraint(); err != nil {
		return err
	}
	s.constraints = append(s.constraints, line)
	s.logger.WithField("count", len(s.constraints)).Info("constraint added")
	return nil
}

// Constraints returns the constraint table in add order.
func (s *Session) Constraints() []string {
	out := make([]string, len(s.constraints))
	copy(out, s.constraints)
	return out
}

// DeleteConstraint removes the constraint at position idx (0-based).
func (s *Session) DeleteConstraint(idx int) error {
	if idx < 0 || idx >= len(s.constraints) {
		return ErrNoSuchConstraint
	}
	s.constraints = append(s.constraints[:idx], s.constraints[idx+1:]...)
	return nil
}

// ClearConstraints removes every stored constraint ("del all").
func (s *Session) ClearConstraints() {
	s.constraints = s.constraints[:0]
}

// DefineMacro parses and installs a macro definition ("Name(params) =
// body"), returning its (name, arity, signature) identity.
func (s *Session) DefineMacro(line string) (name string, arity int, signature uint32, err error) {
	p := s.newParser(line)
	name, arity, signature, err = p.ParseMacroDefinition()
	if err == nil {
		s.logger.WithFields(logrus.Fields{"name": name, "arity": arity}).Info("macro defined")
	}
	return name, arity, signature, err
}

// DeleteMacro parses a macro-deletion header ("Name(params)") and removes
// the exactly-matching catalogue entry.
func (s *Session) DeleteMacro(line string) (name string, arity int, signature uint32, err error) {
	p := s.newParser(line)
	return p.ParseMacroDeletion()
}

// Macros returns every user-defined (non-standard) macro descriptor, in
// catalogue order, for "macro list".
func (s *Session) Macros() []*macro.Descriptor {
	var out []*macro.Descriptor
	for _, d := range s.cat.Slots() {
		if !d.Standard {
			out = append(out, d)
		}
	}
	return out
}

// macroParamName returns the conventional parameter name for abstract
// slot i: a single lowercase letter, followed by primes past "z" —
// exactly the compact-identifier alphabet parseCompactIdentifier accepts
// ("a".."z", "a'", "b'", ...) — so a macro with up to MaxArity (27)
// parameters still renders as legal compact syntax. Used only to render
// a macro body back into readable text for "macro list" and "dump".
func macroParamName(i int) string {
	letter := rune('a' + i%26)
	primes := i / 26
	return string(letter) + strings.Repeat("'", primes)
}

// PrintMacro renders d as "Name(p0,p1,...) = body", the format both
// "macro list" and "dump" use (spec.md §4.3 "sort+print").
func PrintMacro(d *macro.Descriptor, compact bool) string {
	paramTbl := vartable.New()
	for i := 0; i < d.Arity; i++ {
		_, _ = paramTbl.Intern(macroParamName(i))
	}

	var b []byte
	b = append(b, d.Name...)
	b = append(b, '(')
	for i := 0; i < d.Arity; i++ {
		if i > 0 {
			if d.Signature&(1<<uint(i-1)) != 0 {
				b = append(b, '|')
			} else {
				b = append(b, ',')
			}
		}
		b = append(b, macroParamName(i)...)
	}
	b = append(b, ") = "...)
	b = append(b, d.Body.Print(paramTbl, compact)...)
	return string(b)
}

// Style reports the active syntax as a "style" command would print it.
func (s *Session) Style() string {
	if s.cfg.syntax.Style == parser.StyleFull {
		return "style full"
	}
	return fmt.Sprintf("style simple %c", s.cfg.syntax.Sep)
}

// SetStyle switches the active syntax. A compact separator that is also
// a decimal digit while simplevar=extended is active is refused
// (spec.md §9 Open Question; ErrAmbiguousSeparator), rather than guessed
// at. The current simplevar=extended/basic setting carries over across a
// style switch, since it is a property of compact-identifier lexing, not
// of the style command itself.
func (s *Session) SetStyle(syn parser.Syntax) error {
	syn.Extended = s.cfg.syntax.Extended
	if syn.Style == parser.StyleCompact && syn.Extended &&
		syn.Sep >= '0' && syn.Sep <= '9' {
		return ErrAmbiguousSeparator
	}
	s.cfg.syntax = syn
	return nil
}

// Dump writes a self-contained script reproducing this session's state:
// the active style, every user macro (catalogue order), and every
// constraint verbatim (spec.md §6 "Dump format").
func (s *Session) Dump(w io.Writer) error {
	if _, err := fmt.Fprintln(w, s.Style()); err != nil {
		return err
	}
	for _, d := range s.Macros() {
		if _, err := fmt.Fprintln(w, "macro add", PrintMacro(d, s.compact())); err != nil {
			return err
		}
	}
	for _, c := range s.constraints {
		if _, err := fmt.Fprintln(w, "add", c); err != nil {
			return err
		}
	}
	return nil
}

// About returns the session's static identification banner (spec.md §6
// "about" command).
func (s *Session) About() string {
	return "minitip -- an interactive Shannon-type information inequality prover"
}
