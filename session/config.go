// Package session orchestrates one minitip run: the shared variable
// table, macro catalogue, constraint table, and active syntax, together
// with the runtime parameters exposed via the "set" command (spec.md §6).
//
// Session is the realization of spec.md §9's "global-ish mutable state"
// design note: rather than package-level mutable statics, every piece of
// shared state is a field on a Session value, constructed once per run
// and threaded explicitly, mirroring the teacher's builderConfig
// functional-options discipline.
package session

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/minitip/macro"
	"github.com/katalvlaran/minitip/parser"
)

// RunMode selects how RunFile reacts to a nonzero command result.
type RunMode int

const (
	// RunStrict aborts the run file on the first error.
	RunStrict RunMode = iota
	// RunLoose continues past ordinary errors, aborting only on a fatal
	// one (too-long line, nesting too deep).
	RunLoose
)

// SaveOnQuit controls whether an unsaved session prompts, saves, or
// discards state when the interactive loop ends.
type SaveOnQuit int

const (
	SaveAsk SaveOnQuit = iota
	SaveYes
	SaveNo
)

const (
	// DefaultIterLimit is the solver iteration cap (spec.md §5). gonum's
	// Simplex has no iteration-count parameter, so this bound is carried
	// as configuration and reported by "set", but is not independently
	// enforced by the solver call itself — only the time limit is.
	DefaultIterLimit = 80000
	// DefaultTimeLimit is the solver wall-clock cap (spec.md §5).
	DefaultTimeLimit = 10 * time.Second
	// DefaultConstraintLimit is the constraint table's default capacity
	// (spec.md §3 "up to C constraints (default 50, resizable)").
	DefaultConstraintLimit = 50
	// DefaultMacroLimit mirrors macro.DefaultMaxMacros.
	DefaultMacroLimit = macro.DefaultMaxMacros
	// MinIterLimit and MaxIterLimit bound "set iterlimit=..." (spec.md §6).
	MinIterLimit = 100
	MaxIterLimit = 100000000
	// MinTimeLimit and MaxTimeLimit bound "set timelimit=..." in seconds.
	MinTimeLimit = 1 * time.Second
	MaxTimeLimit = 10000 * time.Second
	// MaxRunDepth is the nested "run FILE" depth cap (spec.md §7).
	MaxRunDepth = 5
	// MaxRunLineLength is the fatal run-file line-length cap (spec.md §7).
	MaxRunLineLength = 4096
)

// Option customizes a Session's sessionConfig before construction,
// mirroring builder.BuilderOption exactly: option constructors never
// panic and ignore nil/invalid inputs rather than erroring, except where
// a value is simply out of range, in which case the default is kept.
type Option func(cfg *sessionConfig)

// sessionConfig holds every runtime parameter the "set" command surfaces,
// plus the constructor-only dependencies (logger, macro/constraint
// capacities, initial syntax) a Session needs at birth.
type sessionConfig struct {
	logger logrus.FieldLogger

	syntax parser.Syntax

	iterLimit  int
	timeLimit  time.Duration
	constrCap  int
	macroCap   int
	runMode     RunMode
	comment     bool
	abbrev      bool
	save        SaveOnQuit
	historyPath string
}

// newSessionConfig returns a sessionConfig initialized with the
// documented defaults, then applies each Option in order.
func newSessionConfig(opts ...Option) *sessionConfig {
	cfg := &sessionConfig{
		logger:    logrus.StandardLogger(),
		syntax:    parser.DefaultCompact(),
		iterLimit: DefaultIterLimit,
		timeLimit: DefaultTimeLimit,
		constrCap: DefaultConstraintLimit,
		macroCap:  DefaultMacroLimit,
		runMode:   RunStrict,
		comment:   true,
		abbrev:    true,
		save:      SaveAsk,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger injects a structured logger. A nil logger is a no-op,
// leaving the default standard logrus logger in place.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *sessionConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithSyntax sets the initial parse style (spec.md §6 "-s[C]"/"-S").
func WithSyntax(syn parser.Syntax) Option {
	return func(cfg *sessionConfig) {
		cfg.syntax = syn
	}
}

// WithIterLimit sets the solver iteration cap, accepted only within
// [MinIterLimit, MaxIterLimit]. A value outside that range is a no-op.
func WithIterLimit(n int) Option {
	return func(cfg *sessionConfig) {
		if n >= MinIterLimit && n <= MaxIterLimit {
			cfg.iterLimit = n
		}
	}
}

// WithTimeLimit sets the solver wall-clock cap, accepted only within
// [MinTimeLimit, MaxTimeLimit]. A value outside that range is a no-op.
func WithTimeLimit(d time.Duration) Option {
	return func(cfg *sessionConfig) {
		if d >= MinTimeLimit && d <= MaxTimeLimit {
			cfg.timeLimit = d
		}
	}
}

// WithConstraintCap sets the constraint-table capacity. Non-positive is
// a no-op.
func WithConstraintCap(n int) Option {
	return func(cfg *sessionConfig) {
		if n > 0 {
			cfg.constrCap = n
		}
	}
}

// WithMacroCap sets the macro-catalogue capacity. Non-positive is a
// no-op.
func WithMacroCap(n int) Option {
	return func(cfg *sessionConfig) {
		if n > 0 {
			cfg.macroCap = n
		}
	}
}

// WithRunMode sets run-file strict/loose behaviour.
func WithRunMode(m RunMode) Option {
	return func(cfg *sessionConfig) { cfg.runMode = m }
}

// WithComment sets whether run-file "#" lines are echoed.
func WithComment(echo bool) Option {
	return func(cfg *sessionConfig) { cfg.comment = echo }
}

// WithAbbrev sets whether unambiguous command-prefix matching is allowed.
func WithAbbrev(allow bool) Option {
	return func(cfg *sessionConfig) { cfg.abbrev = allow }
}

// WithSaveOnQuit sets the save-on-quit policy.
func WithSaveOnQuit(s SaveOnQuit) Option {
	return func(cfg *sessionConfig) { cfg.save = s }
}

// WithHistoryPath sets the readline history file path (spec.md §6 "-f
// FILE"). An empty path is a no-op.
func WithHistoryPath(path string) Option {
	return func(cfg *sessionConfig) {
		if path != "" {
			cfg.historyPath = path
		}
	}
}

// seedRand returns a *rand.Rand seeded once per Session (spec.md §5):
// wall-clock XOR process id, never crypto/rand — the permutation is a
// numerical-robustness hack, not a security control.
func seedRand(pid int) *rand.Rand {
	seed := time.Now().UnixNano() ^ int64(pid)
	return rand.New(rand.NewSource(seed))
}
