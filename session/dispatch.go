package session

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode distinguishes ordinary interactive execution from the "silent"
// mode a config file runs under (spec.md §6 "Config file"): in
// ModeSilent, definitions and settings still apply but check and zap
// become no-ops (list still returns its text), matching `.minitiprc`'s
// documented behaviour.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSilent
)

// commandWords is the first-word vocabulary Dispatch recognises,
// spec.md §6's "Interactive commands" list. Order here is only the
// source of truth for abbreviation matching; command bodies are
// implemented in the switch inside Dispatch.
var commandWords = []string{
	"quit", "help", "check", "test", "xcheck", "add", "list", "del",
	"zap", "macro", "run", "style", "syntax", "set", "dump", "save",
	"about", "args",
}

// resolveCommand maps a first word to its canonical command name. When
// abbrev is enabled and word is an unambiguous prefix of exactly one
// commandWords entry, that entry is returned; an exact match always
// wins outright.
func resolveCommand(word string, abbrev bool) (string, bool) {
	for _, w := range commandWords {
		if w == word {
			return w, true
		}
	}
	if !abbrev || word == "" {
		return "", false
	}
	var match string
	for _, w := range commandWords {
		if strings.HasPrefix(w, word) {
			if match != "" {
				return "", false // ambiguous
			}
			match = w
		}
	}
	return match, match != ""
}

// Dispatch executes one line of interactive input (spec.md §6): a bare
// line beginning with a letter is looked up against commandWords (with
// the session's abbrev setting); any other line is an implicit check,
// or an implicit zap when it contains "==". Dispatch returns the
// command's textual result (empty for commands with no output) and any
// error — a parse error is reported exactly as Check/AddConstraint/etc.
// already return it, uninterpreted.
func (s *Session) Dispatch(line string, mode Mode) (string, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", nil
	}
	if trimmed[0] == '#' {
		if s.cfg.comment && mode == ModeNormal {
			return trimmed, nil
		}
		return "", nil
	}

	first := firstByte(trimmed)
	if !isLetterByte(first) {
		if strings.Contains(trimmed, "==") {
			return s.dispatchZap(trimmed, mode)
		}
		return s.dispatchCheck(trimmed, mode, true)
	}

	word, arg := splitWord(trimmed)
	cmd, ok := resolveCommand(word, s.cfg.abbrev)
	if !ok {
		// Not a recognised command word either: fall back to implicit
		// check, exactly as a line starting with a variable name would.
		if strings.Contains(trimmed, "==") {
			return s.dispatchZap(trimmed, mode)
		}
		return s.dispatchCheck(trimmed, mode, true)
	}

	switch cmd {
	case "quit":
		return "", nil
	case "help", "args":
		return s.helpText(), nil
	case "check", "test":
		return s.dispatchCheck(arg, mode, true)
	case "xcheck":
		return s.dispatchCheck(arg, mode, false)
	case "zap":
		return s.dispatchZap(arg, mode)
	case "add":
		return s.dispatchAdd(arg, mode)
	case "list":
		return s.dispatchList(arg), nil
	case "del":
		return "", s.dispatchDel(arg)
	case "macro":
		return s.dispatchMacro(arg, mode)
	case "run":
		return "", s.RunFile(strings.TrimSpace(arg), mode)
	case "style":
		return s.dispatchStyle(arg)
	case "syntax":
		return s.syntaxHelp(arg), nil
	case "set":
		return s.dispatchSet(arg)
	case "dump":
		return "", s.dispatchDump(arg)
	case "save":
		return "", s.dispatchDump(arg)
	case "about":
		return s.About(), nil
	}
	return "", nil
}

func (s *Session) dispatchCheck(arg string, mode Mode, useConstraints bool) (string, error) {
	if mode == ModeSilent {
		return "", nil
	}
	var res CheckResult
	var err error
	if useConstraints {
		res, err = s.Check(arg)
	} else {
		res, err = s.XCheck(arg)
	}
	if err != nil {
		return "", err
	}
	return formatVerdict(res), nil
}

func formatVerdict(res CheckResult) string {
	switch res.Verdict {
	case VerdictTrue:
		if res.Detail != "" {
			return "TRUE (" + res.Detail + ")"
		}
		return "TRUE"
	case VerdictFalse:
		return "FALSE"
	case VerdictGeOnly:
		return "FALSE (only the \">=\" half holds)"
	case VerdictLeOnly:
		return "FALSE (only the \"<=\" half holds)"
	default:
		return res.Detail
	}
}

func (s *Session) dispatchZap(arg string, mode Mode) (string, error) {
	if mode == ModeSilent {
		return "", nil
	}
	return s.Zap(arg)
}

func (s *Session) dispatchAdd(arg string, mode Mode) (string, error) {
	if err := s.AddConstraint(arg); err != nil {
		return "", err
	}
	if mode == ModeNormal {
		return fmt.Sprintf("constraint %d added", len(s.constraints)), nil
	}
	return "", nil
}

func (s *Session) dispatchList(arg string) string {
	arg = strings.TrimSpace(arg)
	idxs := s.resolveListRange(arg)
	var b strings.Builder
	for _, i := range idxs {
		fmt.Fprintf(&b, "%d: %s\n", i+1, s.constraints[i])
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// resolveListRange parses spec.md §6's "list [range|all]" argument: empty
// or "all" means every constraint; otherwise a comma-separated list of
// indices or "i-j" ranges, 1-based as shown by "list".
func (s *Session) resolveListRange(arg string) []int {
	if arg == "" || arg == "all" {
		idxs := make([]int, len(s.constraints))
		for i := range idxs {
			idxs[i] = i
		}
		return idxs
	}
	var out []int
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := parseRange(part); ok {
			for i := lo; i <= hi; i++ {
				if i >= 1 && i <= len(s.constraints) {
					out = append(out, i-1)
				}
			}
			continue
		}
		if n, err := strconv.Atoi(part); err == nil && n >= 1 && n <= len(s.constraints) {
			out = append(out, n-1)
		}
	}
	return out
}

func parseRange(s string) (lo, hi int, ok bool) {
	i := strings.IndexByte(s, '-')
	if i <= 0 {
		return 0, 0, false
	}
	a, errA := strconv.Atoi(strings.TrimSpace(s[:i]))
	b, errB := strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if errA != nil || errB != nil || a > b {
		return 0, 0, false
	}
	return a, b, true
}

func (s *Session) dispatchDel(arg string) error {
	arg = strings.TrimSpace(arg)
	if arg == "" || arg == "all" {
		s.ClearConstraints()
		return nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return ErrNoSuchConstraint
	}
	return s.DeleteConstraint(n - 1)
}

func (s *Session) dispatchMacro(arg string, mode Mode) (string, error) {
	word, rest := splitWord(strings.TrimSpace(arg))
	switch word {
	case "add", "define", "":
		name, arity, sig, err := s.DefineMacro(rest)
		if err != nil || mode == ModeSilent {
			return "", err
		}
		return fmt.Sprintf("macro %s/%d (signature %b) defined", name, arity, sig), nil
	case "delete", "del":
		name, arity, _, err := s.DeleteMacro(rest)
		if err != nil || mode == ModeSilent {
			return "", err
		}
		return fmt.Sprintf("macro %s/%d deleted", name, arity), nil
	case "list":
		var b strings.Builder
		for _, d := range s.Macros() {
			b.WriteString(PrintMacro(d, s.compact()))
			b.WriteByte('\n')
		}
		return strings.TrimSuffix(b.String(), "\n"), nil
	default:
		// No recognised sub-word: treat the whole argument as a
		// definition, the original's default "macro DEF" shorthand.
		name, arity, sig, err := s.DefineMacro(arg)
		if err != nil || mode == ModeSilent {
			return "", err
		}
		return fmt.Sprintf("macro %s/%d (signature %b) defined", name, arity, sig), nil
	}
}

func (s *Session) dispatchStyle(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return s.Style(), nil
	}
	word, rest := splitWord(arg)
	switch word {
	case "full":
		return "", s.SetStyle(fullSyntax())
	case "simple", "compact":
		sep := byte(',')
		rest = strings.TrimSpace(rest)
		if rest != "" {
			sep = rest[0]
		}
		return "", s.SetStyle(compactSyntax(sep))
	}
	return "", fmt.Errorf("session: unknown style %q", arg)
}

func (s *Session) dispatchSet(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return s.settingsText(), nil
	}
	return "", s.applySetting(arg)
}

func (s *Session) dispatchDump(arg string) error {
	path := strings.TrimSpace(arg)
	if path == "" {
		return fmt.Errorf("session: dump requires a file path")
	}
	return s.dumpToFile(path)
}

func (s *Session) helpText() string {
	return "commands: " + strings.Join(commandWords, ", ")
}

func (s *Session) syntaxHelp(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "syntax topics: entropy, constraint, macro"
	}
	return "no help available for " + topic
}

func firstByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func splitWord(s string) (word, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i+1:], " \t")
}
