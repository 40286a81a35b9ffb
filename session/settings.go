package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/minitip/parser"
)

func fullSyntax() parser.Syntax {
	return parser.Syntax{Style: parser.StyleFull, Sep: ';'}
}

func compactSyntax(sep byte) parser.Syntax {
	return parser.Syntax{Style: parser.StyleCompact, Sep: sep}
}

// settingsText renders every runtime parameter and its current value,
// the bare "set" command's output (spec.md §6).
func (s *Session) settingsText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "iterlimit=%d\n", s.cfg.iterLimit)
	fmt.Fprintf(&b, "timelimit=%d\n", int(s.cfg.timeLimit/time.Second))
	fmt.Fprintf(&b, "constrlimit=%d\n", s.cfg.constrCap)
	fmt.Fprintf(&b, "macrolimit=%d\n", s.cfg.macroCap)
	fmt.Fprintf(&b, "run=%s\n", runModeText(s.cfg.runMode))
	fmt.Fprintf(&b, "comment=%s\n", yesNo(s.cfg.comment))
	fmt.Fprintf(&b, "abbrev=%s\n", yesNo(s.cfg.abbrev))
	fmt.Fprintf(&b, "save=%s\n", saveText(s.cfg.save))
	fmt.Fprintf(&b, "simplevar=%s\n", simplevarText(s.cfg.syntax.Extended))
	fmt.Fprintf(&b, "history=%s", s.cfg.historyPath)
	return b.String()
}

func runModeText(m RunMode) string {
	if m == RunLoose {
		return "loose"
	}
	return "strict"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func saveText(s SaveOnQuit) string {
	switch s {
	case SaveYes:
		return "yes"
	case SaveNo:
		return "no"
	default:
		return "ask"
	}
}

func simplevarText(extended bool) string {
	if extended {
		return "extended"
	}
	return "basic"
}

// applySetting parses "name=value" and applies it to the session's
// runtime parameters (spec.md §6 "set [name=value]").
func (s *Session) applySetting(arg string) error {
	i := strings.IndexByte(arg, '=')
	if i < 0 {
		return ErrUnknownSetting
	}
	name := strings.TrimSpace(arg[:i])
	value := strings.TrimSpace(arg[i+1:])

	switch name {
	case "iterlimit":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinIterLimit || n > MaxIterLimit {
			return ErrBadSettingValue
		}
		s.cfg.iterLimit = n
	case "timelimit":
		n, err := strconv.Atoi(value)
		d := time.Duration(n) * time.Second
		if err != nil || d < MinTimeLimit || d > MaxTimeLimit {
			return ErrBadSettingValue
		}
		s.cfg.timeLimit = d
	case "constrlimit":
		n, err := strconv.Atoi(value)
		if err != nil || n < len(s.constraints) {
			return ErrBadSettingValue
		}
		s.cfg.constrCap = n
	case "macrolimit":
		n, err := strconv.Atoi(value)
		if err != nil || n < s.cat.Len() {
			return ErrBadSettingValue
		}
		if err := s.cat.Resize(n); err != nil {
			return ErrBadSettingValue
		}
		s.cfg.macroCap = n
	case "run":
		switch value {
		case "strict":
			s.cfg.runMode = RunStrict
		case "loose":
			s.cfg.runMode = RunLoose
		default:
			return ErrBadSettingValue
		}
	case "comment":
		b, ok := parseYesNo(value)
		if !ok {
			return ErrBadSettingValue
		}
		s.cfg.comment = b
	case "abbrev":
		b, ok := parseYesNo(value)
		if !ok {
			return ErrBadSettingValue
		}
		s.cfg.abbrev = b
	case "save":
		switch value {
		case "yes":
			s.cfg.save = SaveYes
		case "no":
			s.cfg.save = SaveNo
		case "ask":
			s.cfg.save = SaveAsk
		default:
			return ErrBadSettingValue
		}
	case "simplevar":
		switch value {
		case "basic":
			s.cfg.syntax.Extended = false
		case "extended":
			if s.cfg.syntax.Style == parser.StyleCompact && s.cfg.syntax.Sep >= '0' && s.cfg.syntax.Sep <= '9' {
				return ErrAmbiguousSeparator
			}
			s.cfg.syntax.Extended = true
		default:
			return ErrBadSettingValue
		}
	case "history":
		s.cfg.historyPath = value
	default:
		return ErrUnknownSetting
	}
	return nil
}

func parseYesNo(v string) (bool, bool) {
	switch v {
	case "yes":
		return true, true
	case "no":
		return false, true
	default:
		return false, false
	}
}
