package session

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// RunFile executes path line by line through Dispatch (spec.md §6 "run
// FILE"; also how `.minitiprc` is realized, per SPEC_FULL.md §4.10, by
// passing mode=ModeSilent). Nesting (a run file that itself runs another
// via a "run" line) is capped at MaxRunDepth, tracked on the session
// since Dispatch — not RunFile itself — is what recurses; a line of
// MaxRunLineLength bytes or more, or nesting past MaxRunDepth, is fatal
// regardless of the strict/loose run mode (spec.md §7). In ModeNormal each
// line's non-empty Dispatch output (including an echoed "#" line when the
// comment setting is on) is printed to standard output.
func (s *Session) RunFile(path string, mode Mode) error {
	if s.runDepth >= MaxRunDepth {
		return ErrRunFileTooDeep
	}
	s.runDepth++
	defer func() { s.runDepth-- }()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("session: opening run file %q: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, MaxRunLineLength), MaxRunLineLength)
	for sc.Scan() {
		line := sc.Text()
		if len(line) >= MaxRunLineLength {
			return ErrRunLineTooLong
		}
		out, err := s.Dispatch(line, mode)
		if err != nil {
			s.logger.WithError(err).Warn("run file line failed")
			if s.cfg.runMode == RunStrict || errors.Is(err, ErrRunFileTooDeep) || errors.Is(err, ErrRunLineTooLong) {
				return err
			}
			continue
		}
		if out != "" && mode == ModeNormal {
			fmt.Println(out)
		}
	}
	if err := sc.Err(); err != nil {
		return ErrRunLineTooLong
	}
	return nil
}

// dumpToFile writes Dump's script to path, creating or truncating it.
func (s *Session) dumpToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("session: creating dump file %q: %w", path, err)
	}
	defer f.Close()
	return s.Dump(f)
}
