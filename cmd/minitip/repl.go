package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/katalvlaran/minitip/session"
)

// replCompleter offers first-word completion against the fixed command
// vocabulary (spec.md §1 calls a readline-style line editor an "external
// collaborator" worth leaning on rather than reimplementing). There is no
// in-pack example of chzyer/readline's API to ground the wiring on, so
// this follows the library's documented public surface directly.
func replCompleter() readline.AutoCompleter {
	words := []string{
		"quit", "help", "check", "test", "xcheck", "add", "list", "del",
		"zap", "macro", "run", "style", "syntax", "set", "dump", "save",
		"about", "args",
	}
	items := make([]readline.PrefixCompleterInterface, len(words))
	for i, w := range words {
		items[i] = readline.PcItem(w)
	}
	return readline.NewPrefixCompleter(items...)
}

// runREPL drives the interactive loop: read a line, dispatch it against
// sess, print the result, repeat until "quit" or EOF (spec.md §6).
func runREPL(sess *session.Session) error {
	cfg := &readline.Config{
		Prompt:            "minitip> ",
		HistoryFile:       historyFileOrDefault(sess),
		AutoComplete:      replCompleter(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "quit",
		HistorySearchFold: true,
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("minitip: readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stderr(), sess.About())
	fmt.Fprintln(rl.Stderr(), `type "help" for a command list, "quit" to exit`)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "quit" {
			return nil
		}

		out, err := sess.Dispatch(line, session.ModeNormal)
		if err != nil {
			fmt.Fprintln(rl.Stderr(), "error:", err)
			continue
		}
		if out != "" {
			fmt.Fprintln(rl.Stdout(), out)
		}
	}
}

func historyFileOrDefault(sess *session.Session) string {
	if hp := sess.HistoryPath(); hp != "" {
		return hp
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home + "/.minitip_history"
	}
	return ""
}
