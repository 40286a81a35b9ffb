// Command minitip is an interactive proof assistant for Shannon-type
// information inequalities: given an entropy expression and a set of
// constraints, it decides whether the expression follows from the
// elemental Shannon inequalities conjoined with the constraints.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/minitip/parser"
	"github.com/katalvlaran/minitip/session"
)

// Exit codes per spec.md §6.
const (
	exitTrue       = 0
	exitFalse      = 1
	exitSyntaxErr  = 2
	exitOtherError = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		flagVersion  bool
		flagCompact  string
		flagFull     bool
		flagHistory  string
		flagConfig   string
		flagMacroDef string
		flagQuiet    bool
		flagVerbose  bool
	)

	root := &cobra.Command{
		Use:           "minitip [expression] [constraint...]",
		Short:         "an interactive Shannon-type information inequality prover",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
	}

	flags := root.Flags()
	flags.BoolVarP(&flagVersion, "version", "v", false, "print version and exit")
	flags.StringVarP(&flagCompact, "compact", "s", "", "use compact style (optional separator character)")
	flags.Lookup("compact").NoOptDefVal = ","
	flags.BoolVarP(&flagFull, "full", "S", false, "use full style")
	flags.StringVarP(&flagHistory, "history", "f", "", "history file path")
	flags.StringVarP(&flagConfig, "config", "c", "", "config file path ('-' disables)")
	flags.StringVarP(&flagMacroDef, "macro", "m", "", "pre-install a macro definition")
	flags.BoolVarP(&flagQuiet, "quiet", "q", false, "quiet offline mode: process arguments, no REPL")
	flags.BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	root.Long = root.Short + "\n\nUse '--' to end the flag list if an expression argument begins with '-'."

	root.RunE = func(cmd *cobra.Command, positional []string) error {
		if flagVersion {
			fmt.Println(aboutBanner())
			return nil
		}

		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		if flagVerbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.WarnLevel)
		}

		syn := parser.DefaultCompact()
		switch {
		case flagFull:
			syn = parser.DefaultFull()
		case flagCompact != "":
			if !strings.ContainsRune(parser.CompactSeparators, rune(flagCompact[0])) {
				return fmt.Errorf("minitip: %q is not a legal compact separator", flagCompact)
			}
			syn = parser.Syntax{Style: parser.StyleCompact, Sep: flagCompact[0]}
		}

		sess := session.New(
			session.WithLogger(logger),
			session.WithSyntax(syn),
			session.WithHistoryPath(flagHistory),
		)

		if err := loadConfig(sess, flagConfig); err != nil {
			return err
		}
		if flagMacroDef != "" {
			if _, _, _, err := sess.DefineMacro(flagMacroDef); err != nil {
				return fmt.Errorf("minitip: -m: %w", err)
			}
		}

		if len(positional) > 0 {
			code := runPositional(sess, positional)
			os.Exit(code)
		}

		if flagQuiet {
			return nil
		}
		return runREPL(sess)
	}

	root.SetArgs(args)
	code := exitTrue
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "minitip:", err)
		code = exitOtherError
	}
	return code
}

// loadConfig executes the config file in silent mode (SPEC_FULL.md
// §4.10): an explicit -c path is fatal if missing; the default
// ".minitiprc" is silently skipped when absent.
func loadConfig(sess *session.Session, explicit string) error {
	if explicit == "-" {
		return nil
	}
	path := explicit
	if path == "" {
		path = ".minitiprc"
	}
	err := sess.RunFile(path, session.ModeSilent)
	if err != nil {
		var perr *os.PathError
		if explicit == "" && errors.As(err, &perr) && os.IsNotExist(perr) {
			return nil
		}
		return fmt.Errorf("minitip: config file %q: %w", path, err)
	}
	return nil
}

// runPositional implements spec.md §6's command-line expression/
// constraint positional arguments: the first is the goal (or a zap if it
// contains a top-level "=="), the rest are constraints added before the
// check.
func runPositional(sess *session.Session, positional []string) int {
	goal := positional[0]
	for _, c := range positional[1:] {
		if err := sess.AddConstraint(c); err != nil {
			fmt.Fprintln(os.Stderr, "minitip:", err)
			return exitSyntaxErr
		}
	}

	if strings.Contains(goal, "==") {
		out, err := sess.Zap(goal)
		if err != nil {
			fmt.Fprintln(os.Stderr, "minitip:", err)
			return exitSyntaxErr
		}
		fmt.Println(out)
		return exitTrue
	}

	res, err := sess.Check(goal)
	if err != nil {
		fmt.Fprintln(os.Stderr, "minitip:", err)
		return exitSyntaxErr
	}
	switch res.Verdict {
	case session.VerdictTrue:
		fmt.Println("TRUE")
		return exitTrue
	case session.VerdictFalse, session.VerdictGeOnly, session.VerdictLeOnly:
		fmt.Println("FALSE")
		return exitFalse
	default:
		fmt.Println(res.Detail)
		return exitTrue
	}
}

func aboutBanner() string {
	return "minitip " + version + " -- an interactive Shannon-type information inequality prover\n" +
		"built " + buildDate
}

var (
	version   = "dev"
	buildDate = time.Now().Format("2006-01-02")
)
