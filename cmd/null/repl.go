package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/konacodes/null/internal/analysis"
	"github.com/konacodes/null/internal/arena"
	"github.com/konacodes/null/internal/interp"
	"github.com/konacodes/null/internal/parser"
)

// replEntry mirrors internal/interp.replEntry: the REPL driver's fallback
// entry point when no `main` is defined (spec.md §4.5: "main if defined;
// else __repl_main__").
const replEntry = "__repl_main__"

// newReplCmd is spec.md §6's `repl`. Each line the user enters is wrapped
// as the body of a synthetic `fn __repl_main__() -> i64 do ... end` and
// run through the full pipeline from scratch — there is no incremental
// global-scope carryover between lines, since spec.md's interpreter has
// no notion of a persistent top-level session distinct from one
// `Interp.Run` call.
func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read-eval-print loop over stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = runRepl(os.Stdin, os.Stdout)
			return nil
		},
	}
	return cmd
}

func runRepl(in *os.File, out *os.File) int {
	scanner := bufio.NewScanner(in)
	lastCode := 0
	for {
		fmt.Fprint(out, "null> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			break
		}
		lastCode = evalReplLine(line, out)
	}
	return lastCode
}

func evalReplLine(line string, out *os.File) int {
	src := fmt.Sprintf("fn %s() -> i64 do\n  %s\n  ret 0\nend\n", replEntry, line)

	reporter := analysis.NewErrorReporter()
	a := arena.New()
	prog, hadSyntaxError := parser.Parse(src, a, reporter)
	if hadSyntaxError {
		fmt.Fprint(os.Stderr, reporter.FormatErrors())
		return 1
	}

	an := analysis.New()
	an.Reporter = reporter
	if err := an.Analyze(prog); err != nil {
		fmt.Fprint(os.Stderr, reporter.FormatErrors())
		return 1
	}

	it := interp.New(reporter, out, os.Stdin)
	code := it.Run(prog)
	fmt.Fprint(os.Stderr, reporter.FormatWarnings())
	if reporter.HasErrors() {
		fmt.Fprint(os.Stderr, reporter.FormatErrors())
	}
	return code
}
