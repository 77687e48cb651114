package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exitCode is stashed by whichever subcommand runs so main can turn it
// into a process exit status after cobra has finished printing usage
// errors to stderr (spec.md §6: "Exit codes: 0 success, 1 any
// compilation or runtime error, 127 linker exec failure").
var exitCode int

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "null",
		Short:         "null - preprocessor, lexer, parser, analyzer, and tree-walking interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newInterpCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newTestCmd())
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "null:", err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}
