package main

import (
	"os"

	"github.com/spf13/cobra"
)

// newInterpCmd is spec.md §6's `interp <f>`: unlike `run`, which would
// prefer a configured backend over the tree-walking interpreter once one
// exists, `interp` always forces interpretation (useful for comparing
// backend output against reference execution, and today identical to
// `run` since no concrete backend.CodeGenerator is wired — see
// DESIGN.md's internal/backend entry).
func newInterpCmd() *cobra.Command {
	var (
		dumpAST    bool
		dumpTokens bool
		jsonErrors bool
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "interp <file>",
		Short: "Force tree-walking interpretation of a .nl file, bypassing any backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, args[0])
			if err != nil {
				return err
			}
			code, err := runPipeline(args[0], cfg, pipelineOptions{
				dumpAST:    dumpAST,
				dumpTokens: dumpTokens,
				jsonErrors: jsonErrors,
				stdout:     os.Stdout,
				stdin:      os.Stdin,
			})
			exitCode = code
			return err
		},
	}
	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST to stderr before running")
	cmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream to stderr before running")
	cmd.Flags().BoolVar(&jsonErrors, "json-errors", false, "print errors and warnings as diagnostics JSON lines instead of plain text")
	cmd.Flags().StringVar(&configPath, "config", "", "path to null.yaml (defaults to null.yaml next to the entry file)")
	return cmd
}
