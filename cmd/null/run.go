package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/konacodes/null/internal/config"
)

func newRunCmd() *cobra.Command {
	var (
		dumpAST    bool
		dumpTokens bool
		jsonErrors bool
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Preprocess, parse, analyze, and interpret a .nl file",
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

// loadConfig resolves the null.yaml manifest for entryPath: an explicit
// --config path if given, else null.yaml in the entry file's directory.
func loadConfig(explicitPath, entryPath string) (*config.Config, error) {
	path := explicitPath
	if path == "" {
		path = filepath.Join(filepath.Dir(entryPath), "null.yaml")
	}
	return config.Load(path)
}
