package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/konacodes/null/internal/analysis"
	"github.com/konacodes/null/internal/arena"
	"github.com/konacodes/null/internal/backend"
	"github.com/konacodes/null/internal/parser"
	"github.com/konacodes/null/internal/preprocess"
)

// newBuildCmd is spec.md §6's `build <f> -o <out>`. The native code
// generator is an external collaborator (spec.md §1: "out of scope");
// this command runs the core pipeline through analysis and then reports
// 127 (spec.md's "linker exec failure" exit code), since no
// backend.CodeGenerator ships in this build: with no backend configured
// it stops there, and with one named in the manifest it builds the
// backend.Module but has no generator to hand it to. Failures before
// that point (config, preprocess, parse, analysis) exit 1.
func newBuildCmd() *cobra.Command {
	var (
		outPath    string
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Build a .nl file to a native binary via a configured backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, args[0])
			if err != nil {
				return err
			}

			pp := preprocess.New(preprocess.Options{
				StdRoot:    cfg.StdRoot,
				MaxSize:    int(cfg.MaxSourceBytes),
				MaxImports: cfg.MaxImports,
			})
			src, err := pp.Run(args[0])
			if err != nil {
				exitCode = 1
				return err
			}

			reporter := analysis.NewErrorReporter()
			a := arena.New()
			prog, hadSyntaxError := parser.Parse(src, a, reporter)
			if hadSyntaxError {
				exitCode = 1
				return fmt.Errorf("parse failed:\n%s", reporter.FormatErrors())
			}

			an := analysis.New()
			an.Reporter = reporter
			if err := an.Analyze(prog); err != nil {
				exitCode = 1
				return fmt.Errorf("analysis failed:\n%s", reporter.FormatErrors())
			}

			if cfg.Backend == "none" || cfg.Backend == "" {
				exitCode = 127
				return fmt.Errorf("no backend configured (set `backend:` in null.yaml); nothing to link")
			}

			// backend.BuildModule reshapes the analyzed program into the
			// entity descriptions a CodeGenerator consumes; no concrete
			// CodeGenerator ships in this repo (spec.md §1's external
			// collaborator), so naming one here can never succeed yet.
			_ = backend.BuildModule(prog)
			exitCode = 127
			return fmt.Errorf("backend %q is not available in this build", cfg.Backend)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output binary path")
	cmd.Flags().StringVar(&configPath, "config", "", "path to null.yaml (defaults to null.yaml next to the entry file)")
	return cmd
}
