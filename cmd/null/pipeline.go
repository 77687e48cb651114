package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"

	"github.com/konacodes/null/internal/analysis"
	"github.com/konacodes/null/internal/arena"
	"github.com/konacodes/null/internal/ast"
	"github.com/konacodes/null/internal/config"
	"github.com/konacodes/null/internal/diagnostics"
	"github.com/konacodes/null/internal/interp"
	"github.com/konacodes/null/internal/lexer"
	"github.com/konacodes/null/internal/parser"
	"github.com/konacodes/null/internal/preprocess"
	"github.com/konacodes/null/internal/token"
)

// pipelineOptions configures one run of the full pipeline, shared by the
// run/interp/test commands.
type pipelineOptions struct {
	dumpTokens bool
	dumpAST    bool
	jsonErrors bool
	stdout     io.Writer
	stdin      io.Reader
}

// codeForErrorType maps an analysis.ErrorType to the closed diagnostics.Code
// taxonomy (spec.md §7). Individual call sites inside the parser/analyzer
// report free-form messages rather than a specific Code, so this picks the
// one stage-level code each ErrorType corresponds to.
func codeForErrorType(t analysis.ErrorType) diagnostics.Code {
	switch t {
	case analysis.SyntaxError:
		return diagnostics.CodeParseExpectedToken
	case analysis.TypeError:
		return diagnostics.CodeAnaTypeMismatch
	case analysis.RuntimeError:
		return diagnostics.CodeRtUndefinedVar
	default:
		return diagnostics.CodeAnaUnknownIdentifier
	}
}

// toDiagnostics adapts a reporter's accumulated CompilerErrors into
// diagnostics.Diagnostic values for --json-errors output, reusing the
// message text analysis/interp already composed rather than re-deriving it
// from Params.
func toDiagnostics(errs []analysis.CompilerError, sev diagnostics.Severity) []diagnostics.Diagnostic {
	out := make([]diagnostics.Diagnostic, 0, len(errs))
	for _, e := range errs {
		d := diagnostics.New(codeForErrorType(e.Type), sev, e.File, e.Line, e.Column, nil)
		d.Message = e.Message
		out = append(out, d)
	}
	return out
}

// printDiagnosticsJSON renders one diagnostic per line to stderr.
func printDiagnosticsJSON(ds []diagnostics.Diagnostic) {
	for _, d := range ds {
		b, err := d.RenderJSON()
		if err != nil {
			continue
		}
		fmt.Fprintln(os.Stderr, string(b))
	}
}

// runPipeline preprocesses, lexes+parses, analyzes, and interprets
// entryPath, returning the interpreter's exit code. A single
// analysis.ErrorReporterImpl is threaded through parse and analyze so
// syntax and semantic errors land in one sorted report (spec.md §7),
// matching internal/interp's own shared-reporter convention.
func runPipeline(entryPath string, cfg *config.Config, opts pipelineOptions) (int, error) {
	pp := preprocess.New(preprocess.Options{
		StdRoot:    cfg.StdRoot,
		MaxSize:    int(cfg.MaxSourceBytes),
		MaxImports: cfg.MaxImports,
	})
	src, err := pp.Run(entryPath)
	if err != nil {
		return 1, err
	}

	if opts.dumpTokens {
		dumpTokenStream(src)
	}

	reporter := analysis.NewErrorReporter()
	a := arena.New()
	prog, hadSyntaxError := parser.Parse(src, a, reporter)

	if opts.dumpAST {
		fmt.Fprintln(os.Stderr, ast.Print(prog))
	}

	if hadSyntaxError {
		opts.reportErrors(reporter)
		return 1, nil
	}

	an := analysis.New()
	an.Reporter = reporter
	if err := an.Analyze(prog); err != nil {
		opts.reportErrors(reporter)
		return 1, nil
	}

	it := interp.New(reporter, opts.stdout, opts.stdin)
	code := it.Run(prog)
	opts.reportWarnings(reporter)
	if reporter.HasErrors() {
		opts.reportErrors(reporter)
	}
	return code, nil
}

// reportErrors prints reporter's accumulated errors, as diagnostics JSON
// lines when opts.jsonErrors is set, else as the reporter's own plain text.
func (opts pipelineOptions) reportErrors(reporter *analysis.ErrorReporterImpl) {
	if opts.jsonErrors {
		printDiagnosticsJSON(toDiagnostics(reporter.GetErrors(), diagnostics.SeverityError))
		return
	}
	fmt.Fprint(os.Stderr, reporter.FormatErrors())
}

func (opts pipelineOptions) reportWarnings(reporter *analysis.ErrorReporterImpl) {
	if opts.jsonErrors {
		printDiagnosticsJSON(toDiagnostics(reporter.GetWarnings(), diagnostics.SeverityWarning))
		return
	}
	fmt.Fprint(os.Stderr, reporter.FormatWarnings())
}

func dumpTokenStream(src string) {
	lx := lexer.New(src)
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Tag == token.EOF {
			break
		}
	}
	pretty.Fprintf(os.Stderr, "%# v\n", toks)
}
