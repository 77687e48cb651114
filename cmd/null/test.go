package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// expectManifest is the optional per-directory expect.yaml (SPEC_FULL.md
// §3: "recording expected exit codes/stdout for golden scenarios that
// aren't expressible as a bare .nl file with an implicit exit-code-0
// convention").
type expectManifest struct {
	Cases map[string]struct {
		ExitCode int    `yaml:"exit_code"`
		Stdout   string `yaml:"stdout"`
	} `yaml:"cases"`
}

type testResult struct {
	path string
	pass bool
	msg  string
}

// newTestCmd is spec.md §6's `test <dir>`: discovers every *.nl file
// under dir and runs each through the full pipeline concurrently,
// bounded by GOMAXPROCS via golang.org/x/sync/errgroup (grounded on
// breadchris/yaegi's golang.org/x/sync dependency, pulled in there for
// concurrent package loading — see SPEC_FULL.md §3).
func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <dir>",
		Short: "Discover and run every .nl file under dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runTestDir(args[0])
			exitCode = code
			return err
		},
	}
	return cmd
}

func runTestDir(dir string) (int, error) {
	files, err := discoverNLFiles(dir)
	if err != nil {
		return 1, err
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no .nl files found under %s\n", dir)
		return 0, nil
	}

	expect, err := loadExpectManifest(filepath.Join(dir, "expect.yaml"))
	if err != nil {
		return 1, err
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	var mu sync.Mutex
	results := make([]testResult, 0, len(files))

	for _, f := range files {
		f := f
		g.Go(func() error {
			r := runOneTest(f, dir, expect)
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

	failed := 0
	for _, r := range results {
		if r.pass {
			fmt.Fprintf(os.Stdout, "ok   %s\n", r.path)
		} else {
			failed++
			fmt.Fprintf(os.Stdout, "FAIL %s: %s\n", r.path, r.msg)
		}
	}
	fmt.Fprintf(os.Stdout, "%d passed, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return 1, nil
	}
	return 0, nil
}

func discoverNLFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".nl") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func loadExpectManifest(path string) (*expectManifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &expectManifest{}, nil
	}
	if err != nil {
		return nil, err
	}
	m := &expectManifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("test: parsing %s: %w", path, err)
	}
	return m, nil
}

func runOneTest(path, dir string, expect *expectManifest) testResult {
	rel, _ := filepath.Rel(dir, path)
	cfg, err := loadConfig("", path)
	if err != nil {
		return testResult{path: rel, pass: false, msg: err.Error()}
	}

	var stdout bytes.Buffer
	code, err := runPipeline(path, cfg, pipelineOptions{stdout: &stdout, stdin: strings.NewReader("")})
	if err != nil {
		return testResult{path: rel, pass: false, msg: err.Error()}
	}

	wantCode := 0
	wantStdout := ""
	hasExpect := false
	if c, ok := expect.Cases[rel]; ok {
		wantCode = c.ExitCode
		wantStdout = c.Stdout
		hasExpect = true
	}

	if code != wantCode {
		return testResult{path: rel, pass: false, msg: fmt.Sprintf("exit code %d, want %d", code, wantCode)}
	}
	if hasExpect && stdout.String() != wantStdout {
		return testResult{path: rel, pass: false, msg: fmt.Sprintf("stdout %q, want %q", stdout.String(), wantStdout)}
	}
	return testResult{path: rel, pass: true}
}
