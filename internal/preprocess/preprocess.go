// Package preprocess expands @use directives into a single contiguous
// source buffer (spec.md §4.1). It is grounded on
// internal/transpiler/packages/resolver.go's BuildProgramFromEntry: both
// walk an import graph depth-first from an entry file and splice
// dependency sources into one buffer before the rest of the pipeline
// ever runs. The teacher's resolver topologically orders local packages
// and raises a fatal error on any cycle; spec.md's preprocessor is
// simpler — imports are textual splices, not compiled units, so a
// repeated or cyclic @use is a silent no-op (spec.md §4.1: "already
// imported paths... a no-op (cycle / repeat protection)") rather than an
// error.
package preprocess

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const defaultMaxSize = 50 * 1024 * 1024 // 50 MiB, spec.md §4.1

// builtinHeader is prepended to the top-level file only when it contains
// no @use directive at all (spec.md §4.1: "so files with imports are
// responsible for their own runtime surface"). io_print is the name
// spec.md §8 scenario 1's hello-world example calls directly, relying on
// this injected wrapper rather than an @use'd I/O module.
const builtinHeader = `@extern "C" do
  fn __builtin_putstr(s :: ptr<u8>, len :: i64) -> void
end
fn io_print(s :: [u8]) -> void do
  __builtin_putstr(s, 0)
end
`

var useDirectiveRe = regexp.MustCompile(`^\s*@use\s+"([^"]+)"(?:\s+as\s+([A-Za-z_][A-Za-z0-9_]*))?\s*$`)

// Options configures a Preprocessor (SPEC_FULL.md §2: surfaced via
// internal/config's null.yaml as std_root / max_source_bytes / max_imports).
type Options struct {
	StdRoot    string
	MaxSize    int
	MaxImports int
}

func DefaultOptions() Options {
	return Options{MaxSize: defaultMaxSize, MaxImports: 64}
}

// Preprocessor expands @use directives starting from a single entry
// file. It is constructed once per compilation (spec.md §4.1's "Global
// mutable import tracker" redesign flag at spec.md §9: the import set
// lives here, not at process scope).
type Preprocessor struct {
	opts     Options
	imported map[string]bool
}

func New(opts Options) *Preprocessor {
	if opts.MaxSize <= 0 {
		opts.MaxSize = defaultMaxSize
	}
	if opts.MaxImports <= 0 {
		opts.MaxImports = 64
	}
	return &Preprocessor{opts: opts, imported: make(map[string]bool)}
}

// Run preprocesses entryPath into a single buffer. The entry path itself
// is seeded into the import tracker first, so a cyclic @use chain that
// loops back to the entry file (spec.md §4.1's cycle/repeat protection)
// is recognized as already-imported instead of being spliced again.
func (p *Preprocessor) Run(entryPath string) (string, error) {
	p.imported[filepath.Clean(entryPath)] = true
	var out strings.Builder
	if err := p.process(entryPath, &out, true); err != nil {
		return "", err
	}
	if out.Len() > p.opts.MaxSize {
		return "", fmt.Errorf("preprocess: expanded source exceeds max size of %d bytes", p.opts.MaxSize)
	}
	return out.String(), nil
}

func (p *Preprocessor) process(path string, out *strings.Builder, topLevel bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("preprocess: cannot open %q: %w", path, err)
	}
	defer f.Close()

	sawUse := false
	dir := filepath.Dir(path)

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		m := useDirectiveRe.FindStringSubmatch(line)
		if m == nil {
			out.WriteString(line)
			out.WriteByte('\n')
			continue
		}
		sawUse = true
		resolved, err := p.resolvePath(m[1], dir)
		if err != nil {
			return err
		}
		// A repeated (or cyclic) @use of an already-imported path emits
		// nothing, so importing a module N times yields the same buffer
		// as importing it once.
		if p.imported[resolved] {
			continue
		}
		// A @use line that splices a new file becomes a newline, followed
		// by that file's expanded text and one more newline.
		out.WriteByte('\n')
		p.imported[resolved] = true
		if len(p.imported) > p.opts.MaxImports {
			return fmt.Errorf("preprocess: exceeded max import count of %d", p.opts.MaxImports)
		}
		if err := p.process(resolved, out, false); err != nil {
			return err
		}
		out.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("preprocess: error reading %q: %w", path, err)
	}

	if topLevel && !sawUse {
		// Builtin header only belongs at the very front of the output,
		// so it is prepended after the fact rather than written first.
		final := builtinHeader + out.String()
		out.Reset()
		out.WriteString(final)
	}
	return nil
}

// resolvePath implements spec.md §4.1's three-way path mapping.
func (p *Preprocessor) resolvePath(raw, importingDir string) (string, error) {
	switch {
	case strings.HasPrefix(raw, "std/"):
		if p.opts.StdRoot == "" {
			return "", fmt.Errorf("preprocess: %q requires a standard library root but none is configured", raw)
		}
		return filepath.Join(p.opts.StdRoot, strings.TrimPrefix(raw, "std/")), nil
	case strings.HasPrefix(raw, "./"):
		return filepath.Join(importingDir, strings.TrimPrefix(raw, "./")), nil
	default:
		return raw, nil
	}
}
