package preprocess

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// writeArchive materializes a txtar fixture under a temp dir and returns
// that dir. Using txtar keeps multi-file @use fixtures as a single
// readable literal in the test source instead of scattering os.WriteFile
// calls (SPEC_FULL.md §3: txtar fixtures for @use import graphs).
func writeArchive(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	ar := txtar.Parse([]byte(data))
	for _, f := range ar.Files {
		full := filepath.Join(dir, f.Name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, f.Data, 0o644))
	}
	return dir
}

func TestPreprocessNoUseGetsBuiltinHeader(t *testing.T) {
	dir := writeArchive(t, `
-- main.nl --
fn main() -> i64 do
  ret 0
end
`)
	p := New(DefaultOptions())
	out, err := p.Run(filepath.Join(dir, "main.nl"))
	require.NoError(t, err)
	assert.Contains(t, out, "__builtin_putstr")
	assert.Contains(t, out, "fn main() -> i64 do")
}

func TestPreprocessWithUseSkipsBuiltinHeader(t *testing.T) {
	dir := writeArchive(t, `
-- main.nl --
@use "./lib.nl"
fn main() -> i64 do
  ret helper()
end
-- lib.nl --
fn helper() -> i64 do
  ret 7
end
`)
	p := New(DefaultOptions())
	out, err := p.Run(filepath.Join(dir, "main.nl"))
	require.NoError(t, err)
	assert.NotContains(t, out, "__builtin_putstr")
	assert.Contains(t, out, "fn helper() -> i64 do")
	assert.Contains(t, out, "fn main() -> i64 do")
}

func TestPreprocessRelativeImport(t *testing.T) {
	dir := writeArchive(t, `
-- sub/main.nl --
@use "./helper.nl"
fn main() -> i64 do ret 0 end
-- sub/helper.nl --
fn helper() -> i64 do ret 1 end
`)
	p := New(DefaultOptions())
	out, err := p.Run(filepath.Join(dir, "sub", "main.nl"))
	require.NoError(t, err)
	assert.Contains(t, out, "fn helper")
}

func TestPreprocessStdImport(t *testing.T) {
	dir := writeArchive(t, `
-- std/io.nl --
fn write() -> void do end
-- main.nl --
@use "std/io.nl"
fn main() -> i64 do ret 0 end
`)
	p := New(Options{StdRoot: filepath.Join(dir, "std"), MaxSize: defaultMaxSize, MaxImports: 64})
	out, err := p.Run(filepath.Join(dir, "main.nl"))
	require.NoError(t, err)
	assert.Contains(t, out, "fn write")
}

func TestPreprocessStdImportWithoutRootFails(t *testing.T) {
	dir := writeArchive(t, `
-- main.nl --
@use "std/io.nl"
fn main() -> i64 do ret 0 end
`)
	p := New(DefaultOptions())
	_, err := p.Run(filepath.Join(dir, "main.nl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "standard library root")
}

func TestPreprocessImportCycleIsNoOp(t *testing.T) {
	dir := writeArchive(t, `
-- a.nl --
@use "./b.nl"
fn fromA() -> i64 do ret 1 end
-- b.nl --
@use "./a.nl"
fn fromB() -> i64 do ret 2 end
`)
	p := New(DefaultOptions())
	out, err := p.Run(filepath.Join(dir, "a.nl"))
	require.NoError(t, err, "a cyclic @use graph must preprocess to a finite buffer, not error")
	assert.Contains(t, out, "fromA")
	assert.Contains(t, out, "fromB")
}

func TestPreprocessImportIdempotence(t *testing.T) {
	once := writeArchive(t, `
-- main.nl --
@use "./lib.nl"
fn main() -> i64 do ret 0 end
-- lib.nl --
fn helper() -> i64 do ret 1 end
`)
	twice := writeArchive(t, `
-- main.nl --
@use "./lib.nl"
@use "./lib.nl"
fn main() -> i64 do ret 0 end
-- lib.nl --
fn helper() -> i64 do ret 1 end
`)
	p1 := New(DefaultOptions())
	out1, err := p1.Run(filepath.Join(once, "main.nl"))
	require.NoError(t, err)

	p2 := New(DefaultOptions())
	out2, err := p2.Run(filepath.Join(twice, "main.nl"))
	require.NoError(t, err)

	assert.Equal(t, out1, out2, "importing the same module twice must match importing it once")
}

func TestPreprocessMaxImportsExceeded(t *testing.T) {
	dir := writeArchive(t, `
-- main.nl --
@use "./a.nl"
@use "./b.nl"
@use "./c.nl"
fn main() -> i64 do ret 0 end
-- a.nl --
fn a() -> i64 do ret 1 end
-- b.nl --
fn b() -> i64 do ret 1 end
-- c.nl --
fn c() -> i64 do ret 1 end
`)
	p := New(Options{MaxImports: 2, MaxSize: defaultMaxSize})
	_, err := p.Run(filepath.Join(dir, "main.nl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max import count")
}

func TestPreprocessMissingFile(t *testing.T) {
	dir := t.TempDir()
	p := New(DefaultOptions())
	_, err := p.Run(filepath.Join(dir, "missing.nl"))
	assert.Error(t, err)
}
