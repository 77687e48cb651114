package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "null.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultMaxSourceBytes), cfg.MaxSourceBytes)
	assert.Equal(t, DefaultMaxImports, cfg.MaxImports)
	assert.Equal(t, DefaultBackend, cfg.Backend)
}

func TestLoadPartialManifestFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "null.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: llvm\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "llvm", cfg.Backend)
	assert.Equal(t, int64(DefaultMaxSourceBytes), cfg.MaxSourceBytes)
	assert.Equal(t, DefaultMaxImports, cfg.MaxImports)
}

func TestLoadFullManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "null.yaml")
	require.NoError(t, os.WriteFile(path, []byte("std_root: /opt/null/std\nmax_source_bytes: 1024\nmax_imports: 8\nbackend: none\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/null/std", cfg.StdRoot)
	assert.Equal(t, int64(1024), cfg.MaxSourceBytes)
	assert.Equal(t, 8, cfg.MaxImports)
}
