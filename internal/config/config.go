// Package config loads the optional null.yaml project manifest: the
// standard-library root, preprocessor size/import limits (spec.md
// §4.1/§5), and the default backend name. Grounded on
// cuelang.org/go/mod/modfile's yaml.v3-based manifest loading and
// viant/linager's own project-config convention of a single optional
// YAML file with sane zero-value defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default limits match spec.md §4.1 (preprocessed source capped at
// 50 MiB) and §5 (import set capped at 64 entries; internal/preprocess
// counts the entry file as one of them, leaving 63 @use targets).
const (
	DefaultMaxSourceBytes = 50 * 1024 * 1024
	DefaultMaxImports     = 64
	DefaultBackend        = "none"
)

// Config is the shape of null.yaml. Every field is optional; a missing
// or zero value falls back to its Default* constant via Normalize.
type Config struct {
	StdRoot        string `yaml:"std_root"`
	MaxSourceBytes int64  `yaml:"max_source_bytes"`
	MaxImports     int    `yaml:"max_imports"`
	Backend        string `yaml:"backend"`
}

// Default returns a Config already populated with every default value,
// suitable for use when no null.yaml is present.
func Default() *Config {
	return &Config{
		MaxSourceBytes: DefaultMaxSourceBytes,
		MaxImports:     DefaultMaxImports,
		Backend:        DefaultBackend,
	}
}

// Normalize fills in any zero-valued field with its default. Called
// after unmarshaling so a partial null.yaml (e.g. just `backend:`)
// still gets the standard limits.
func (c *Config) Normalize() {
	if c.MaxSourceBytes == 0 {
		c.MaxSourceBytes = DefaultMaxSourceBytes
	}
	if c.MaxImports == 0 {
		c.MaxImports = DefaultMaxImports
	}
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
}

// Load reads and parses path as a null.yaml manifest. A missing file is
// not an error: Load returns Default() in that case, matching the
// "optional" contract the ambient stack calls for.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}
