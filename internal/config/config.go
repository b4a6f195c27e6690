// Package config loads .edgelint.toml files into linter configuration
// layers. The file format mirrors the engine's config model: a rules table,
// a free-form settings table, custom tag definitions, and ignore patterns.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"edgelint/internal/linter"
	"edgelint/internal/rules"
	"edgelint/internal/tokenizer"
)

// Filename is the config file looked up by Discover.
const Filename = ".edgelint.toml"

// fileConfig is the raw TOML shape. Rule values stay untyped because both
// accepted forms ("error" and ["warn", {options}]) must survive decoding.
type fileConfig struct {
	Extends  string            `toml:"extends"`
	Rules    map[string]any    `toml:"rules"`
	Settings map[string]any    `toml:"settings"`
	Tags     map[string]tagDef `toml:"tags"`
	Ignore   []string          `toml:"ignore"`
}

type tagDef struct {
	Block    bool `toml:"block"`
	Seekable bool `toml:"seekable"`
}

// Load reads one config file and resolves it into a linter.Config. An
// extends = "recommended" line layers the file over the built-in
// recommended severities.
func Load(path string) (linter.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return linter.Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data, path)
}

// Parse resolves raw TOML bytes; path is only used in error messages.
func Parse(data []byte, path string) (linter.Config, error) {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return linter.Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	cfg := linter.Config{
		IgnorePatterns: fc.Ignore,
		Settings:       fc.Settings,
	}
	if len(fc.Rules) > 0 {
		cfg.Rules = make(map[string]linter.RuleConfig, len(fc.Rules))
		for id, v := range fc.Rules {
			cfg.Rules[id] = linter.RuleConfigFrom(v)
		}
	}
	if len(fc.Tags) > 0 {
		cfg.Parser.Tags = make(map[string]tokenizer.TagDef, len(fc.Tags))
		for name, def := range fc.Tags {
			cfg.Parser.Tags[name] = tokenizer.TagDef{Block: def.Block, Seekable: def.Seekable}
		}
	}

	switch fc.Extends {
	case "":
		return cfg, nil
	case "recommended":
		return linter.Merge(rules.RecommendedConfig(), cfg), nil
	default:
		return linter.Config{}, fmt.Errorf("config %s: unknown extends %q", path, fc.Extends)
	}
}

// Discover walks from dir toward the filesystem root looking for the
// nearest config file. The boolean reports whether one was found.
func Discover(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, Filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
