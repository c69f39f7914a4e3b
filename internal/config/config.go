// Package config loads rdbsnap's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds rdbsnap's full configuration, shared by the dump and
// load subcommands. Fields a subcommand doesn't use are simply ignored.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Filter    FilterConfig    `yaml:"filter"`
	Target    TargetConfig    `yaml:"target"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Log       LogConfig       `yaml:"log"`

	path string
}

// InputConfig names the snapshot to decode.
type InputConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig selects the formatter and its destination for `dump`.
type OutputConfig struct {
	Format string `yaml:"format"` // "json" or "plain"
	Path   string `yaml:"path"`   // "" means stdout
}

// FilterConfig builds an internal/filter.AllowList.
type FilterConfig struct {
	Databases   []int    `yaml:"databases"`
	Types       []string `yaml:"types"`
	KeyPatterns []string `yaml:"keyPatterns"`
}

// TargetConfig is the Redis/Dragonfly endpoint `load` replays into.
type TargetConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	TLS      bool   `yaml:"tls"`
}

// RateLimitConfig bounds the live loader's command rate.
type RateLimitConfig struct {
	OpsPerSecond float64 `yaml:"opsPerSecond"` // 0 means unlimited
	BatchSize    int     `yaml:"batchSize"`
}

// LogConfig configures the leveled logger.
type LogConfig struct {
	Dir    string `yaml:"dir"`
	Level  string `yaml:"level"`
	Prefix string `yaml:"prefix"`
}

// Load reads and validates a YAML configuration file, applying defaults
// for anything left unset.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.path = path
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyDefaults fills in values a config file is allowed to omit.
func (c *Config) ApplyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.RateLimit.BatchSize <= 0 {
		c.RateLimit.BatchSize = 500
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Prefix == "" {
		c.Log.Prefix = "rdbsnap"
	}
}

// Validate rejects configurations that would fail later in a confusing way.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input.path is required")
	}
	switch c.Output.Format {
	case "json", "plain":
	default:
		return fmt.Errorf("output.format must be 'json' or 'plain', got %q", c.Output.Format)
	}
	if c.RateLimit.OpsPerSecond < 0 {
		return fmt.Errorf("rateLimit.opsPerSecond must not be negative")
	}
	for _, t := range c.Filter.Types {
		if !isKnownTypeName(t) {
			return fmt.Errorf("filter.types: unknown type name %q", t)
		}
	}
	return nil
}

func isKnownTypeName(name string) bool {
	switch strings.ToLower(name) {
	case "string", "list", "set", "hash", "zset":
		return true
	default:
		return false
	}
}

// Path returns the file this config was loaded from, or "" for a
// zero-value Config built in tests.
func (c *Config) Path() string {
	return c.path
}

// ResolveLogPrefix derives the log file prefix for a given subcommand,
// mirroring the "<tool>-<mode>" convention the CLI uses elsewhere.
func (c *Config) ResolveLogPrefix(mode string) string {
	base := filepath.Base(c.Input.Path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		return fmt.Sprintf("%s-%s", c.Log.Prefix, mode)
	}
	return fmt.Sprintf("%s-%s-%s", c.Log.Prefix, mode, base)
}
