package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rdbsnap.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, "input:\n  path: dump.rdb\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Fatalf("Output.Format = %q, want json", cfg.Output.Format)
	}
	if cfg.RateLimit.BatchSize != 500 {
		t.Fatalf("RateLimit.BatchSize = %d, want 500", cfg.RateLimit.BatchSize)
	}
	if cfg.Log.Dir != "logs" || cfg.Log.Level != "info" || cfg.Log.Prefix != "rdbsnap" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoadRejectsMissingInputPath(t *testing.T) {
	path := writeTempConfig(t, "output:\n  format: json\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing input.path")
	}
}

func TestLoadRejectsUnknownTypeName(t *testing.T) {
	path := writeTempConfig(t, "input:\n  path: dump.rdb\nfilter:\n  types: [\"bogus\"]\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown filter type name")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeTempConfig(t, "input:\n  path: dump.rdb\nbogusSection:\n  x: 1\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown top-level field")
	}
}

func TestResolveLogPrefix(t *testing.T) {
	cfg := &Config{Input: InputConfig{Path: "/data/dump.rdb"}}
	cfg.ApplyDefaults()
	if got := cfg.ResolveLogPrefix("dump"); got != "rdbsnap-dump-dump" {
		t.Fatalf("ResolveLogPrefix = %q", got)
	}
}
