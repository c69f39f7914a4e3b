package cli

import (
	"os"
	"path/filepath"
	"testing"

	"rdbsnap/internal/config"
)

func TestBuildFilterExpandsTypeNames(t *testing.T) {
	f, err := buildFilter(config.FilterConfig{Types: []string{"Hash"}})
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	if !f.MatchesType(0x0D) { // HASH_ZIPLIST
		t.Fatalf("expected hash filter to admit HASH_ZIPLIST")
	}
}

func TestBuildFilterRejectsUnknownType(t *testing.T) {
	if _, err := buildFilter(config.FilterConfig{Types: []string{"bogus"}}); err == nil {
		t.Fatalf("expected error for unknown type name")
	}
}

func TestOpenOutputStdoutOnEmptyPath(t *testing.T) {
	f, closeFn, err := openOutput("")
	if err != nil {
		t.Fatalf("openOutput: %v", err)
	}
	if f != os.Stdout {
		t.Fatalf("expected os.Stdout for empty path")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("closeFn: %v", err)
	}
}

func TestOpenOutputCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	f, closeFn, err := openOutput(path)
	if err != nil {
		t.Fatalf("openOutput: %v", err)
	}
	defer closeFn()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to be created: %v", err)
	}
	_ = f
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]string{"debug": "DEBUG", "WARN": "WARN", "": "INFO", "bogus": "INFO"}
	for input, want := range cases {
		if got := parseLogLevel(input).String(); got != want {
			t.Fatalf("parseLogLevel(%q) = %q, want %q", input, got, want)
		}
	}
}
