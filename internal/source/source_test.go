package source

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenPassthroughForPlainExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.rdb")
	if err := os.WriteFile(path, []byte("REDIS0009"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rc, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "REDIS0009" {
		t.Fatalf("got %q, want REDIS0009", data)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.rdb")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
