package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlainFormatterRendersCommands(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(&buf)

	if err := f.StartDatabase(0); err != nil {
		t.Fatalf("StartDatabase: %v", err)
	}
	expiry := int64(1700000000000)
	if err := f.Set([]byte("foo"), []byte("bar"), &expiry); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.ListElement([]byte("mylist"), []byte("a")); err != nil {
		t.Fatalf("ListElement: %v", err)
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "SELECT 0") {
		t.Fatalf("missing SELECT line: %q", out)
	}
	if !strings.Contains(out, `SET "foo" "bar" PXAT 1700000000000`) {
		t.Fatalf("missing SET line: %q", out)
	}
	if !strings.Contains(out, `RPUSH "mylist" "a"`) {
		t.Fatalf("missing RPUSH line: %q", out)
	}
}

func TestPlainFormatterSetWithoutExpiry(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(&buf)
	if err := f.Set([]byte("k"), []byte("v"), nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	f.Flush()
	if strings.Contains(buf.String(), "PXAT") {
		t.Fatalf("unexpected PXAT with nil expiry: %q", buf.String())
	}
}
