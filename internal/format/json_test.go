package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONFormatterEmitsOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)

	if err := f.StartRDB(); err != nil {
		t.Fatalf("StartRDB: %v", err)
	}
	if err := f.Set([]byte("foo"), []byte("bar"), nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.EndRDB(); err != nil {
		t.Fatalf("EndRDB: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), buf.String())
	}
	var setEvent map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &setEvent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if setEvent["event"] != "set" {
		t.Fatalf("event = %v, want set", setEvent["event"])
	}
}

func TestJSONFormatterDoesNotDropZeroDBOrScore(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)

	if err := f.StartDatabase(0); err != nil {
		t.Fatalf("StartDatabase: %v", err)
	}
	if err := f.SortedSetElement([]byte("key"), 0.0, []byte("member")); err != nil {
		t.Fatalf("SortedSetElement: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}

	var dbEvent map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &dbEvent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := dbEvent["db"]; !ok {
		t.Fatalf("expected db field to be present for db=0, got %q", lines[0])
	}
	if dbEvent["db"] != 0.0 {
		t.Fatalf("db = %v, want 0", dbEvent["db"])
	}

	var zsetEvent map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &zsetEvent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := zsetEvent["score"]; !ok {
		t.Fatalf("expected score field to be present for score=0, got %q", lines[1])
	}
	if zsetEvent["score"] != 0.0 {
		t.Fatalf("score = %v, want 0", zsetEvent["score"])
	}
}
