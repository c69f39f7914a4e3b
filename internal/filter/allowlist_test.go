package filter

import (
	"testing"

	"rdbsnap/internal/rdb"
)

func TestAllowListAllowsAllByDefault(t *testing.T) {
	a := NewAllowList(nil, nil, nil)
	if !a.MatchesDB(7) || !a.MatchesType(rdb.TypeHash) || !a.MatchesKey([]byte("anything")) {
		t.Fatalf("zero-value AllowList should admit everything")
	}
}

func TestAllowListRestrictsDB(t *testing.T) {
	a := NewAllowList([]int{0, 2}, nil, nil)
	if !a.MatchesDB(0) || !a.MatchesDB(2) {
		t.Fatalf("expected db 0 and 2 to be admitted")
	}
	if a.MatchesDB(1) {
		t.Fatalf("expected db 1 to be rejected")
	}
}

func TestAllowListKeyGlob(t *testing.T) {
	a := NewAllowList(nil, nil, []string{"user:*"})
	if !a.MatchesKey([]byte("user:123")) {
		t.Fatalf("expected user:123 to match user:*")
	}
	if a.MatchesKey([]byte("session:123")) {
		t.Fatalf("expected session:123 to be rejected")
	}
}

func TestTagForName(t *testing.T) {
	tags, ok := TagForName("hash")
	if !ok {
		t.Fatalf("expected hash to be a known type name")
	}
	found := false
	for _, tag := range tags {
		if tag == rdb.TypeHashZiplist {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected hash to include HASH_ZIPLIST, got %v", tags)
	}
	if _, ok := TagForName("bogus"); ok {
		t.Fatalf("expected bogus to be unknown")
	}
}
