// Package filter provides rdb.Filter implementations.
package filter

import (
	"path"

	"rdbsnap/internal/rdb"
)

// AllowList admits everything a nil field leaves unset, and otherwise
// admits only what an explicit set or glob list names.
type AllowList struct {
	Databases   map[int]struct{}
	Types       map[byte]struct{}
	KeyPatterns []string
}

// NewAllowList builds an AllowList from plain slices; nil/empty means
// "allow all" for that dimension.
func NewAllowList(databases []int, types []byte, keyPatterns []string) *AllowList {
	a := &AllowList{KeyPatterns: keyPatterns}
	if len(databases) > 0 {
		a.Databases = make(map[int]struct{}, len(databases))
		for _, db := range databases {
			a.Databases[db] = struct{}{}
		}
	}
	if len(types) > 0 {
		a.Types = make(map[byte]struct{}, len(types))
		for _, t := range types {
			a.Types[t] = struct{}{}
		}
	}
	return a
}

func (a *AllowList) MatchesDB(db int) bool {
	if a.Databases == nil {
		return true
	}
	_, ok := a.Databases[db]
	return ok
}

func (a *AllowList) MatchesType(tag byte) bool {
	if a.Types == nil {
		return true
	}
	_, ok := a.Types[tag]
	return ok
}

func (a *AllowList) MatchesKey(key []byte) bool {
	if len(a.KeyPatterns) == 0 {
		return true
	}
	for _, pattern := range a.KeyPatterns {
		if ok, err := path.Match(pattern, string(key)); err == nil && ok {
			return true
		}
	}
	return false
}

var _ rdb.Filter = (*AllowList)(nil)

// TagForName maps the filter's type vocabulary (string/list/set/hash/zset)
// onto the subset of dispatcher tags that implement each Redis type. A
// config entry of "hash" admits every on-disk hash encoding, not just
// the plain one.
func TagForName(name string) ([]byte, bool) {
	switch name {
	case "string":
		return []byte{rdb.TypeString}, true
	case "list":
		return []byte{rdb.TypeList, rdb.TypeListZiplist, rdb.TypeListQuicklist}, true
	case "set":
		return []byte{rdb.TypeSet, rdb.TypeSetIntset}, true
	case "hash":
		return []byte{rdb.TypeHash, rdb.TypeHashZipmap, rdb.TypeHashZiplist}, true
	case "zset":
		return []byte{rdb.TypeZSet, rdb.TypeZSet2, rdb.TypeZSetZiplist}, true
	default:
		return nil, false
	}
}
