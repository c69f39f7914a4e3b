package rdb

// Formatter is the sink the frame driver pushes semantic events into.
// Every container Start* call is matched by exactly one End* call for
// the same key, and StartRDB by one EndRDB. EndDatabase is called once,
// at the EOF opcode, for the database selected at that point, whether
// or not a StartDatabase was emitted for it. A Formatter that returns
// an error aborts the parse with a SinkFailed error.
type Formatter interface {
	StartRDB() error
	EndRDB() error
	StartDatabase(db int) error
	EndDatabase(db int) error
	Checksum(b []byte) error
	ResizeDB(mainSize, expiresSize uint64) error
	AuxField(key, value []byte) error

	Set(key, value []byte, expiry *int64) error

	StartList(key []byte, count uint64, expiry *int64, enc EncodingType) error
	ListElement(key, value []byte) error
	EndList(key []byte) error

	StartSet(key []byte, count uint64, expiry *int64, enc EncodingType) error
	SetElement(key, value []byte) error
	EndSet(key []byte) error

	StartHash(key []byte, count uint64, expiry *int64, enc EncodingType) error
	HashElement(key, field, value []byte) error
	EndHash(key []byte) error

	StartSortedSet(key []byte, count uint64, expiry *int64, enc EncodingType) error
	SortedSetElement(key []byte, score float64, value []byte) error
	EndSortedSet(key []byte) error
}

// Filter decides which databases, value-encoding tags, and keys are
// materialized. A Filter that rejects a database rejects every record
// in it without the frame driver ever reading the key's bytes into a
// Formatter call; one that rejects a type or key still reads the key
// (to test it against MatchesKey) but skips the value byte-exact.
type Filter interface {
	MatchesDB(db int) bool
	MatchesType(tag byte) bool
	MatchesKey(key []byte) bool
}
