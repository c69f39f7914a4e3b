package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"rdbsnap/internal/rdb"
)

// PlainFormatter renders decoded events as redis-cli style command lines,
// one per scalar, container element, database selection, checksum,
// resizedb or aux field. StartRDB, EndRDB, EndDatabase and the container
// Start*/End* events write nothing.
type PlainFormatter struct {
	w  *bufio.Writer
	db int
}

// NewPlainFormatter builds a PlainFormatter writing to w.
func NewPlainFormatter(w io.Writer) *PlainFormatter {
	return &PlainFormatter{w: bufio.NewWriter(w)}
}

// Flush must be called after the parse completes to drain buffered output.
func (f *PlainFormatter) Flush() error { return f.w.Flush() }

func quote(b []byte) string { return strconv.Quote(string(b)) }

func (f *PlainFormatter) line(format string, args ...interface{}) error {
	if _, err := fmt.Fprintf(f.w, format+"\n", args...); err != nil {
		return fmt.Errorf("plain formatter: %w", err)
	}
	return nil
}

func (f *PlainFormatter) StartRDB() error { return nil }
func (f *PlainFormatter) EndRDB() error   { return nil }

func (f *PlainFormatter) StartDatabase(db int) error {
	f.db = db
	return f.line("SELECT %d", db)
}
func (f *PlainFormatter) EndDatabase(db int) error { return nil }

func (f *PlainFormatter) Checksum(b []byte) error {
	return f.line("# checksum %x", b)
}

func (f *PlainFormatter) ResizeDB(mainSize, expiresSize uint64) error {
	return f.line("# resizedb main=%d expires=%d", mainSize, expiresSize)
}

func (f *PlainFormatter) AuxField(key, value []byte) error {
	return f.line("# aux %s %s", quote(key), quote(value))
}

func withExpiry(line string, expiry *int64) string {
	if expiry == nil {
		return line
	}
	return fmt.Sprintf("%s PXAT %d", line, *expiry)
}

func (f *PlainFormatter) Set(key, value []byte, expiry *int64) error {
	return f.line("%s", withExpiry(fmt.Sprintf("SET %s %s", quote(key), quote(value)), expiry))
}

func (f *PlainFormatter) StartList(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	return nil
}
func (f *PlainFormatter) ListElement(key, value []byte) error {
	return f.line("RPUSH %s %s", quote(key), quote(value))
}
func (f *PlainFormatter) EndList(key []byte) error { return nil }

func (f *PlainFormatter) StartSet(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	return nil
}
func (f *PlainFormatter) SetElement(key, value []byte) error {
	return f.line("SADD %s %s", quote(key), quote(value))
}
func (f *PlainFormatter) EndSet(key []byte) error { return nil }

func (f *PlainFormatter) StartHash(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	return nil
}
func (f *PlainFormatter) HashElement(key, field, value []byte) error {
	return f.line("HSET %s %s %s", quote(key), quote(field), quote(value))
}
func (f *PlainFormatter) EndHash(key []byte) error { return nil }

func (f *PlainFormatter) StartSortedSet(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	return nil
}
func (f *PlainFormatter) SortedSetElement(key []byte, score float64, value []byte) error {
	return f.line("ZADD %s %s %s", quote(key), strconv.FormatFloat(score, 'g', -1, 64), quote(value))
}
func (f *PlainFormatter) EndSortedSet(key []byte) error { return nil }

var _ rdb.Formatter = (*PlainFormatter)(nil)
