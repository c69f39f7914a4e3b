// Package format provides Formatter implementations that render decoded
// RDB events as output a human or another tool can consume.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"rdbsnap/internal/rdb"
)

// event is the newline-delimited JSON record JSONFormatter emits. Binary
// fields are []byte so encoding/json base64-encodes them automatically;
// callers that want raw bytes decode that field themselves.
type event struct {
	Event       string   `json:"event"`
	DB          *int     `json:"db,omitempty"`
	Key         []byte   `json:"key,omitempty"`
	Value       []byte   `json:"value,omitempty"`
	Field       []byte   `json:"field,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Expiry      *int64   `json:"expiry,omitempty"`
	Count       uint64   `json:"count,omitempty"`
	Encoding    string   `json:"encoding,omitempty"`
	MainSize    uint64   `json:"mainSize,omitempty"`
	ExpiresSize uint64   `json:"expiresSize,omitempty"`
	Checksum    []byte   `json:"checksum,omitempty"`
}

// JSONFormatter writes one JSON object per line to an io.Writer.
type JSONFormatter struct {
	enc *json.Encoder
}

// NewJSONFormatter builds a JSONFormatter writing to w.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{enc: json.NewEncoder(w)}
}

func (f *JSONFormatter) emit(e event) error {
	if err := f.enc.Encode(e); err != nil {
		return fmt.Errorf("json formatter: %w", err)
	}
	return nil
}

func encodingName(enc rdb.EncodingType) string {
	switch enc.Kind {
	case rdb.KindLinkedList:
		return "linkedlist"
	case rdb.KindHashtable:
		return "hashtable"
	case rdb.KindZiplist:
		return "ziplist"
	case rdb.KindZipmap:
		return "zipmap"
	case rdb.KindIntset:
		return "intset"
	case rdb.KindQuicklist:
		return "quicklist"
	default:
		return "unknown"
	}
}

func (f *JSONFormatter) StartRDB() error { return f.emit(event{Event: "start_rdb"}) }
func (f *JSONFormatter) EndRDB() error   { return f.emit(event{Event: "end_rdb"}) }

func (f *JSONFormatter) StartDatabase(db int) error {
	return f.emit(event{Event: "start_database", DB: &db})
}
func (f *JSONFormatter) EndDatabase(db int) error {
	return f.emit(event{Event: "end_database", DB: &db})
}

func (f *JSONFormatter) Checksum(b []byte) error {
	return f.emit(event{Event: "checksum", Checksum: b})
}

func (f *JSONFormatter) ResizeDB(mainSize, expiresSize uint64) error {
	return f.emit(event{Event: "resize_db", MainSize: mainSize, ExpiresSize: expiresSize})
}

func (f *JSONFormatter) AuxField(key, value []byte) error {
	return f.emit(event{Event: "aux_field", Key: key, Value: value})
}

func (f *JSONFormatter) Set(key, value []byte, expiry *int64) error {
	return f.emit(event{Event: "set", Key: key, Value: value, Expiry: expiry})
}

func (f *JSONFormatter) StartList(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	return f.emit(event{Event: "start_list", Key: key, Count: count, Expiry: expiry, Encoding: encodingName(enc)})
}
func (f *JSONFormatter) ListElement(key, value []byte) error {
	return f.emit(event{Event: "list_element", Key: key, Value: value})
}
func (f *JSONFormatter) EndList(key []byte) error {
	return f.emit(event{Event: "end_list", Key: key})
}

func (f *JSONFormatter) StartSet(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	return f.emit(event{Event: "start_set", Key: key, Count: count, Expiry: expiry, Encoding: encodingName(enc)})
}
func (f *JSONFormatter) SetElement(key, value []byte) error {
	return f.emit(event{Event: "set_element", Key: key, Value: value})
}
func (f *JSONFormatter) EndSet(key []byte) error {
	return f.emit(event{Event: "end_set", Key: key})
}

func (f *JSONFormatter) StartHash(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	return f.emit(event{Event: "start_hash", Key: key, Count: count, Expiry: expiry, Encoding: encodingName(enc)})
}
func (f *JSONFormatter) HashElement(key, field, value []byte) error {
	return f.emit(event{Event: "hash_element", Key: key, Field: field, Value: value})
}
func (f *JSONFormatter) EndHash(key []byte) error {
	return f.emit(event{Event: "end_hash", Key: key})
}

func (f *JSONFormatter) StartSortedSet(key []byte, count uint64, expiry *int64, enc rdb.EncodingType) error {
	return f.emit(event{Event: "start_zset", Key: key, Count: count, Expiry: expiry, Encoding: encodingName(enc)})
}
func (f *JSONFormatter) SortedSetElement(key []byte, score float64, value []byte) error {
	return f.emit(event{Event: "zset_element", Key: key, Value: value, Score: &score})
}
func (f *JSONFormatter) EndSortedSet(key []byte) error {
	return f.emit(event{Event: "end_zset", Key: key})
}

var _ rdb.Formatter = (*JSONFormatter)(nil)
