// Package rdb implements a streaming decoder for the RDB snapshot format.
package rdb

// Opcodes that precede a record in the frame driver's outer loop.
const (
	OpAux          = 0xFA
	OpResizeDB     = 0xFB
	OpExpireTimeMS = 0xFC
	OpExpireTime   = 0xFD
	OpSelectDB     = 0xFE
	OpEOF          = 0xFF
)

// Value-encoding tags. These share the opcode byte's namespace but are
// distinguished from the opcodes above by falling outside 0xFA-0xFF.
const (
	TypeString        = 0
	TypeList          = 1
	TypeSet           = 2
	TypeZSet          = 3
	TypeHash          = 4
	TypeZSet2         = 5
	TypeHashZipmap    = 9
	TypeListZiplist   = 10
	TypeSetIntset     = 11
	TypeZSetZiplist   = 12
	TypeHashZiplist   = 13
	TypeListQuicklist = 14
)

// Blob encoding codes, carried in the low six bits of a length byte whose
// top two bits are both set.
const (
	encInt8  = 0
	encInt16 = 1
	encInt32 = 2
	encLZF   = 3
)

// MagicString opens every snapshot, followed by four ASCII version digits.
const MagicString = "REDIS"

// MinVersion and MaxVersion bound the version digits this decoder accepts.
const (
	MinVersion = 2
	MaxVersion = 11
)

// EncodingKind names the on-disk container layout behind an EncodingType
// marker, so a Formatter can report storage characteristics without
// inspecting the original wire tag.
type EncodingKind int

const (
	// KindLinkedList marks a plain, non-wrapped LIST record.
	KindLinkedList EncodingKind = iota
	// KindHashtable marks a plain, non-wrapped SET/ZSET/ZSET_2/HASH record.
	KindHashtable
	// KindZiplist marks a record whose payload is a single ziplist blob.
	KindZiplist
	// KindZipmap marks a record whose payload is a single zipmap blob.
	KindZipmap
	// KindIntset marks a record whose payload is a single intset blob.
	KindIntset
	// KindQuicklist marks a LIST_QUICKLIST record (a sequence of ziplists).
	KindQuicklist
)

// EncodingType accompanies every start_* container event. RawLen carries
// the outer blob's decompressed byte length for the three wrapped kinds
// that have one (Ziplist, Zipmap, Intset); it is 0 for LinkedList,
// Hashtable and Quicklist, which have no single outer blob.
type EncodingType struct {
	Kind   EncodingKind
	RawLen uint64
}
