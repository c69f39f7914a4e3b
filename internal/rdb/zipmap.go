package rdb

import "encoding/binary"

type zipmapEntry struct {
	field []byte
	value []byte
}

// parseZipmap decodes a zipmap blob into its field/value pairs. The
// header's count byte is a hint only (254 means "unknown"); the
// authoritative terminator is the trailing 0xFF.
func parseZipmap(data []byte) ([]zipmapEntry, error) {
	if len(data) < 2 {
		return nil, corrupt("zipmap shorter than its fixed header")
	}
	off := 1 // skip zmlen hint byte
	var entries []zipmapEntry
	for {
		if off >= len(data) {
			return nil, corrupt("zipmap truncated before terminator")
		}
		if data[off] == 0xFF {
			break
		}
		field, next, err := readZipmapString(data, off)
		if err != nil {
			return nil, err
		}
		off = next
		if off >= len(data) {
			return nil, corrupt("zipmap truncated after field")
		}
		value, valLen, free, next, err := readZipmapValue(data, off)
		if err != nil {
			return nil, err
		}
		off = next
		_ = valLen
		entries = append(entries, zipmapEntry{field: field, value: value})
		off += free // skip trailing free-space padding
	}
	return entries, nil
}

// readZipmapLen decodes a zipmap length byte: 0-252 is an inline length,
// 253 means the next four bytes (little-endian) are the real length, and
// 254/255 never appear as a length here.
func readZipmapLen(data []byte, off int) (int, int, error) {
	if off >= len(data) {
		return 0, 0, corrupt("zipmap truncated reading length")
	}
	b := data[off]
	switch {
	case b < 253:
		return int(b), off + 1, nil
	case b == 253:
		if len(data) < off+5 {
			return 0, 0, corrupt("zipmap truncated reading extended length")
		}
		return int(binary.LittleEndian.Uint32(data[off+1 : off+5])), off + 5, nil
	default:
		return 0, 0, corrupt("zipmap invalid length byte")
	}
}

func readZipmapString(data []byte, off int) ([]byte, int, error) {
	n, next, err := readZipmapLen(data, off)
	if err != nil {
		return nil, 0, err
	}
	if len(data) < next+n {
		return nil, 0, corrupt("zipmap string truncated")
	}
	return data[next : next+n], next + n, nil
}

// readZipmapValue decodes a value slot: length, a one-byte free-space
// count, then the value bytes. The caller skips the free-space padding
// that follows by adding the returned free count to its cursor.
func readZipmapValue(data []byte, off int) (value []byte, length int, free int, next int, err error) {
	n, after, err := readZipmapLen(data, off)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if after >= len(data) {
		return nil, 0, 0, 0, corrupt("zipmap truncated reading free-space byte")
	}
	freeByte := int(data[after])
	valStart := after + 1
	if len(data) < valStart+n {
		return nil, 0, 0, 0, corrupt("zipmap value truncated")
	}
	return data[valStart : valStart+n], n, freeByte, valStart + n, nil
}
