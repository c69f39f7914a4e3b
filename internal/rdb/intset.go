package rdb

import "encoding/binary"

// parseIntset decodes an intset blob: a little-endian uint32 encoding
// byte width (2, 4, or 8), a little-endian uint32 element count, then
// that many little-endian signed integers of the declared width.
func parseIntset(data []byte) ([]int64, error) {
	if len(data) < 8 {
		return nil, corrupt("intset shorter than its fixed header")
	}
	width := binary.LittleEndian.Uint32(data[0:4])
	count := binary.LittleEndian.Uint32(data[4:8])
	if width != 2 && width != 4 && width != 8 {
		return nil, corrupt("intset encoding width must be 2, 4, or 8")
	}
	off := 8
	need := int(count) * int(width)
	if len(data) < off+need {
		return nil, corrupt("intset truncated before declared element count")
	}
	values := make([]int64, count)
	for i := range values {
		switch width {
		case 2:
			values[i] = int64(int16(binary.LittleEndian.Uint16(data[off : off+2])))
		case 4:
			values[i] = int64(int32(binary.LittleEndian.Uint32(data[off : off+4])))
		case 8:
			values[i] = int64(binary.LittleEndian.Uint64(data[off : off+8]))
		}
		off += int(width)
	}
	return values, nil
}
