package rdb

import (
	"encoding/binary"
	"strconv"
)

// readBlob produces a byte vector from a length-prefixed or integer-/
// LZF-encoded payload.
func (p *Parser) readBlob() ([]byte, error) {
	length, encoded, err := p.readLengthWithEncoding()
	if err != nil {
		return nil, err
	}
	if !encoded {
		return p.readFull(int(length))
	}
	return p.readEncodedBlob(length)
}

// readEncodedBlob handles the four codes carried in an encoded length
// field: INT8/INT16/INT32 packed integers rendered as ASCII decimal, and
// an LZF-compressed payload.
func (p *Parser) readEncodedBlob(code uint64) ([]byte, error) {
	switch code {
	case encInt8:
		b, err := p.readByte()
		if err != nil {
			return nil, err
		}
		return []byte(strconv.FormatInt(int64(int8(b)), 10)), nil
	case encInt16:
		buf, err := p.readFull(2)
		if err != nil {
			return nil, err
		}
		v := int16(binary.LittleEndian.Uint16(buf))
		return []byte(strconv.FormatInt(int64(v), 10)), nil
	case encInt32:
		buf, err := p.readFull(4)
		if err != nil {
			return nil, err
		}
		v := int32(binary.LittleEndian.Uint32(buf))
		return []byte(strconv.FormatInt(int64(v), 10)), nil
	case encLZF:
		clen, err := p.readLength()
		if err != nil {
			return nil, err
		}
		rlen, err := p.readLength()
		if err != nil {
			return nil, err
		}
		compressed, err := p.readFull(int(clen))
		if err != nil {
			return nil, err
		}
		return lzfDecompress(compressed, int(rlen))
	default:
		return nil, corrupt("unknown blob encoding code")
	}
}

// skipBlob advances the cursor past a blob without materializing it.
func (p *Parser) skipBlob() error {
	length, encoded, err := p.readLengthWithEncoding()
	if err != nil {
		return err
	}
	if !encoded {
		return p.discard(int(length))
	}
	switch length {
	case encInt8:
		return p.discard(1)
	case encInt16:
		return p.discard(2)
	case encInt32:
		return p.discard(4)
	case encLZF:
		clen, err := p.readLength()
		if err != nil {
			return err
		}
		if _, err := p.readLength(); err != nil { // original length, unused when skipping
			return err
		}
		return p.discard(int(clen))
	default:
		return corrupt("unknown blob encoding code")
	}
}
