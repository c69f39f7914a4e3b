package rdb

import (
	"encoding/binary"
	"io"
	"math"
)

// readByte reads a single byte, wrapping EOF as ShortRead.
func (p *Parser) readByte() (byte, error) {
	b, err := p.r.ReadByte()
	if err != nil {
		return 0, shortRead("byte", err)
	}
	return b, nil
}

// readFull reads exactly n bytes, wrapping EOF/ErrUnexpectedEOF as ShortRead.
func (p *Parser) readFull(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(p.r, buf); err != nil {
		return nil, shortRead("bytes", err)
	}
	return buf, nil
}

// discard reads and drops exactly n bytes without allocating a result.
func (p *Parser) discard(n int) error {
	if n == 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, p.r, int64(n)); err != nil {
		return shortRead("discard", err)
	}
	return nil
}

func (p *Parser) readUint32BE() (uint32, error) {
	buf, err := p.readFull(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

func (p *Parser) readUint64LE() (uint64, error) {
	buf, err := p.readFull(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

func (p *Parser) readFloat64LE() (float64, error) {
	v, err := p.readUint64LE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// readLengthWithEncoding reads a length field per the two-bit tag scheme:
// top bits 00 -> six-bit length; 01 -> fourteen-bit big-endian length;
// 10 -> the following four bytes are a big-endian 32-bit length; 11 ->
// the remaining six bits are an encoding code, not a length, and the
// second return value is true.
func (p *Parser) readLengthWithEncoding() (uint64, bool, error) {
	b, err := p.readByte()
	if err != nil {
		return 0, false, err
	}
	switch b >> 6 {
	case 0:
		return uint64(b & 0x3F), false, nil
	case 1:
		b2, err := p.readByte()
		if err != nil {
			return 0, false, err
		}
		return (uint64(b&0x3F) << 8) | uint64(b2), false, nil
	case 2:
		v, err := p.readUint32BE()
		if err != nil {
			return 0, false, err
		}
		return uint64(v), false, nil
	default:
		return uint64(b & 0x3F), true, nil
	}
}

// readLength reads a length field that must not be an encoding code.
func (p *Parser) readLength() (uint64, error) {
	n, encoded, err := p.readLengthWithEncoding()
	if err != nil {
		return 0, err
	}
	if encoded {
		return 0, corrupt("length field carries an encoding code where a plain length was expected")
	}
	return n, nil
}
