package rdb

import (
	"bufio"
	"io"
	"strconv"
)

// Parser decodes one RDB snapshot stream, driving a Formatter through
// semantic events and consulting a Filter to decide what gets
// materialized. A Parser is single-use: Parse consumes the stream and
// must not be called twice on the same instance.
type Parser struct {
	r         *bufio.Reader
	formatter Formatter
	filter    Filter

	currentDB  int
	dbAdmitted bool
	lastExpiry *int64
}

// NewParser builds a Parser reading from r, pushing events into
// formatter, gated by filter.
func NewParser(r io.Reader, formatter Formatter, filter Filter) *Parser {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Parser{
		r:          br,
		formatter:  formatter,
		filter:     filter,
		dbAdmitted: filter.MatchesDB(0),
	}
}

// Parse runs the frame driver to completion: magic, version, then the
// opcode loop until EOF.
func (p *Parser) Parse() error {
	if err := p.readMagicAndVersion(); err != nil {
		return err
	}
	if err := p.formatter.StartRDB(); err != nil {
		return sinkFailed("StartRDB", err)
	}
	for {
		done, err := p.step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (p *Parser) readMagicAndVersion() error {
	magic, err := p.readFull(len(MagicString))
	if err != nil {
		return err
	}
	if string(magic) != MagicString {
		return invalid("bad magic string")
	}
	digits, err := p.readFull(4)
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(string(digits))
	if err != nil {
		return invalid("version field is not ASCII digits")
	}
	if v < MinVersion || v > MaxVersion {
		return unsupportedVersion(v)
	}
	return nil
}

// step consumes one opcode or value record. It returns done=true once
// the EOF opcode has been fully handled.
func (p *Parser) step() (bool, error) {
	opcode, err := p.readByte()
	if err != nil {
		return false, err
	}

	switch opcode {
	case OpSelectDB:
		n, err := p.readLength()
		if err != nil {
			return false, err
		}
		p.currentDB = int(n)
		p.dbAdmitted = p.filter.MatchesDB(p.currentDB)
		if p.dbAdmitted {
			if err := p.formatter.StartDatabase(p.currentDB); err != nil {
				return false, sinkFailed("StartDatabase", err)
			}
		}
		return false, nil

	case OpResizeDB:
		mainSize, err := p.readLength()
		if err != nil {
			return false, err
		}
		expiresSize, err := p.readLength()
		if err != nil {
			return false, err
		}
		if err := p.formatter.ResizeDB(mainSize, expiresSize); err != nil {
			return false, sinkFailed("ResizeDB", err)
		}
		return false, nil

	case OpAux:
		k, err := p.readBlob()
		if err != nil {
			return false, err
		}
		v, err := p.readBlob()
		if err != nil {
			return false, err
		}
		if err := p.formatter.AuxField(k, v); err != nil {
			return false, sinkFailed("AuxField", err)
		}
		return false, nil

	case OpExpireTimeMS:
		ms, err := p.readUint64LE()
		if err != nil {
			return false, err
		}
		v := int64(ms)
		p.lastExpiry = &v
		return false, nil

	case OpExpireTime:
		sec, err := p.readUint32BE()
		if err != nil {
			return false, err
		}
		v := int64(sec) * 1000
		p.lastExpiry = &v
		return false, nil

	case OpEOF:
		if err := p.formatter.EndDatabase(p.currentDB); err != nil {
			return false, sinkFailed("EndDatabase", err)
		}
		if err := p.formatter.EndRDB(); err != nil {
			return false, sinkFailed("EndRDB", err)
		}
		trailer, err := io.ReadAll(p.r)
		if err != nil {
			return false, shortRead("checksum trailer", err)
		}
		if len(trailer) > 0 {
			if err := p.formatter.Checksum(trailer); err != nil {
				return false, sinkFailed("Checksum", err)
			}
		}
		return true, nil

	default:
		err := p.stepValueRecord(opcode)
		p.lastExpiry = nil
		return false, err
	}
}

// stepValueRecord reads the key, consults the filter, and either
// dispatches the value into the formatter or skips it byte-exact.
func (p *Parser) stepValueRecord(tag byte) error {
	if !p.dbAdmitted {
		if err := p.skipBlob(); err != nil { // key
			return err
		}
		return p.skipValue(tag)
	}

	key, err := p.readBlob()
	if err != nil {
		return err
	}
	if p.filter.MatchesType(tag) && p.filter.MatchesKey(key) {
		return p.dispatchValue(tag, key, p.lastExpiry)
	}
	return p.skipValue(tag)
}
