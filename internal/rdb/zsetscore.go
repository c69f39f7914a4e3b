package rdb

import (
	"math"
	"strconv"
)

// readZSetScoreV1 decodes the original ZSET encoding's score: a single
// length byte followed by that many ASCII bytes, with three reserved
// lengths standing for non-finite values.
func (p *Parser) readZSetScoreV1() (float64, error) {
	lb, err := p.readByte()
	if err != nil {
		return 0, err
	}
	switch lb {
	case 255:
		return math.Inf(-1), nil
	case 254:
		return math.Inf(1), nil
	case 253:
		return math.NaN(), nil
	default:
		buf, err := p.readFull(int(lb))
		if err != nil {
			return 0, err
		}
		if !isASCIIDecimal(buf) {
			return 0, corrupt("zset score is not ASCII decimal")
		}
		v, err := strconv.ParseFloat(string(buf), 64)
		if err != nil {
			return 0, corrupt("zset score failed to parse: " + err.Error())
		}
		return v, nil
	}
}

// skipZSetScoreV1 advances the cursor past a ZSET v1 score without
// decoding it.
func (p *Parser) skipZSetScoreV1() error {
	lb, err := p.readByte()
	if err != nil {
		return err
	}
	if lb >= 253 {
		return nil
	}
	return p.discard(int(lb))
}

func isASCIIDecimal(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for i, c := range b {
		switch {
		case c >= '0' && c <= '9':
		case c == '-' || c == '+' || c == '.':
		case c == 'e' || c == 'E':
		default:
			return false
		}
		_ = i
	}
	return true
}
