package rdb

import "strconv"

// dispatchValue drives the formatter through a start/element*/end
// sequence for one of the twelve value-encoding tags.
func (p *Parser) dispatchValue(tag byte, key []byte, expiry *int64) error {
	switch tag {
	case TypeString:
		return p.dispatchString(key, expiry)
	case TypeList:
		return p.dispatchPlainList(key, expiry)
	case TypeSet:
		return p.dispatchPlainSet(key, expiry)
	case TypeZSet:
		return p.dispatchZSetV1(key, expiry)
	case TypeZSet2:
		return p.dispatchZSetV2(key, expiry)
	case TypeHash:
		return p.dispatchPlainHash(key, expiry)
	case TypeHashZipmap:
		return p.dispatchHashZipmap(key, expiry)
	case TypeListZiplist:
		return p.dispatchListZiplist(key, expiry)
	case TypeSetIntset:
		return p.dispatchSetIntset(key, expiry)
	case TypeZSetZiplist:
		return p.dispatchZSetZiplist(key, expiry)
	case TypeHashZiplist:
		return p.dispatchHashZiplist(key, expiry)
	case TypeListQuicklist:
		return p.dispatchListQuicklist(key, expiry)
	default:
		return corrupt("unknown value-encoding tag " + strconv.Itoa(int(tag)))
	}
}

func (p *Parser) dispatchString(key []byte, expiry *int64) error {
	v, err := p.readBlob()
	if err != nil {
		return err
	}
	if err := p.formatter.Set(key, v, expiry); err != nil {
		return sinkFailed("Set", err)
	}
	return nil
}

func (p *Parser) dispatchPlainList(key []byte, expiry *int64) error {
	n, err := p.readLength()
	if err != nil {
		return err
	}
	if err := p.formatter.StartList(key, n, expiry, EncodingType{Kind: KindLinkedList}); err != nil {
		return sinkFailed("StartList", err)
	}
	for i := uint64(0); i < n; i++ {
		v, err := p.readBlob()
		if err != nil {
			return err
		}
		if err := p.formatter.ListElement(key, v); err != nil {
			return sinkFailed("ListElement", err)
		}
	}
	if err := p.formatter.EndList(key); err != nil {
		return sinkFailed("EndList", err)
	}
	return nil
}

func (p *Parser) dispatchPlainSet(key []byte, expiry *int64) error {
	n, err := p.readLength()
	if err != nil {
		return err
	}
	if err := p.formatter.StartSet(key, n, expiry, EncodingType{Kind: KindHashtable}); err != nil {
		return sinkFailed("StartSet", err)
	}
	for i := uint64(0); i < n; i++ {
		v, err := p.readBlob()
		if err != nil {
			return err
		}
		if err := p.formatter.SetElement(key, v); err != nil {
			return sinkFailed("SetElement", err)
		}
	}
	if err := p.formatter.EndSet(key); err != nil {
		return sinkFailed("EndSet", err)
	}
	return nil
}

func (p *Parser) dispatchPlainHash(key []byte, expiry *int64) error {
	n, err := p.readLength()
	if err != nil {
		return err
	}
	if err := p.formatter.StartHash(key, n, expiry, EncodingType{Kind: KindHashtable}); err != nil {
		return sinkFailed("StartHash", err)
	}
	for i := uint64(0); i < n; i++ {
		field, err := p.readBlob()
		if err != nil {
			return err
		}
		value, err := p.readBlob()
		if err != nil {
			return err
		}
		if err := p.formatter.HashElement(key, field, value); err != nil {
			return sinkFailed("HashElement", err)
		}
	}
	if err := p.formatter.EndHash(key); err != nil {
		return sinkFailed("EndHash", err)
	}
	return nil
}

func (p *Parser) dispatchZSetV1(key []byte, expiry *int64) error {
	n, err := p.readLength()
	if err != nil {
		return err
	}
	if err := p.formatter.StartSortedSet(key, n, expiry, EncodingType{Kind: KindHashtable}); err != nil {
		return sinkFailed("StartSortedSet", err)
	}
	for i := uint64(0); i < n; i++ {
		member, err := p.readBlob()
		if err != nil {
			return err
		}
		score, err := p.readZSetScoreV1()
		if err != nil {
			return err
		}
		if err := p.formatter.SortedSetElement(key, score, member); err != nil {
			return sinkFailed("SortedSetElement", err)
		}
	}
	if err := p.formatter.EndSortedSet(key); err != nil {
		return sinkFailed("EndSortedSet", err)
	}
	return nil
}

func (p *Parser) dispatchZSetV2(key []byte, expiry *int64) error {
	n, err := p.readLength()
	if err != nil {
		return err
	}
	if err := p.formatter.StartSortedSet(key, n, expiry, EncodingType{Kind: KindHashtable}); err != nil {
		return sinkFailed("StartSortedSet", err)
	}
	for i := uint64(0); i < n; i++ {
		member, err := p.readBlob()
		if err != nil {
			return err
		}
		score, err := p.readFloat64LE()
		if err != nil {
			return err
		}
		if err := p.formatter.SortedSetElement(key, score, member); err != nil {
			return sinkFailed("SortedSetElement", err)
		}
	}
	if err := p.formatter.EndSortedSet(key); err != nil {
		return sinkFailed("EndSortedSet", err)
	}
	return nil
}

func (p *Parser) dispatchHashZipmap(key []byte, expiry *int64) error {
	blob, err := p.readBlob()
	if err != nil {
		return err
	}
	pairs, err := parseZipmap(blob)
	if err != nil {
		return err
	}
	enc := EncodingType{Kind: KindZipmap, RawLen: uint64(len(blob))}
	if err := p.formatter.StartHash(key, uint64(len(pairs)), expiry, enc); err != nil {
		return sinkFailed("StartHash", err)
	}
	for _, pair := range pairs {
		if err := p.formatter.HashElement(key, pair.field, pair.value); err != nil {
			return sinkFailed("HashElement", err)
		}
	}
	if err := p.formatter.EndHash(key); err != nil {
		return sinkFailed("EndHash", err)
	}
	return nil
}

func (p *Parser) dispatchListZiplist(key []byte, expiry *int64) error {
	blob, err := p.readBlob()
	if err != nil {
		return err
	}
	entries, err := parseZiplist(blob)
	if err != nil {
		return err
	}
	enc := EncodingType{Kind: KindZiplist, RawLen: uint64(len(blob))}
	if err := p.formatter.StartList(key, uint64(len(entries)), expiry, enc); err != nil {
		return sinkFailed("StartList", err)
	}
	for _, e := range entries {
		if err := p.formatter.ListElement(key, e.bytes()); err != nil {
			return sinkFailed("ListElement", err)
		}
	}
	if err := p.formatter.EndList(key); err != nil {
		return sinkFailed("EndList", err)
	}
	return nil
}

func (p *Parser) dispatchSetIntset(key []byte, expiry *int64) error {
	blob, err := p.readBlob()
	if err != nil {
		return err
	}
	values, err := parseIntset(blob)
	if err != nil {
		return err
	}
	enc := EncodingType{Kind: KindIntset, RawLen: uint64(len(blob))}
	if err := p.formatter.StartSet(key, uint64(len(values)), expiry, enc); err != nil {
		return sinkFailed("StartSet", err)
	}
	for _, v := range values {
		if err := p.formatter.SetElement(key, []byte(strconv.FormatInt(v, 10))); err != nil {
			return sinkFailed("SetElement", err)
		}
	}
	if err := p.formatter.EndSet(key); err != nil {
		return sinkFailed("EndSet", err)
	}
	return nil
}

func (p *Parser) dispatchZSetZiplist(key []byte, expiry *int64) error {
	blob, err := p.readBlob()
	if err != nil {
		return err
	}
	entries, err := parseZiplist(blob)
	if err != nil {
		return err
	}
	if len(entries)%2 != 0 {
		return corrupt("zset ziplist has an odd number of entries")
	}
	enc := EncodingType{Kind: KindZiplist, RawLen: uint64(len(blob))}
	if err := p.formatter.StartSortedSet(key, uint64(len(entries)/2), expiry, enc); err != nil {
		return sinkFailed("StartSortedSet", err)
	}
	for i := 0; i < len(entries); i += 2 {
		member := entries[i].bytes()
		score, err := strconv.ParseFloat(string(entries[i+1].bytes()), 64)
		if err != nil {
			return corrupt("zset ziplist score failed to parse: " + err.Error())
		}
		if err := p.formatter.SortedSetElement(key, score, member); err != nil {
			return sinkFailed("SortedSetElement", err)
		}
	}
	if err := p.formatter.EndSortedSet(key); err != nil {
		return sinkFailed("EndSortedSet", err)
	}
	return nil
}

func (p *Parser) dispatchHashZiplist(key []byte, expiry *int64) error {
	blob, err := p.readBlob()
	if err != nil {
		return err
	}
	entries, err := parseZiplist(blob)
	if err != nil {
		return err
	}
	if len(entries)%2 != 0 {
		return corrupt("hash ziplist has an odd number of entries")
	}
	enc := EncodingType{Kind: KindZiplist, RawLen: uint64(len(blob))}
	if err := p.formatter.StartHash(key, uint64(len(entries)/2), expiry, enc); err != nil {
		return sinkFailed("StartHash", err)
	}
	for i := 0; i < len(entries); i += 2 {
		if err := p.formatter.HashElement(key, entries[i].bytes(), entries[i+1].bytes()); err != nil {
			return sinkFailed("HashElement", err)
		}
	}
	if err := p.formatter.EndHash(key); err != nil {
		return sinkFailed("EndHash", err)
	}
	return nil
}

// dispatchListQuicklist handles LIST_QUICKLIST: a length-prefixed count
// of ziplist nodes, each itself a length-prefixed blob. The outer
// start/end pair is emitted once for the whole key; node boundaries are
// invisible to the formatter.
func (p *Parser) dispatchListQuicklist(key []byte, expiry *int64) error {
	nodes, err := p.readLength()
	if err != nil {
		return err
	}
	if err := p.formatter.StartList(key, 0, expiry, EncodingType{Kind: KindQuicklist}); err != nil {
		return sinkFailed("StartList", err)
	}
	for i := uint64(0); i < nodes; i++ {
		blob, err := p.readBlob()
		if err != nil {
			return err
		}
		entries, err := parseZiplist(blob)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := p.formatter.ListElement(key, e.bytes()); err != nil {
				return sinkFailed("ListElement", err)
			}
		}
	}
	if err := p.formatter.EndList(key); err != nil {
		return sinkFailed("EndList", err)
	}
	return nil
}
