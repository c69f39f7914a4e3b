package rdb

// skipValue mirrors dispatchValue but advances the cursor without
// materializing any element, for records the filter rejected.
func (p *Parser) skipValue(tag byte) error {
	switch tag {
	case TypeString:
		return p.skipBlob()

	case TypeList, TypeSet, TypeListQuicklist:
		n, err := p.readLength()
		if err != nil {
			return err
		}
		for i := uint64(0); i < n; i++ {
			if err := p.skipBlob(); err != nil {
				return err
			}
		}
		return nil

	case TypeHash:
		n, err := p.readLength()
		if err != nil {
			return err
		}
		for i := uint64(0); i < 2*n; i++ {
			if err := p.skipBlob(); err != nil {
				return err
			}
		}
		return nil

	case TypeZSet:
		n, err := p.readLength()
		if err != nil {
			return err
		}
		for i := uint64(0); i < n; i++ {
			if err := p.skipBlob(); err != nil { // member
				return err
			}
			if err := p.skipZSetScoreV1(); err != nil { // score
				return err
			}
		}
		return nil

	case TypeZSet2:
		n, err := p.readLength()
		if err != nil {
			return err
		}
		for i := uint64(0); i < n; i++ {
			if err := p.skipBlob(); err != nil { // member
				return err
			}
			if err := p.discard(8); err != nil { // score, 8-byte LE f64
				return err
			}
		}
		return nil

	case TypeHashZipmap, TypeListZiplist, TypeSetIntset, TypeZSetZiplist, TypeHashZiplist:
		return p.skipBlob()

	default:
		return corrupt("unknown value-encoding tag in skip path")
	}
}
