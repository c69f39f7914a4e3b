package rdb

import (
	"bytes"
	"testing"
)

func TestParseZipmap(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(2) // zmlen hint
	// field "a" -> value "1", free=0
	buf.WriteByte(1)
	buf.WriteByte('a')
	buf.WriteByte(1) // value length
	buf.WriteByte(0) // free
	buf.WriteByte('1')
	// field "bb" -> value "22", free=2 padding bytes
	buf.WriteByte(2)
	buf.WriteString("bb")
	buf.WriteByte(2)
	buf.WriteByte(2) // free count
	buf.WriteString("22")
	buf.Write([]byte{0, 0}) // free padding, must be skipped
	buf.WriteByte(0xFF)

	entries, err := parseZipmap(buf.Bytes())
	if err != nil {
		t.Fatalf("parseZipmap: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if string(entries[0].field) != "a" || string(entries[0].value) != "1" {
		t.Fatalf("entry 0 = %+v", entries[0])
	}
	if string(entries[1].field) != "bb" || string(entries[1].value) != "22" {
		t.Fatalf("entry 1 = %+v", entries[1])
	}
}

func TestParseZipmapMissingTerminator(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(1)
	buf.WriteByte(1)
	buf.WriteByte('a')
	buf.WriteByte(1)
	buf.WriteByte(0)
	buf.WriteByte('1')
	// no 0xFF terminator
	if _, err := parseZipmap(buf.Bytes()); err == nil {
		t.Fatalf("expected Corrupt for missing terminator")
	}
}

func TestParseIntset(t *testing.T) {
	data := hexBytes(t, "02 00 00 00 02 00 00 00 07 00 2A 00")
	values, err := parseIntset(data)
	if err != nil {
		t.Fatalf("parseIntset: %v", err)
	}
	want := []int64{7, 42}
	if len(values) != len(want) || values[0] != want[0] || values[1] != want[1] {
		t.Fatalf("got %v, want %v", values, want)
	}
}

func TestParseIntsetBadWidth(t *testing.T) {
	data := hexBytes(t, "03 00 00 00 00 00 00 00")
	if _, err := parseIntset(data); err == nil {
		t.Fatalf("expected Corrupt for invalid width")
	}
}

func TestParseZiplistRejectsBadTerminator(t *testing.T) {
	zl := buildZiplist(t, []zipEntry{{isInt: true, num: 1}})
	zl[len(zl)-1] = 0x00 // corrupt the terminator
	if _, err := parseZiplist(zl); err == nil {
		t.Fatalf("expected Corrupt for missing 0xFF terminator")
	}
}

func TestParseZiplist24BitSignExtension(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(0)    // prevlen
	body.WriteByte(0xF0) // 24-bit int flag
	body.Write([]byte{0xFF, 0xFF, 0xFF})
	header := make([]byte, 10)
	header[8] = 1
	var zl bytes.Buffer
	zl.Write(header)
	zl.Write(body.Bytes())
	zl.WriteByte(0xFF)

	entries, err := parseZiplist(zl.Bytes())
	if err != nil {
		t.Fatalf("parseZiplist: %v", err)
	}
	if len(entries) != 1 || entries[0].num != -1 {
		t.Fatalf("got %+v, want a single entry with value -1", entries)
	}
}

// TestBlobSkipRoundtrip asserts invariant 5: the byte offset consumed by
// readBlob equals the byte offset advanced by skipBlob for the same
// input prefix.
func TestBlobSkipRoundtrip(t *testing.T) {
	cases := [][]byte{
		hexBytes(t, "03 66 6F 6F"),          // plain 3-byte string
		hexBytes(t, "C0 2A"),                // INT8 encoding, value 42
		hexBytes(t, "C1 2A 00"),             // INT16 encoding
		hexBytes(t, "C2 2A 00 00 00"),       // INT32 encoding
	}
	for i, data := range cases {
		readBuf := bytes.NewReader(append(append([]byte{}, data...), 0xAA))
		pr := NewParser(readBuf, &recordingFormatter{}, testFilter{allow: true})
		if _, err := pr.readBlob(); err != nil {
			t.Fatalf("case %d: readBlob: %v", i, err)
		}
		consumedRead := len(data)
		left, _ := readBuf.Seek(0, 1)
		_ = left

		skipBuf := bytes.NewReader(append(append([]byte{}, data...), 0xAA))
		ps := NewParser(skipBuf, &recordingFormatter{}, testFilter{allow: true})
		if err := ps.skipBlob(); err != nil {
			t.Fatalf("case %d: skipBlob: %v", i, err)
		}

		nextRead, err := pr.readByte()
		if err != nil {
			t.Fatalf("case %d: readByte after readBlob: %v", i, err)
		}
		nextSkip, err := ps.readByte()
		if err != nil {
			t.Fatalf("case %d: readByte after skipBlob: %v", i, err)
		}
		if nextRead != 0xAA || nextSkip != 0xAA || nextRead != nextSkip {
			t.Fatalf("case %d: cursor mismatch after read vs skip (%d consumed)", i, consumedRead)
		}
	}
}
