// Package source opens a snapshot file for decoding, transparently
// unwrapping whole-file transport compression that sits outside the RDB
// framing itself (a Dragonfly deployment convenience, not a wire opcode
// this decoder's frame driver is specified to understand).
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Open opens path and wraps it according to its extension: ".zst" gets a
// streaming zstd reader, ".lz4" a streaming lz4 reader, anything else is
// returned as the raw file handle.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return &zstdReadCloser{dec: dec, f: f}, nil
	case ".lz4":
		return &lz4ReadCloser{r: lz4.NewReader(f), f: f}, nil
	default:
		return f, nil
	}
}

type zstdReadCloser struct {
	dec *zstd.Decoder
	f   *os.File
}

func (z *zstdReadCloser) Read(p []byte) (int, error) { return z.dec.Read(p) }
func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return z.f.Close()
}

type lz4ReadCloser struct {
	r *lz4.Reader
	f *os.File
}

func (l *lz4ReadCloser) Read(p []byte) (int, error) { return l.r.Read(p) }
func (l *lz4ReadCloser) Close() error                { return l.f.Close() }
