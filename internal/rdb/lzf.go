package rdb

import "github.com/zhuyie/golzf"

// lzfDecompress inflates an LZF-compressed blob to its declared original
// length. golzf.Decompress requires the destination slice to already be
// sized to the decompressed length.
func lzfDecompress(compressed []byte, rawLen int) ([]byte, error) {
	dst := make([]byte, rawLen)
	n, err := golzf.Decompress(compressed, dst)
	if err != nil {
		return nil, corrupt("lzf: " + err.Error())
	}
	if n != rawLen {
		return nil, corrupt("lzf decompressed length does not match declared length")
	}
	return dst, nil
}
