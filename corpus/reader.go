package corpus

import (
	"io"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// countingReader counts raw bytes consumed from the underlying reader.
// Progress is measured against the compressed file size, so the counter
// wraps the file before any decompression layer.
type countingReader struct {
	r io.Reader
	n atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// BytesRead returns the number of raw bytes consumed so far.
func (c *countingReader) BytesRead() int64 {
	return c.n.Load()
}

// decompress wraps r in a decompression reader based on the file extension.
// Plain files pass through unchanged.
func decompress(r io.Reader, path string) (io.Reader, func() error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() error { zr.Close(); return nil }, nil
	default:
		return r, func() error { return nil }, nil
	}
}
