package source

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Extensions recognized as compressed scripts.
const (
	ExtGzip   = ".gz"
	ExtZstd   = ".zst"
	ExtBrotli = ".br"
	ExtLZ4    = ".lz4"
	ExtSnappy = ".sz"
)

// decompress wraps r in the decoder picked by the extension of name. Other
// names are read as is.
func decompress(name string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ExtGzip:
		return gzip.NewReader(r)
	case ExtZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}

		return dec.IOReadCloser(), nil
	case ExtBrotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case ExtLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case ExtSnappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}
