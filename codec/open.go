package codec

import (
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error { return r.close() }

// Open opens path for reading. "-" is standard input. Files ending in
// .zst or .lz4 are decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{Reader: dec, close: func() error {
			dec.Close()
			return f.Close()
		}}, nil
	case ".lz4":
		return &readCloser{Reader: lz4.NewReader(f), close: f.Close}, nil
	default:
		return f, nil
	}
}
