package utils

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies how a file is compressed
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionXz
)

// String returns the string representation of Compression
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionXz:
		return "xz"
	default:
		return "none"
	}
}

// Magic bytes for compression detection
var (
	gzipMagic = []byte{0x1F, 0x8B}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	xzMagic   = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
)

// SniffCompression determines the compression from the leading bytes of data
func SniffCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, xzMagic):
		return CompressionXz
	default:
		return CompressionNone
	}
}

// DetectCompression determines the compression from the file extension
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst":
		return CompressionZstd
	case ".xz":
		return CompressionXz
	default:
		return CompressionNone
	}
}

// Decompress decompresses data with the given compression
func Decompress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		return GzipDecompress(data)
	case CompressionZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompressionXz:
		xr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return io.ReadAll(xr)
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}
}

// GzipCompress compresses data using gzip
func GzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GzipDecompress decompresses gzip data
func GzipDecompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
