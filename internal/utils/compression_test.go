package utils

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func TestDetectCompression(t *testing.T) {
	assert.Equal(t, CompressionGzip, DetectCompression("conda-lock.yml.gz"))
	assert.Equal(t, CompressionZstd, DetectCompression("dir/conda-lock.yml.ZST"))
	assert.Equal(t, CompressionXz, DetectCompression("conda-lock.yml.xz"))
	assert.Equal(t, CompressionNone, DetectCompression("conda-lock.yml"))
}

func TestSniffAndDecompress(t *testing.T) {
	data := []byte("package:\n- name: foo\n  platform: linux-64\n")

	gz, err := GzipCompress(data)
	require.NoError(t, err)

	var zbuf bytes.Buffer
	zw, err := zstd.NewWriter(&zbuf)
	require.NoError(t, err)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var xbuf bytes.Buffer
	xw, err := xz.NewWriter(&xbuf)
	require.NoError(t, err)
	_, err = xw.Write(data)
	require.NoError(t, err)
	require.NoError(t, xw.Close())

	for want, compressed := range map[Compression][]byte{
		CompressionGzip: gz,
		CompressionZstd: zbuf.Bytes(),
		CompressionXz:   xbuf.Bytes(),
		CompressionNone: data,
	} {
		got := SniffCompression(compressed)
		assert.Equal(t, want, got)

		plain, err := Decompress(compressed, got)
		require.NoError(t, err, want.String())
		assert.Equal(t, data, plain)
	}
}

func TestCalculateChecksum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", CalculateChecksum(nil, "sha256"))
	assert.Len(t, CalculateChecksum([]byte("x"), "sha512"), 128)
}
