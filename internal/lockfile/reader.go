package lockfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ralt/lockedpip/internal/models"
	"github.com/ralt/lockedpip/internal/utils"
	"github.com/sirupsen/logrus"
)

// ReadFile reads a lockfile as stored on disk, without decompressing it
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.LockError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to read lockfile: %w", err),
		}
	}
	logrus.Debugf("Read %s (%d bytes, sha256 %s)", path, len(data), utils.CalculateChecksum(data, "sha256"))
	return data, nil
}

// Decode returns the lockfile text, decompressing raw according to the
// extension of path (.gz, .zst, .xz) or, failing that, its magic bytes
func Decode(path string, raw []byte) ([]byte, error) {
	compression := utils.DetectCompression(path)
	if compression == utils.CompressionNone {
		compression = utils.SniffCompression(raw)
	}
	if compression == utils.CompressionNone {
		return raw, nil
	}

	logrus.Debugf("Decompressing %s lockfile %s", compression, path)
	data, err := utils.Decompress(raw, compression)
	if err != nil {
		return nil, &models.LockError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to decompress %s: %w", path, err),
		}
	}
	return data, nil
}

// Load reads, decompresses and parses the lockfile at path
func Load(path, platform string) (*models.PackageTable, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(path, raw, platform)
}

// LoadBytes decompresses and parses lockfile content already read from path
func LoadBytes(path string, raw []byte, platform string) (*models.PackageTable, error) {
	data, err := Decode(path, raw)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data), platform)
}
