package utils

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
)

// CalculateChecksum calculates a specific checksum for data
func CalculateChecksum(data []byte, hashType string) string {
	var h hash.Hash

	switch hashType {
	case "sha512":
		h = sha512.New()
	default:
		h = sha256.New()
	}

	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
