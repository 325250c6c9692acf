package signer

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// GPGVerifier implements Verifier using an OpenPGP public keyring
type GPGVerifier struct {
	keyring openpgp.EntityList
}

// NewGPGVerifier creates a verifier from an armored or binary keyring file
func NewGPGVerifier(keyringPath string) (*GPGVerifier, error) {
	if keyringPath == "" {
		return nil, fmt.Errorf("keyring path is empty")
	}

	data, err := os.ReadFile(keyringPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyring: %w", err)
	}

	return NewGPGVerifierFromKeyring(data)
}

// NewGPGVerifierFromKeyring creates a verifier from keyring bytes
func NewGPGVerifierFromKeyring(data []byte) (*GPGVerifier, error) {
	// Try to parse as armored keyring first
	entityList, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		// Try as binary keyring
		entityList, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	if len(entityList) == 0 {
		return nil, fmt.Errorf("no keys found in keyring")
	}

	return &GPGVerifier{keyring: entityList}, nil
}

// VerifyDetached checks an armored or binary detached signature
func (v *GPGVerifier) VerifyDetached(data, signature []byte) (string, error) {
	var (
		entity *openpgp.Entity
		err    error
	)

	if isArmored(signature) {
		entity, err = openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	} else {
		entity, err = openpgp.CheckDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	}
	if err != nil {
		return "", fmt.Errorf("signature verification failed: %w", err)
	}

	return identity(entity), nil
}

func isArmored(signature []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(signature), []byte("-----BEGIN"))
}

func identity(entity *openpgp.Entity) string {
	if entity == nil {
		return ""
	}
	if id := entity.PrimaryIdentity(); id != nil {
		return id.Name
	}
	return fmt.Sprintf("%X", entity.PrimaryKey.Fingerprint)
}
