package signer

// Verifier checks detached signatures over lockfile contents
type Verifier interface {
	// VerifyDetached checks signature against data and returns the signer's identity
	VerifyDetached(data, signature []byte) (string, error)
}
