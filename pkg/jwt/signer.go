package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// MinKeyLength is the minimum HMAC secret length in bytes (256 bits).
const MinKeyLength = 32

// Signer computes and checks HMAC-SHA256 signatures with a fixed secret.
// A Signer is immutable after construction and safe for concurrent use.
type Signer struct {
	key   []byte
	keyID string
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithKeyID tags the signer with a key identifier. Tokens it issues carry the id
// in the header "kid" field so verifiers holding several keys can pick the right one.
func WithKeyID(id string) SignerOption {
	return func(s *Signer) {
		s.keyID = id
	}
}

// NewSigner creates a signer for secret. The secret is copied.
func NewSigner(secret []byte, opts ...SignerOption) (*Signer, error) {
	if len(secret) < MinKeyLength {
		return nil, ErrWeakKey
	}
	s := &Signer{key: append([]byte(nil), secret...)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// KeyID returns the key identifier, or "" for the default key.
func (s *Signer) KeyID() string {
	return s.keyID
}

// Sign returns HMAC-SHA256(key, message).
func (s *Signer) Sign(message []byte) []byte {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(message)
	return mac.Sum(nil)
}

// Verify recomputes the signature of message and compares it with signature
// in constant time.
func (s *Signer) Verify(message, signature []byte) bool {
	return ConstantTimeEqual(s.Sign(message), signature)
}

// ConstantTimeEqual reports whether a and b are equal. For equal-length inputs
// the running time does not depend on where the first differing byte is.
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
