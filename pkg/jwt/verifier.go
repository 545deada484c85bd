package jwt

import (
	"encoding/json"
	"fmt"
	"time"
)

// Verifier validates tokens produced by Issuer. It holds only immutable state
// and is safe for concurrent use.
type Verifier struct {
	keys     map[string]*Signer
	now      Clock
	issuer   string
	audience string
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithVerifierClock overrides the clock used for the expiry check.
func WithVerifierClock(c Clock) VerifierOption {
	return func(v *Verifier) {
		v.now = c
	}
}

// WithVerifierIdentity overrides the iss and aud values a token must carry.
func WithVerifierIdentity(issuer, audience string) VerifierOption {
	return func(v *Verifier) {
		v.issuer = issuer
		v.audience = audience
	}
}

// WithAdditionalKey makes the verifier accept tokens signed by s, selected by
// the header kid matching s.KeyID().
func WithAdditionalKey(s *Signer) VerifierOption {
	return func(v *Verifier) {
		v.keys[s.KeyID()] = s
	}
}

// NewVerifier creates a verifier that accepts tokens signed by signer.
func NewVerifier(signer *Signer, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		keys:     map[string]*Signer{signer.KeyID(): signer},
		now:      time.Now,
		issuer:   DefaultIssuer,
		audience: DefaultAudience,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify validates token and returns the authenticated principal.
func (v *Verifier) Verify(token string) (*Principal, error) {
	claims, err := v.Parse(token)
	if err != nil {
		return nil, err
	}
	return claims.Principal(), nil
}

// Parse runs the full validation pipeline and returns the verified claims.
// Stages short-circuit in order: structure, signature, payload, expiry, identity.
func (v *Verifier) Parse(token string) (*Claims, error) {
	h, p, s, err := Split(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	signer, err := v.signerFor(h)
	if err != nil {
		return nil, err
	}

	sig, err := DecodeSegment(s)
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %w", ErrMalformed, err)
	}
	if !signer.Verify(signingInput(h, p), sig) {
		return nil, ErrBadSignature
	}

	raw, err := DecodeSegment(p)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrMalformed, err)
	}
	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformed, err)
	}

	if claims.Expired(v.now()) {
		return nil, ErrExpired
	}

	if claims.Issuer != v.issuer {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrMalformed, claims.Issuer)
	}
	if claims.Audience != v.audience {
		return nil, fmt.Errorf("%w: unexpected audience %q", ErrMalformed, claims.Audience)
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformed)
	}

	return &claims, nil
}

// signerFor decodes the header segment and selects the verification key.
// Anything other than HS256 is rejected before any signature work.
func (v *Verifier) signerFor(segment string) (*Signer, error) {
	raw, err := DecodeSegment(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}
	var header Header
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}
	if header.Algorithm != Algorithm {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformed, header.Algorithm)
	}

	signer, ok := v.keys[header.KeyID]
	if !ok {
		return nil, ErrBadSignature
	}
	return signer, nil
}

// Decode returns the header and claims of token without verifying anything.
// It is meant for diagnostics only; never trust its output.
func Decode(token string) (*Header, *Claims, error) {
	h, p, _, err := Split(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var header Header
	raw, err := DecodeSegment(h)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, nil, fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}

	var claims Claims
	raw, err = DecodeSegment(p)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: payload: %w", ErrMalformed, err)
	}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, nil, fmt.Errorf("%w: payload: %v", ErrMalformed, err)
	}
	return &header, &claims, nil
}
