package jwt

import (
	"encoding/json"
	"fmt"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// Issuer mints signed tokens.
type Issuer struct {
	signer   *Signer
	now      Clock
	issuer   string
	audience string
	newID    func() string
	header   string
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithIssuerClock overrides the clock used for iat/exp.
func WithIssuerClock(c Clock) IssuerOption {
	return func(i *Issuer) {
		i.now = c
	}
}

// WithIssuerIdentity overrides the iss and aud claim values.
func WithIssuerIdentity(issuer, audience string) IssuerOption {
	return func(i *Issuer) {
		i.issuer = issuer
		i.audience = audience
	}
}

// WithTokenIDs sets a generator for the jti claim.
func WithTokenIDs(gen func() string) IssuerOption {
	return func(i *Issuer) {
		i.newID = gen
	}
}

// NewIssuer creates an issuer that signs with signer.
func NewIssuer(signer *Signer, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		signer:   signer,
		now:      time.Now,
		issuer:   DefaultIssuer,
		audience: DefaultAudience,
	}
	for _, opt := range opts {
		opt(i)
	}

	// The header never changes for a given signer, so encode it once.
	h, _ := json.Marshal(Header{Type: TokenType, Algorithm: Algorithm, KeyID: signer.KeyID()})
	i.header = EncodeSegment(h)
	return i
}

// Issue returns a token for the given subject. Expiry is always now + TTL.
// Subject ids must be positive, the same rule Verify enforces.
func (i *Issuer) Issue(subjectID int64, email string) (string, error) {
	if subjectID <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidSubject, subjectID)
	}
	now := i.now().Unix()
	claims := Claims{
		UserID:    subjectID,
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: now + int64(TTL/time.Second),
		Issuer:    i.issuer,
		Audience:  i.audience,
	}
	if i.newID != nil {
		claims.ID = i.newID()
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	p := EncodeSegment(payload)
	sig := i.signer.Sign(signingInput(i.header, p))
	return i.header + "." + p + "." + EncodeSegment(sig), nil
}

// TTL returns the lifetime of issued tokens.
func (i *Issuer) TTL() time.Duration {
	return TTL
}
