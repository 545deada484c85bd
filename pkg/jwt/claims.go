package jwt

import "time"

const (
	// Algorithm is the only signing algorithm accepted.
	Algorithm = "HS256"
	// TokenType is the fixed header type.
	TokenType = "JWT"

	// DefaultIssuer and DefaultAudience are the fixed iss/aud claim values.
	DefaultIssuer   = "trust-workers-app"
	DefaultAudience = "trust-workers-users"

	// TTL is the lifetime of every issued token.
	TTL = 24 * time.Hour
)

// Header is the token header. Field order gives {"typ":"JWT","alg":"HS256"}.
type Header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
	KeyID     string `json:"kid,omitempty"`
}

// Claims is the token payload.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Issuer    string `json:"iss"`
	Audience  string `json:"aud"`

	// ID is a unique token identifier, reserved for a future denylist.
	ID string `json:"jti,omitempty"`
}

// Principal is the verified identity handed to protected handlers.
type Principal struct {
	SubjectID int64  `json:"user_id"`
	Email     string `json:"email"`
}

// Principal projects the claims onto the authenticated identity.
func (c *Claims) Principal() *Principal {
	return &Principal{
		SubjectID: c.UserID,
		Email:     c.Email,
	}
}

// Expired reports whether the claims are past their expiry at now.
// A token is still valid during the second equal to exp.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt < now.Unix()
}
