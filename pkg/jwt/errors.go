package jwt

import "errors"

// Authentication failures. All of them map to 401 at the HTTP boundary; they stay
// distinct so callers can log and test which check rejected a token.
var (
	ErrMissing      = errors.New("missing credential")
	ErrMalformed    = errors.New("malformed token")
	ErrBadSignature = errors.New("invalid signature")
	ErrExpired      = errors.New("token expired")
)

// Codec and configuration errors.
var (
	ErrMalformedToken   = errors.New("token must have three non-empty segments")
	ErrMalformedSegment = errors.New("segment is not valid base64url")
	ErrWeakKey          = errors.New("signing key must be at least 32 bytes")
	ErrInvalidSubject   = errors.New("subject id must be positive")
)

// IsAuthError reports whether err is one of the four authentication failures.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissing) ||
		errors.Is(err, ErrMalformed) ||
		errors.Is(err, ErrBadSignature) ||
		errors.Is(err, ErrExpired)
}

// Reason returns a short, stable label for an authentication failure, suitable
// for log fields. It never includes token material.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissing):
		return "missing"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "internal"
	}
}
