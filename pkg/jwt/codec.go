package jwt

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// segmentEncoding is unpadded base64url. Strict mode rejects encodings whose
// unused trailing bits are non-zero, so every byte string has exactly one
// accepted textual form.
var segmentEncoding = base64.RawURLEncoding.Strict()

// EncodeSegment encodes b as unpadded base64url.
func EncodeSegment(b []byte) string {
	return segmentEncoding.EncodeToString(b)
}

// DecodeSegment decodes an unpadded (or padded) base64url segment.
func DecodeSegment(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	if len(s)%4 == 1 {
		return nil, fmt.Errorf("%w: invalid length %d", ErrMalformedSegment, len(s))
	}
	b, err := segmentEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSegment, err)
	}
	return b, nil
}

// Split breaks a compact token into its header, payload and signature segments.
func Split(token string) (header, payload, signature string, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", "", "", ErrMalformedToken
	}
	for _, p := range parts {
		if p == "" {
			return "", "", "", ErrMalformedToken
		}
	}
	return parts[0], parts[1], parts[2], nil
}

// signingInput is the byte string covered by the signature.
func signingInput(header, payload string) []byte {
	b := make([]byte, 0, len(header)+1+len(payload))
	b = append(b, header...)
	b = append(b, '.')
	b = append(b, payload...)
	return b
}
