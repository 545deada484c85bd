// Package jwt implements the HS256 bearer tokens used by the Trust Workers API.
//
// Tokens are compact JWS strings built directly from primitives: unpadded
// base64url segments, HMAC-SHA256 signatures and a constant-time comparison.
// Only HS256 is accepted; the header algorithm is checked before any key is used.
//
// # Issuing
//
//	signer, err := jwt.NewSigner(secret)
//	issuer := jwt.NewIssuer(signer, jwt.WithTokenIDs(uuid.NewString))
//	token, err := issuer.Issue(user.ID, user.Email)
//
// Every token expires exactly TTL (24h) after it was issued.
//
// # Verifying
//
//	verifier := jwt.NewVerifier(signer)
//	principal, err := verifier.Verify(token)
//	if jwt.IsAuthError(err) {
//	    // 401
//	}
//
// Verification short-circuits in order: structure, header, signature, payload,
// expiry, issuer and audience. The four failure kinds (ErrMissing, ErrMalformed,
// ErrBadSignature, ErrExpired) stay distinct for logging but should be reported
// to clients identically.
//
// # Keys
//
// A Signer may carry a key id, written to the header "kid". A Verifier built
// with WithAdditionalKey accepts tokens from each registered key and selects
// the key by kid.
package jwt
