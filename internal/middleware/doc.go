// Package middleware provides HTTP middleware for the Trust Workers API.
//
// Every middleware has the signature func(http.Handler) http.Handler and is
// composed with Chain, outermost first:
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	    middleware.CORS(cfg.Server.AllowedOrigins),
//	    middleware.RateLimit(limiter),
//	)
//
// # Authentication
//
// RequireAuth wraps protected routes. It reads the Authorization header under
// any casing, strips a "Bearer" scheme and passes the credential to a
// TokenVerifier. Missing, malformed, forged and expired tokens all get the same
// 401 body; only the log line says which it was.
//
//	protected := middleware.RequireAuth(verifier)
//	mux.Handle("GET /v1/auth/profile", protected(http.HandlerFunc(h.Profile)))
//
// Handlers read the caller with GetUserID(ctx) or GetPrincipal(ctx).
//
// # Rate Limiting
//
// RateLimit accepts any Limiter. MemoryLimiter is a per-process token bucket;
// RedisLimiter keeps a fixed-window counter in Redis shared by all instances.
// A limiter error lets the request through.
package middleware
