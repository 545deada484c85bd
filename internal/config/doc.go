// Package config manages application configuration for the Trust Workers API.
//
// Configuration is read from environment variables into tagged structs with
// caarlos0/env. A .env file in the working directory is loaded first when it
// exists; real environment variables always win.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS, log level)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: token signing secret and identity claims
//   - RateLimitConfig: limiter for public auth endpoints
//   - PasswordConfig: bcrypt cost
//
// # Secrets
//
// JWT_SECRET, DB_PASSWORD and RATE_LIMIT_REDIS_URL are of type Secret, which
// prints as [REDACTED] through fmt and slog. Call Reveal to use the value.
package config
