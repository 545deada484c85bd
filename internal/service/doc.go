// Package service implements the business logic of the Trust Workers API.
//
// Services validate input, enforce ownership and orchestrate repository
// calls. Handlers never talk to repositories directly.
//
//   - AuthService: registration, login, profile and password reset requests
//   - JobService: job post listing, search and owner-only mutations
//   - WorkerService: the worker directory
//   - TokenService: turns an authenticated user into a bearer token response
//
// Each service declares the repository interface it needs, so tests can run
// against memstore instead of SurrealDB.
//
// # Errors
//
// Services return the sentinel errors in errors.go, possibly wrapped.
// Every "required field" error wraps ErrMissingFields. The handler layer maps
// them to HTTP responses in one place.
//
//	auth := NewAuthService(AuthServiceConfig{
//	    UserRepo:     userRepo,
//	    Hasher:       NewBcryptHasher(cfg.Password.BcryptCost),
//	    TokenService: NewTokenService(issuer),
//	})
//	resp, err := auth.Login(ctx, model.LoginRequest{Email: email, Password: pw})
package service
