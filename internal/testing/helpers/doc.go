// Package helpers provides common test utilities for HTTP-level testing.
//
// This package includes a token helper, HTTP request builders, envelope
// validators and assertion helpers for testing API endpoints.
//
// # Tokens
//
// TokenHelper wraps a signer, issuer and verifier built from TestSecret:
//
//	tokens := helpers.NewTokenHelper(t)
//	token := tokens.GenerateToken(t, user)
//	expired := tokens.GenerateExpiredToken(t, user)
//
// # Requests
//
//	rr := helpers.NewRequest(t, http.MethodPost, "/v1/jobs").
//	    WithAuth(tokens, user).
//	    WithBody(req).
//	    Do(router)
//
// # Assertions
//
//	helpers.AssertEnvelope(t, rr, http.StatusCreated, "Job post created successfully.")
//	helpers.AssertAccessDenied(t, rr)
//	helpers.AssertRecordExists(t, db, "job_post", job.ID)
package helpers
