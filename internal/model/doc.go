// Package model defines domain entities and data structures for the Trust Workers API.
//
// The model package contains the struct definitions shared across layers:
//
//   - User: an account, either a normal user or a worker listed in the directory
//   - JobPost: a job advertised by a user
//   - request and response bodies for the HTTP API
//   - APIError: the failure envelope
//
// # Envelope
//
// Every response body carries "success" and "message". Failures are written
// by APIError.WriteJSON:
//
//	{"success":false,"message":"Job not found or access denied.","code":3001}
package model
