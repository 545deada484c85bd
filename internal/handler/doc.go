// Package handler provides the HTTP handlers for the Trust Workers API.
//
// Each handler struct wraps one service: AuthHandler (registration, login,
// profile), JobHandler (job posts) and WorkerHandler (worker directory).
// NewRouter registers them on a ServeMux.
//
// # Response Format
//
// Every endpoint answers with a JSON envelope. Successes carry
// "success": true, a human readable message and endpoint specific fields:
//
//	{"success": true, "message": "Jobs retrieved successfully.", "jobs": [...]}
//
// Failures are model.APIError values:
//
//	{"success": false, "message": "Job not found or access denied.", "code": 3001}
//
// Service errors are translated in one place, MapServiceError. Lists are
// never encoded as null.
//
// # Authentication
//
// Protected routes are wrapped in the middleware passed as Routes.RequireAuth.
// Handlers read the caller with middleware.GetUserID.
package handler
