package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/trustworkers/api/internal/database"
	"github.com/trustworkers/api/internal/middleware"
	"github.com/trustworkers/api/internal/model"
	"github.com/trustworkers/api/internal/service"
)

// MapServiceError converts a service error to an APIError.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and messages across the API.
func MapServiceError(err error) *model.APIError {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewLoginFailedError()

	// ===== Not Found → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("User not found.")
	case errors.Is(err, service.ErrJobNotFound):
		return model.NewNotFoundError("Job not found or access denied.")

	// ===== Conflict → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError("Email already exists.")

	// ===== Missing fields → 400 =====
	case errors.Is(err, service.ErrIncompleteRegistration):
		return model.NewValidationError("Incomplete data. Please fill all required fields.")
	case errors.Is(err, service.ErrCredentialsRequired):
		return model.NewValidationError("Email and password are required.")
	case errors.Is(err, service.ErrEmailRequired):
		return model.NewValidationError("Email is required.")
	case errors.Is(err, service.ErrNameAndPhoneRequired):
		return model.NewValidationError("Name and phone are required.")
	case errors.Is(err, service.ErrJobFieldsRequired):
		return model.NewValidationError("All fields are required.")
	case errors.Is(err, service.ErrSearchQueryRequired):
		return model.NewValidationError("Search query parameter 'q' is required.")
	case errors.Is(err, service.ErrCategoryRequired):
		return model.NewValidationError("Category parameter is required.")
	case errors.Is(err, service.ErrMissingFields):
		return model.NewValidationError("Required fields are missing.")

	// ===== Format validation → 400 =====
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError("Invalid email format.",
			model.FieldError{Field: "email", Message: err.Error()})
	case errors.Is(err, service.ErrInvalidUserType):
		return model.NewValidationError("Invalid user type.",
			model.FieldError{Field: "user_type", Message: "must be normal or worker"})
	case errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError("Password must be between 8 and 72 characters.",
			model.FieldError{Field: "password", Message: err.Error()})

	// ===== Bad request → 400 =====
	case errors.Is(err, service.ErrInvalidJobID):
		return model.NewBadRequestError("Job ID parameter is required.")
	case errors.Is(err, service.ErrInvalidUserID):
		return model.NewBadRequestError("Invalid user ID.")
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		return model.NewBadRequestError("No fields to update.")

	// ===== Storage → 503 =====
	case errors.Is(err, database.ErrConnection):
		return model.NewUnavailableError("Service temporarily unavailable.")

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// writeServiceError maps err to a response. Anything that becomes a 5xx is
// logged since the client only sees a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := MapServiceError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
	}
	WriteError(w, apiErr)
}
