package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/trustworkers/api/internal/middleware"
	"github.com/trustworkers/api/internal/model"
)

// ResetPasswordMessage is returned for every accepted reset request, whether
// or not the address is registered.
const ResetPasswordMessage = "If the email is registered, password reset instructions have been sent."

// AuthService is the subset of service.AuthService used by AuthHandler
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	GetProfile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (*model.User, error)
	RequestPasswordReset(ctx context.Context, req model.ResetPasswordRequest) error
}

// AuthHandler handles authentication and profile endpoints
type AuthHandler struct {
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Incomplete data. Please fill all required fields."))
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, "User registered successfully.", authFields(result))
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Email and password are required."))
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Login successful.", authFields(result))
}

// Logout handles POST /v1/auth/logout. Tokens are stateless; the client
// discards its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	slog.InfoContext(r.Context(), "user logged out",
		slog.Int64("user_id", middleware.GetUserID(r.Context())),
	)
	WriteSuccess(w, http.StatusOK, "Logout successful.", nil)
}

// Profile handles GET /v1/auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetProfile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Profile retrieved successfully.", map[string]interface{}{"user": user})
}

// UpdateProfile handles PUT /v1/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Name and phone are required."))
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "Profile updated successfully.", map[string]interface{}{"user": user})
}

// ResetPassword handles POST /v1/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Email is required."))
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ResetPasswordMessage, nil)
}
