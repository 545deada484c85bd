package service

import (
	"errors"
	"fmt"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ErrMissingFields is wrapped by every "required field" error below.
var ErrMissingFields = errors.New("required fields missing")

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrEmailAlreadyExists     = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidEmail           = errors.New("invalid email format")
	ErrInvalidUserType        = errors.New("invalid user type")
	ErrPasswordTooShort       = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong        = errors.New("password must be at most 72 bytes")
	ErrIncompleteRegistration = fmt.Errorf("%w: name, email, password, phone and user_type", ErrMissingFields)
	ErrCredentialsRequired    = fmt.Errorf("%w: email and password", ErrMissingFields)
	ErrEmailRequired          = fmt.Errorf("%w: email", ErrMissingFields)
	ErrNameAndPhoneRequired   = fmt.Errorf("%w: name and phone", ErrMissingFields)
)

// ===== Job Errors =====
var (
	ErrJobNotFound       = errors.New("job not found or access denied")
	ErrInvalidJobID      = errors.New("invalid job id")
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrJobFieldsRequired = fmt.Errorf("%w: title, job_type, category, district, description and contact_phone", ErrMissingFields)
)

// ===== Directory Errors =====
var (
	ErrSearchQueryRequired = fmt.Errorf("%w: search query", ErrMissingFields)
	ErrCategoryRequired    = fmt.Errorf("%w: category", ErrMissingFields)
)
