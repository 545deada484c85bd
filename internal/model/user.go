package model

import "time"

// UserType distinguishes people who hire from people who work
type UserType string

const (
	UserTypeNormal UserType = "normal"
	UserTypeWorker UserType = "worker"
)

// Valid reports whether t is a known user type
func (t UserType) Valid() bool {
	return t == UserTypeNormal || t == UserTypeWorker
}

// User represents a user account
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash
	Phone        string    `json:"phone"`
	UserType     UserType  `json:"user_type"`
	JobCategory  *string   `json:"job_category"`
	Experience   *string   `json:"experience"`
	Province     *string   `json:"province"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsWorker returns true if the user offers their labor in the directory
func (u *User) IsWorker() bool {
	return u.UserType == UserTypeWorker
}

// RegisterRequest is the body of POST /v1/auth/register
type RegisterRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Phone       string   `json:"phone"`
	UserType    UserType `json:"user_type"`
	JobCategory *string  `json:"job_category,omitempty"`
	Experience  *string  `json:"experience,omitempty"`
	Province    *string  `json:"province,omitempty"`
}

// LoginRequest is the body of POST /v1/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest is the body of POST /v1/auth/reset-password
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// UpdateProfileRequest is the body of PUT /v1/auth/profile.
// Optional fields left out are cleared.
type UpdateProfileRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	JobCategory *string `json:"job_category,omitempty"`
	Experience  *string `json:"experience,omitempty"`
	Province    *string `json:"province,omitempty"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
	User      *User  `json:"user"`
}
