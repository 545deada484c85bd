package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/trustworkers/api/internal/database"
	"github.com/trustworkers/api/internal/model"
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, req *model.UpdateProfileRequest) (*model.User, error)
	ListWorkers(ctx context.Context) ([]*model.User, error)
	SearchWorkers(ctx context.Context, q string) ([]*model.User, error)
	WorkersByCategory(ctx context.Context, category string) ([]*model.User, error)
}

// AuthService handles registration, login and profile operations
type AuthService struct {
	userRepo UserRepository
	hasher   PasswordHasher
	tokens   *TokenService
	logger   *slog.Logger
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo     UserRepository
	Hasher       PasswordHasher
	TokenService *TokenService
	Logger       *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &AuthService{
		userRepo: cfg.UserRepo,
		hasher:   cfg.Hasher,
		tokens:   cfg.TokenService,
		logger:   cfg.Logger,
	}
}

// Register creates a new account and signs it in
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	phone := strings.TrimSpace(req.Phone)
	userType := model.UserType(strings.TrimSpace(string(req.UserType)))

	if name == "" || email == "" || req.Password == "" || phone == "" || userType == "" {
		return nil, ErrIncompleteRegistration
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !userType.Valid() {
		return nil, ErrInvalidUserType
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		UserType:     userType,
		JobCategory:  trimmedPtr(req.JobCategory),
		Experience:   trimmedPtr(req.Experience),
		Province:     trimmedPtr(req.Province),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.tokens.Generate(user)
}

// Login authenticates a user with email/password. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.tokens.Generate(user)
}

// GetProfile returns the user behind an authenticated request
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile replaces name, phone and the optional worker fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (*model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Phone == "" {
		return nil, ErrNameAndPhoneRequired
	}
	req.JobCategory = trimmedPtr(req.JobCategory)
	req.Experience = trimmedPtr(req.Experience)
	req.Province = trimmedPtr(req.Province)

	user, err := s.userRepo.UpdateProfile(ctx, userID, &req)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// RequestPasswordReset accepts a reset request. The outcome is the same
// whether or not the email is registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req model.ResetPasswordRequest) error {
	email := normalizeEmail(req.Email)
	if email == "" {
		return ErrEmailRequired
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		s.logger.InfoContext(ctx, "password reset requested for unknown email")
		return nil
	}

	// TODO: deliver a single-use reset link once an outbound mail provider is configured.
	s.logger.InfoContext(ctx, "password reset requested", "user_id", user.ID)
	return nil
}

// Helper functions

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 || strings.Count(email, "@") != 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 || dotIndex == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t\r\n")
}

// trimmedPtr trims an optional value; blank becomes nil
func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
