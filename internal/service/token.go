package service

import (
	"time"

	"github.com/trustworkers/api/internal/model"
)

// TokenIssuer mints bearer tokens; satisfied by *jwt.Issuer
type TokenIssuer interface {
	Issue(subjectID int64, email string) (string, error)
	TTL() time.Duration
}

// TokenService turns an authenticated user into an auth response
type TokenService struct {
	issuer TokenIssuer
}

// NewTokenService creates a new token service
func NewTokenService(issuer TokenIssuer) *TokenService {
	return &TokenService{issuer: issuer}
}

// Generate issues a token for user and builds the login/register payload
func (s *TokenService) Generate(user *model.User) (*model.AuthResponse, error) {
	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.issuer.TTL() / time.Second),
		User:      user,
	}, nil
}
