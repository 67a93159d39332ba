package services

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/curricula/internal/app/models/dto"
	"github.com/yigit/curricula/internal/pkg/apperrors"
	"github.com/yigit/curricula/internal/pkg/auth"
)

// AdminCredentials is the single administrator account from configuration.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// AuthService handles authentication operations
type AuthService struct {
	admin      AdminCredentials
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(admin AdminCredentials, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		admin:      admin,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login checks the administrator credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	if s.admin.PasswordHash == "" {
		s.logger.Warn().Msg("Login attempted but no admin password hash is configured")
		return nil, apperrors.ErrInvalidCredentials
	}

	// Always run bcrypt so that a wrong username costs the same as a wrong password
	passwordOK := auth.CheckPassword(s.admin.PasswordHash, req.Password)
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	if !passwordOK || !userOK {
		s.logger.Info().Str("username", username).Msg("Rejected login")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(username, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("Admin logged in")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
