// internal/services/auth_service.go
package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/autosalvage/storefront/internal/config"
	"github.com/autosalvage/storefront/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService checks the single admin account configured through the
// environment. There is no user table.
type AuthService struct {
	cfg config.AdminConfig
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"` // in seconds
}

func NewAuthService(cfg config.AdminConfig) *AuthService {
	return &AuthService{cfg: cfg}
}

// VerifyCredentials reports whether the pair matches the configured admin
// account. An unset username or password never matches.
func (s *AuthService) VerifyCredentials(username, password string) bool {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	return userOK && passOK
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if !s.VerifyCredentials(req.Username, req.Password) {
		return nil, ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.TokenTTL) * time.Hour
	token, err := utils.GenerateAdminToken(req.Username, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		Success:   true,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(ttl.Seconds()),
	}, nil
}
