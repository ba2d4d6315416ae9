// Package service contains the business logic layer: validation and
// orchestration between the HTTP handlers and the repositories/mailer.
//
// THE THREE LAYERS:
//
//	Handler (HTTP)        → parses requests, writes responses
//	Service (this package) → validates, enforces rules, orchestrates
//	Repository (data)      → reads/writes SQLite
//
// Services accept repository interfaces (not concrete sqlite types), return
// domain errors from apperror (not HTTP status codes), and never touch
// net/http — which is what makes them testable with plain function calls and
// hand-written mocks.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/auth"
	"github.com/rusba/rusba-api/internal/repository"
)

// AuthService handles admin login.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Login verifies the credentials and returns a signed 24-hour session token.
//
// NO USERNAME ENUMERATION:
// An unknown username and a wrong password both return the identical
// apperror.InvalidCredentials() — same status, same message. If the two cases
// differed, an attacker could probe /auth/login to learn which usernames
// exist before ever guessing a password.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.InvalidCredentials()
		}
		return "", fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		return "", apperror.InvalidCredentials()
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for %q: %w", username, err)
	}

	s.logger.Info("admin logged in",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return token, nil
}
