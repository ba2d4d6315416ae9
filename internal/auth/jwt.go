// Package auth provides JWT session tokens, bcrypt password hashing, and the
// bearer-token middleware for protected routes.
//
// AUTHENTICATION FLOW:
//  1. The admin POSTs username/password to /auth/login
//  2. AuthService verifies the bcrypt hash and calls TokenService.Generate
//  3. The frontend stores the token and sends it as "Authorization: Bearer <t>"
//  4. RequireAuth validates the token on every protected request and puts the
//     decoded principal in the request context
//
// Tokens are stateless: everything needed to validate one (claims + expiry) is
// inside the signed payload, so no session store exists and no lookup happens
// per request. The flip side is that a token cannot be revoked before its
// 24-hour expiry — rotating JWT_SECRET is the only kill switch.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rusba/rusba-api/internal/model"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 24 * time.Hour

const issuer = "rusba-api"

// Claims is the JWT payload: the admin's identity plus the standard
// registered claims (expiry, issued-at, issuer).
//
// The json tags ("id", "username", "role") are the wire names inside the
// token payload and are what the frontend decodes to show who is logged in,
// so they must stay stable.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens with an HMAC secret.
// The same secret is used for both operations (HS256 is symmetric).
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// In production the secret should be at least 32 bytes of random data
// (JWT_SECRET=$(openssl rand -hex 32)); main warns when the compiled-in
// development default is in use.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("auth: JWT secret must not be empty")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Generate issues a signed token for the given user, valid for TokenTTL.
func (s *TokenService) Generate(user *model.User) (string, error) {
	return s.GenerateWithDuration(user, TokenTTL)
}

// GenerateWithDuration issues a token with a custom lifetime. Used by tests
// to mint already-expired tokens without sleeping.
func (s *TokenService) GenerateWithDuration(user *model.User, d time.Duration) (string, error) {
	now := time.Now()

	c := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning its claims.
//
// The jwt library checks the signature, the expiry, and the issuer. Passing
// WithValidMethods pins the algorithm to HS256 — without it an attacker could
// try an algorithm-confusion attack (e.g. alg "none") against the parser.
func (s *TokenService) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("auth: token expired")
		}
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}
	if c.Username == "" {
		return nil, fmt.Errorf("auth: token has no username")
	}

	return c, nil
}
