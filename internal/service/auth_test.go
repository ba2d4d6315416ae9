package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusba/rusba-api/internal/apperror"
	"github.com/rusba/rusba-api/internal/auth"
	"github.com/rusba/rusba-api/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo serves a single fixed user from memory.
type fakeUserRepo struct {
	user *model.User
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if f.user != nil && f.user.Username == username {
		u := *f.user
		return &u, nil
	}
	return nil, apperror.NotFound("User")
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	f.user = u
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *auth.TokenService) {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret-for-auth-service-tests")
	require.NoError(t, err)

	passwords := auth.NewPasswordServiceForTest(4)
	hash, err := passwords.Hash("correct-horse")
	require.NoError(t, err)

	users := &fakeUserRepo{user: &model.User{
		ID:       1,
		Username: "admin",
		Password: hash,
		Role:     "admin",
	}}

	return NewAuthService(users, tokens, passwords, testLogger()), tokens
}

func TestLogin_Success(t *testing.T) {
	svc, tokens := newTestAuthService(t)

	token, err := svc.Login(context.Background(), "admin", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The issued token must validate and carry the admin's identity.
	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "admin", "wrong-password")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "nobody", "correct-horse")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestAuthService(t)

	// Unknown user and wrong password must produce the same error text, or
	// the endpoint leaks which usernames exist.
	_, errUnknown := svc.Login(context.Background(), "nobody", "whatever")
	_, errWrongPw := svc.Login(context.Background(), "admin", "whatever")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}
