package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/auth"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type stubGoogleVerifier struct {
	profile *auth.GoogleProfile
	err     error
}

func (s *stubGoogleVerifier) Verify(context.Context, string) (*auth.GoogleProfile, error) {
	return s.profile, s.err
}

func newAuthFixture(verifier auth.GoogleVerifier) (AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	if verifier == nil {
		verifier = &stubGoogleVerifier{err: errors.New("no verifier")}
	}
	return NewAuthService(users, verifier, testSecret, zap.NewNop()), users
}

func TestSignup(t *testing.T) {
	svc, _ := newAuthFixture(nil)
	ctx := context.Background()

	token, user, err := svc.Signup(ctx, "eve@example.com", "hunter22", "Eve")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "eve@example.com", user.Email)
	require.Regexp(t, regexp.MustCompile(`^[A-Z]{3}-\d{2}[A-Z]-\d{6}$`), user.ExternalID)
	require.NotEqual(t, "hunter22", user.PasswordHash, "password must be hashed")

	claims, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, user.ID.Hex(), claims.UserID)

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := svc.Signup(ctx, "eve@example.com", "hunter22", "Eve Again")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("short password", func(t *testing.T) {
		_, _, err := svc.Signup(ctx, "new@example.com", "short", "New")
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(nil)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "eve@example.com", "hunter22", "Eve")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "eve@example.com", "hunter22")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, "Eve", user.FullName)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "eve@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "hunter22")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGoogleLogin(t *testing.T) {
	verifier := &stubGoogleVerifier{profile: &auth.GoogleProfile{
		Email:    "gina@example.com",
		FullName: "Gina",
		Picture:  "https://example.com/gina.png",
	}}
	svc, users := newAuthFixture(verifier)
	ctx := context.Background()

	// first login creates the account
	_, user, err := svc.GoogleLogin(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, "google", user.Provider)
	require.Equal(t, "https://example.com/gina.png", user.ProfilePic)

	// second login reuses it
	_, again, err := svc.GoogleLogin(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, user.ID, again.ID)
	require.Len(t, users.users, 1)

	t.Run("bad token", func(t *testing.T) {
		svc, _ := newAuthFixture(&stubGoogleVerifier{err: errors.New("expired")})
		_, _, err := svc.GoogleLogin(ctx, "token")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
