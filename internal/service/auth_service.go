package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/auth"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/model"
	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/repo"

	"go.uber.org/zap"
)

const minPasswordLen = 6

// AuthService handles signup, credential login and Google ID-token
// login. Every success returns a session token plus the user record.
type AuthService interface {
	Signup(ctx context.Context, email, password, fullName string) (string, *model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	GoogleLogin(ctx context.Context, idToken string) (string, *model.User, error)
}

type authService struct {
	users     repo.UserRepository
	google    auth.GoogleVerifier
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthService(users repo.UserRepository, google auth.GoogleVerifier, jwtSecret string, logger *zap.Logger) AuthService {
	return &authService{
		users:     users,
		google:    google,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

func (s *authService) Signup(ctx context.Context, email, password, fullName string) (string, *model.User, error) {
	if email == "" || fullName == "" {
		return "", nil, fmt.Errorf("%w: email and full name are required", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return "", nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNoDocument) {
		return "", nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	externalID, err := s.uniqueExternalID(ctx)
	if err != nil {
		return "", nil, err
	}

	user := &model.User{
		ExternalID:   externalID,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Provider:     model.ProviderLocal,
	}
	return s.persistAndIssue(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNoDocument) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if user.PasswordHash == "" || !auth.VerifyPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.Hex(), s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) GoogleLogin(ctx context.Context, idToken string) (string, *model.User, error) {
	profile, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	user, err := s.users.FindByEmail(ctx, profile.Email)
	if err == nil {
		token, err := auth.GenerateToken(user.ID.Hex(), s.jwtSecret)
		if err != nil {
			return "", nil, err
		}
		return token, user, nil
	}
	if !errors.Is(err, repo.ErrNoDocument) {
		return "", nil, err
	}

	// first Google login creates the account
	externalID, err := s.uniqueExternalID(ctx)
	if err != nil {
		return "", nil, err
	}

	user = &model.User{
		ExternalID: externalID,
		Email:      profile.Email,
		FullName:   profile.FullName,
		ProfilePic: profile.Picture,
		Provider:   model.ProviderGoogle,
	}
	return s.persistAndIssue(ctx, user)
}

func (s *authService) persistAndIssue(ctx context.Context, user *model.User) (string, *model.User, error) {
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}
	user.ID = id

	s.logger.Info("user created",
		zap.String("user_id", user.ID.Hex()),
		zap.String("provider", user.Provider),
	)

	token, err := auth.GenerateToken(user.ID.Hex(), s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// uniqueExternalID draws ids until one is free. Collisions over a
// 26^4 * 10^8 space are rare, so a couple of retries is fine.
func (s *authService) uniqueExternalID(ctx context.Context) (string, error) {
	for {
		id := auth.NewExternalID()
		exists, err := s.users.ExternalIDExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
}
