package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleProfile is the subset of a verified Google ID token the
// signup/login flow cares about.
type GoogleProfile struct {
	Email    string
	FullName string
	Picture  string
}

// GoogleVerifier validates Google ID tokens against a client id.
// It is an interface so tests can substitute a stub.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*GoogleProfile, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (g *googleVerifier) Verify(ctx context.Context, token string) (*GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, token, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("verify google token: %w", err)
	}

	profile := &GoogleProfile{}
	if v, ok := payload.Claims["email"].(string); ok {
		profile.Email = v
	}
	if v, ok := payload.Claims["name"].(string); ok {
		profile.FullName = v
	}
	if v, ok := payload.Claims["picture"].(string); ok {
		profile.Picture = v
	}

	if profile.Email == "" {
		return nil, fmt.Errorf("google token has no email claim")
	}
	return profile, nil
}
