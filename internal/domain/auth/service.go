package auth

import (
	"context"
	"net/mail"
	"strings"

	"homekeeper/internal/identity"
	"homekeeper/internal/pkg/logger"
)

// PreferencesInitializer stores the default settings of a new account.
type PreferencesInitializer interface {
	InitPreferences(ctx context.Context, userID string) error
}

type Service struct {
	provider identity.Provider
	issuer   identity.Issuer
	prefs    PreferencesInitializer
}

func NewService(provider identity.Provider, issuer identity.Issuer, prefs PreferencesInitializer) *Service {
	return &Service{provider: provider, issuer: issuer, prefs: prefs}
}

// Signup creates the account and then its default preferences. A failure to
// store preferences is logged; reads fall back to the defaults anyway.
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (string, error) {
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		return "", ErrMissingSignupFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}

	user, err := s.provider.CreateUser(ctx, email, req.Password, name)
	if err != nil {
		logger.Warn(ctx, "Registration failed", "email", email, "error", err)
		return "", err
	}

	if s.prefs != nil {
		if err := s.prefs.InitPreferences(ctx, user.ID); err != nil {
			logger.Error(ctx, "Failed to initialize preferences", "user_id", user.ID, "error", err)
		}
	}

	logger.Info(ctx, "User registered", "user_id", user.ID)
	return user.ID, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrMissingLoginFields
	}

	user, err := s.provider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "User logged in", "user_id", user.ID)
	return &LoginResponse{Success: true, AccessToken: token, UserID: user.ID}, nil
}
