package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/spendtrail/spendtrail_app/internal/utils"
	"github.com/spendtrail/spendtrail_app/pkg/config"
)

// GoogleOAuthSvc handles the Google sign-in code flow: login URL with a
// CSRF state, code exchange, and ID token validation.
type GoogleOAuthSvc struct {
	BaseService
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new Google OAuth service from config.
func NewGoogleOAuthService(cfg *config.Config) *GoogleOAuthSvc {
	return &GoogleOAuthSvc{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates a secure random CSRF token for the OAuth flow.
func (s *GoogleOAuthSvc) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetLoginURL returns the URL to redirect the user to for Google login.
func (s *GoogleOAuthSvc) GetLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *GoogleOAuthSvc) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateIDToken validates the ID token from Google's token response and
// returns the verified email claim.
func (s *GoogleOAuthSvc) ValidateIDToken(ctx context.Context, token *oauth2.Token) (string, error) {
	if s.cfg.GoogleClientID == "" {
		return "", errors.New("google client ID is not configured")
	}

	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		return "", errors.New("id_token missing from google token response")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return "", fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", errors.New("email claim missing from google ID token")
	}
	return email, nil
}
