package services

import (
	"context"

	"tradedesk/internal/auth"
	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/store"
)

// authenticationService resolves principals from the credential store.
type authenticationService struct {
	credentials store.CredentialStore
}

// NewAuthenticationService creates a new AuthenticationServicer.
func NewAuthenticationService(credentials store.CredentialStore) AuthenticationServicer {
	return &authenticationService{credentials: credentials}
}

// Authenticate looks up username and returns its principal
func (s *authenticationService) Authenticate(ctx context.Context, username string) (*auth.Principal, error) {
	user, found, err := s.credentials.FindByUsername(ctx, username)
	if err != nil {
		return nil, classify(err)
	}
	if !found {
		return nil, apperrors.ErrUnknownPrincipal
	}
	return &auth.Principal{
		Username:     user.Username,
		PasswordHash: user.Password,
		Role:         user.Role,
	}, nil
}
