package services

import (
	"context"

	"tradedesk/internal/auth"
	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/logger"
	"tradedesk/internal/models"
	"tradedesk/internal/store"
)

// userService handles user-related business logic.
type userService struct {
	*recordService[models.User, *models.User]
	credentials store.CredentialStore
	hasher      auth.PasswordHasher
}

// NewUserService creates a new UserServicer.
func NewUserService(credentials store.CredentialStore, hasher auth.PasswordHasher) UserServicer {
	return &userService{
		recordService: newRecordService[models.User, *models.User](credentials),
		credentials:   credentials,
		hasher:        hasher,
	}
}

// Save hashes the submitted password and creates or replaces the user
func (s *userService) Save(ctx context.Context, actor *auth.Principal, user *models.User) (*models.User, error) {
	if err := s.hashPassword(user); err != nil {
		return nil, err
	}
	return s.recordService.Save(ctx, actor, user)
}

// UpdateByID re-hashes the submitted password, even when it is unchanged,
// and updates the user. A missing id fails before any hashing.
func (s *userService) UpdateByID(ctx context.Context, actor *auth.Principal, id uint, user *models.User) (*models.User, error) {
	existing, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.hashPassword(user); err != nil {
		return nil, err
	}
	return s.apply(ctx, actor, existing, user)
}

// FindForEdit retrieves a user for the edit form
func (s *userService) FindForEdit(ctx context.Context, actor *auth.Principal, id uint) (*models.User, bool, error) {
	user, found, err := s.FindByID(ctx, actor, id)
	if err != nil || !found {
		return nil, found, err
	}
	user.Password = ""
	return user, true, nil
}

// EnsureAdmin seeds the bootstrap administrator
func (s *userService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "username and password are required")
	}

	_, found, err := s.credentials.FindByUsername(ctx, username)
	if err != nil {
		return false, classify(err)
	}
	if found {
		return false, nil
	}

	admin := &models.User{
		Username: username,
		Password: password,
		FullName: "Administrator",
		Role:     models.RoleAdmin,
	}
	if _, err := s.Save(ctx, nil, admin); err != nil {
		return false, err
	}

	logger.Get().Infow("bootstrap admin created", "username", username)
	return true, nil
}

func (s *userService) hashPassword(user *models.User) error {
	digest, err := s.hasher.Hash(user.Password)
	if err != nil {
		return err
	}
	user.Password = digest
	return nil
}
