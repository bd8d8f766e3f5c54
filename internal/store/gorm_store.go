package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/models"
)

// gormStore is the SQL-backed EntityStore.
type gormStore[T any, P models.Record[T]] struct {
	db *gorm.DB
}

// NewGormStore creates a new EntityStore backed by db.
func NewGormStore[T any, P models.Record[T]](db *gorm.DB) EntityStore[T] {
	return &gormStore[T, P]{db: db}
}

// Save inserts or overwrites rec
func (s *gormStore[T, P]) Save(ctx context.Context, rec *T) (*T, error) {
	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, fmt.Errorf("save %s: %w", kindOf[T, P](), err)
	}
	return rec, nil
}

// FindAll returns every row of the table
func (s *gormStore[T, P]) FindAll(ctx context.Context) ([]T, error) {
	var recs []T
	if err := s.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", kindOf[T, P](), err)
	}
	return recs, nil
}

// FindByID retrieves a row by its identity
func (s *gormStore[T, P]) FindByID(ctx context.Context, id uint) (*T, bool, error) {
	var rec T
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("find %s %d: %w", kindOf[T, P](), id, err)
	}
	return &rec, true, nil
}

// DeleteByID removes a row; deleting an absent id is a no-op
func (s *gormStore[T, P]) DeleteByID(ctx context.Context, id uint) error {
	var rec T
	if err := s.db.WithContext(ctx).Delete(&rec, id).Error; err != nil {
		return fmt.Errorf("delete %s %d: %w", kindOf[T, P](), id, err)
	}
	return nil
}

// gormCredentialStore adds username lookups and uniqueness to the user table.
type gormCredentialStore struct {
	*gormStore[models.User, *models.User]
}

// NewGormCredentialStore creates a new CredentialStore backed by db.
func NewGormCredentialStore(db *gorm.DB) CredentialStore {
	return &gormCredentialStore{gormStore: &gormStore[models.User, *models.User]{db: db}}
}

// FindByUsername retrieves a user by exact, case-sensitive username
func (s *gormCredentialStore) FindByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("find user %q: %w", username, err)
	}
	return &user, true, nil
}

// Save checks uniqueness and writes the user in one transaction. The unique
// index on username backs the check when two writers race.
func (s *gormCredentialStore) Save(ctx context.Context, user *models.User) (*models.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("username = ? AND id <> ?", user.Username, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrDuplicateUsername
		}
		return tx.Save(user).Error
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("save user %q: %w", user.Username, err)
	}
	return user, nil
}
