// Package store holds the persistence boundary for every record kind.
package store

import (
	"context"

	"tradedesk/internal/models"
)

// EntityStore persists one record kind. Save inserts when the record carries
// no identity and overwrites the row at that identity otherwise. A missing
// record is reported through the found flag, never as an error.
type EntityStore[T any] interface {
	Save(ctx context.Context, rec *T) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uint) (rec *T, found bool, err error)
	DeleteByID(ctx context.Context, id uint) error
}

// CredentialStore persists user accounts and guarantees username uniqueness.
// Save fails with errors.ErrDuplicateUsername when another account already
// holds the username.
type CredentialStore interface {
	EntityStore[models.User]
	FindByUsername(ctx context.Context, username string) (user *models.User, found bool, err error)
}

func kindOf[T any, P models.Record[T]]() string {
	return P(new(T)).Kind()
}
