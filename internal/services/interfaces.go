package services

import (
	"context"

	"tradedesk/internal/auth"
	"tradedesk/internal/models"
)

// RecordServicer defines the lifecycle contract shared by every record kind.
// The acting principal is passed explicitly to every call; it is recorded in
// logs and audit columns and may be nil for system-initiated work.
type RecordServicer[T any] interface {
	// Save creates rec when it has no identity and replaces the stored
	// record at its identity otherwise.
	Save(ctx context.Context, actor *auth.Principal, rec *T) (*T, error)
	GetAll(ctx context.Context, actor *auth.Principal) ([]T, error)
	// FindByID reports absence through found; absence is not an error.
	FindByID(ctx context.Context, actor *auth.Principal, id uint) (rec *T, found bool, err error)
	// UpdateByID copies the mutable fields of rec onto the stored record.
	// It fails with ErrNotFound when id does not exist.
	UpdateByID(ctx context.Context, actor *auth.Principal, id uint, rec *T) (*T, error)
	// DeleteByID fails with ErrNotFound when id does not exist.
	DeleteByID(ctx context.Context, actor *auth.Principal, id uint) error
}

// UserServicer layers password hashing on top of the user record lifecycle.
// Save and UpdateByID expect rec.Password to hold the submitted plaintext.
type UserServicer interface {
	RecordServicer[models.User]
	// FindForEdit returns the user with its password blanked.
	FindForEdit(ctx context.Context, actor *auth.Principal, id uint) (*models.User, bool, error)
	// EnsureAdmin creates an ADMIN account unless username already exists.
	EnsureAdmin(ctx context.Context, username, password string) (created bool, err error)
}

// AuthenticationServicer resolves a username to the principal it names.
// It does not check passwords; the login flow verifies the submitted
// password against Principal.PasswordHash.
type AuthenticationServicer interface {
	Authenticate(ctx context.Context, username string) (*auth.Principal, error)
}
