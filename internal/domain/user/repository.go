package user

import (
	"context"
	"errors"

	"orbit/internal/shared/authorization"
)

// ErrUserNotFound is returned by repositories when no user matches.
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Save(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// FindActiveByRole returns one active user holding the role, or nil when
	// none exists. Selection among candidates is deterministic: lowest ID.
	FindActiveByRole(ctx context.Context, role authorization.UserRole) (*User, error)
	Exists(ctx context.Context, id uint) (bool, error)
}
