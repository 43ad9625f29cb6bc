package repository

import (
	"context"
	"errors"

	"github.com/apitemplate/go-user-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the query.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a write violates the unique email index.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserRepository defines the interface for user persistence.
// GetByID and List never return the password hash; GetByEmail does, as it
// backs credential verification at login.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	List(ctx context.Context) ([]entity.User, error)
}
