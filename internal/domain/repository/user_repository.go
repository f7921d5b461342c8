package repository

import (
	"errors"
	"time"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert or update violates
	// the unique email constraint.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
	UpdatePassword(id, hash string) error
	SetLastLogin(id string, t time.Time) error
	Deactivate(id string) (*entity.User, error)
	Delete(id string) error
	List(q ListQuery) ([]*entity.User, int64, error)
}
