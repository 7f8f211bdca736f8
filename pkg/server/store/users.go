package store

import (
	"github.com/google/uuid"

	"github.com/taskgate/taskgate/pkg/model"
)

// UsersStore manages user accounts.
type UsersStore interface {
	// Create inserts a user.
	Create(u *model.User) error

	// Find resolves a user by id. Returns nil when missing.
	Find(id uuid.UUID) (*model.User, error)

	// FindByEmail resolves a user by email. Returns nil when missing.
	FindByEmail(email string) (*model.User, error)
}
