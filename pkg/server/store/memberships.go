package store

import (
	"github.com/google/uuid"

	"github.com/taskgate/taskgate/pkg/model"
)

// MembershipsStore manages user-project memberships and their seeding.
type MembershipsStore interface {
	// Transaction runs fn against a store bound to a single database
	// transaction. If fn returns an error the transaction rolls back and
	// the error is returned; otherwise it commits. Provisioning uses this
	// so a membership can never exist with a partial rule set.
	Transaction(fn func(MembershipsStore) error) error

	// Find resolves the membership for (user, project). Returns nil when
	// the user is not a member.
	Find(userID, projectID uuid.UUID) (*model.UsersProjects, error)

	// FindByID resolves a membership by primary key. Returns nil when missing.
	FindByID(id uuid.UUID) (*model.UsersProjects, error)

	// Create inserts a membership row. Returns ErrDuplicateMembership when
	// the (user_id, project_id) unique constraint is violated.
	Create(m *model.UsersProjects) error

	// CreateRules inserts permission rows in bulk.
	CreateRules(rules []model.Rule) error
}
