package store

import (
	"github.com/google/uuid"

	"github.com/taskgate/taskgate/pkg/model"
)

// ProjectListRequest carries filtering and pagination for project listings.
type ProjectListRequest struct {
	UserID       uuid.UUID
	Name         string
	ShowArchived bool
	Limit        int
	Offset       int
}

// ProjectsStore manages project rows.
type ProjectsStore interface {
	// Create inserts a project.
	Create(p *model.Project) error

	// Find resolves a project by id. Returns nil when missing.
	Find(id uuid.UUID) (*model.Project, error)

	// Update persists changed fields of a project.
	Update(p *model.Project) error

	// Archive soft-deletes a project. Returns ErrNotFound when the project
	// does not exist or is already archived.
	Archive(id uuid.UUID) error

	// List returns the projects the given user is a member of, filtered and
	// paginated, along with the total count before pagination.
	List(req ProjectListRequest) ([]model.Project, int64, error)
}
