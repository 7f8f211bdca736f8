package store

import (
	"github.com/google/uuid"

	"github.com/taskgate/taskgate/pkg/model"
)

// TasksStore manages task rows.
type TasksStore interface {
	// Create inserts a task.
	Create(t *model.Task) error

	// Find resolves a task by id. Returns nil when missing.
	Find(id uuid.UUID) (*model.Task, error)

	// Update persists changed fields of a task.
	Update(t *model.Task) error

	// Archive soft-deletes a task. Returns ErrNotFound when the task does
	// not exist or is already archived.
	Archive(id uuid.UUID) error

	// List returns a project's tasks with the total count before pagination.
	List(projectID uuid.UUID, limit, offset int) ([]model.Task, int64, error)

	// Statuses returns every workflow status.
	Statuses() ([]model.TaskStatus, error)

	// FindStatusByName resolves a status by name. Returns nil when missing.
	FindStatusByName(name string) (*model.TaskStatus, error)
}
