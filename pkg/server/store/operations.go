package store

import (
	"github.com/google/uuid"

	"github.com/taskgate/taskgate/pkg/model"
)

// OperationsStore reads the operation catalog from storage.
type OperationsStore interface {
	// List returns every cataloged operation.
	List() ([]model.Operation, error)

	// FindByKey resolves an operation by its (controller, action) natural
	// key. Returns nil when no such operation is cataloged.
	FindByKey(controller, action string) (*model.Operation, error)

	// Find resolves an operation by id. Returns nil when missing.
	Find(id uuid.UUID) (*model.Operation, error)
}
