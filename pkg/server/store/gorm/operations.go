package gorm

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// Ensure OperationsStore implements store.OperationsStore
var _ store.OperationsStore = (*OperationsStore)(nil)

// OperationsStore implements store.OperationsStore using GORM
type OperationsStore struct {
	db *gorm.DB
}

// NewOperationsStore creates a new OperationsStore
func NewOperationsStore(db *gorm.DB) *OperationsStore {
	return &OperationsStore{db: db}
}

// List returns every cataloged operation.
func (s *OperationsStore) List() ([]model.Operation, error) {
	var operations []model.Operation
	if err := s.db.Order("controller, action").Find(&operations).Error; err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return operations, nil
}

// FindByKey resolves an operation by its (controller, action) natural key.
func (s *OperationsStore) FindByKey(controller, action string) (*model.Operation, error) {
	var op model.Operation
	err := s.db.Where("controller = ? AND action = ?", controller, action).First(&op).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find operation %s:%s: %w", controller, action, err)
	}
	return &op, nil
}

// Find resolves an operation by id.
func (s *OperationsStore) Find(id uuid.UUID) (*model.Operation, error) {
	var op model.Operation
	err := s.db.Where("id = ?", id).First(&op).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find operation %s: %w", id, err)
	}
	return &op, nil
}
