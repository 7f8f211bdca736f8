package gorm

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// Ensure PermissionsStore implements store.PermissionsStore
var _ store.PermissionsStore = (*PermissionsStore)(nil)

// PermissionsStore implements store.PermissionsStore using GORM
type PermissionsStore struct {
	db *gorm.DB
}

// NewPermissionsStore creates a new PermissionsStore
func NewPermissionsStore(db *gorm.DB) *PermissionsStore {
	return &PermissionsStore{db: db}
}

// Get returns all permission rows for a membership, joined with each
// operation's natural key.
func (s *PermissionsStore) Get(membershipID uuid.UUID) ([]store.PermissionRow, error) {
	var rows []store.PermissionRow
	err := s.db.
		Table("rules").
		Select("rules.id, rules.operation_id, operations.controller, operations.action, rules.access").
		Joins("JOIN operations ON operations.id = rules.operation_id").
		Where("rules.users_projects_id = ?", membershipID).
		Order("operations.controller, operations.action").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get permission rows: %w", err)
	}
	return rows, nil
}

// ReplaceAll rewrites the membership's permission matrix in one transaction.
// This is a full replace, not a merge: operations absent from rows lose
// their row, and the engine reads a missing row as deny.
func (s *PermissionsStore) ReplaceAll(membershipID uuid.UUID, rows []store.RuleAssignment) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var membership model.UsersProjects
		if err := tx.Where("id = ?", membershipID).First(&membership).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return store.ErrNotFound
			}
			return fmt.Errorf("failed to load membership %s: %w", membershipID, err)
		}

		if err := tx.Where("users_projects_id = ?", membershipID).Delete(&model.Rule{}).Error; err != nil {
			return fmt.Errorf("failed to delete old rules: %w", err)
		}

		// Last write wins on duplicate operation ids in the input.
		distinct := make(map[uuid.UUID]bool, len(rows))
		order := make([]uuid.UUID, 0, len(rows))
		for _, row := range rows {
			if _, seen := distinct[row.OperationID]; !seen {
				order = append(order, row.OperationID)
			}
			distinct[row.OperationID] = row.Access
		}

		for _, operationID := range order {
			rule := model.Rule{
				ID:              uuid.New(),
				UsersProjectsID: membershipID,
				OperationID:     operationID,
				Access:          distinct[operationID],
			}
			if err := tx.Create(&rule).Error; err != nil {
				return fmt.Errorf("failed to insert rule for operation %s: %w", operationID, err)
			}
		}
		return nil
	})
}

// Lookup reports the access bit for (membership, operation). found=false
// means no row exists, which callers must treat as deny.
func (s *PermissionsStore) Lookup(membershipID, operationID uuid.UUID) (bool, bool) {
	var rule model.Rule
	err := s.db.
		Where("users_projects_id = ? AND operation_id = ?", membershipID, operationID).
		First(&rule).Error
	if err != nil {
		return false, false
	}
	return rule.Access, true
}
