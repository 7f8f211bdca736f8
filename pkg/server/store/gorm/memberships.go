package gorm

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolation = "23505"

// Ensure MembershipsStore implements store.MembershipsStore
var _ store.MembershipsStore = (*MembershipsStore)(nil)

// MembershipsStore implements store.MembershipsStore using GORM
type MembershipsStore struct {
	db *gorm.DB
}

// NewMembershipsStore creates a new MembershipsStore
func NewMembershipsStore(db *gorm.DB) *MembershipsStore {
	return &MembershipsStore{db: db}
}

// Transaction wraps operations in a database transaction.
func (s *MembershipsStore) Transaction(fn func(store.MembershipsStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&MembershipsStore{db: tx})
	})
}

// Find resolves the membership for (user, project).
func (s *MembershipsStore) Find(userID, projectID uuid.UUID) (*model.UsersProjects, error) {
	var m model.UsersProjects
	err := s.db.Where("user_id = ? AND project_id = ?", userID, projectID).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return &m, nil
}

// FindByID resolves a membership by primary key.
func (s *MembershipsStore) FindByID(id uuid.UUID) (*model.UsersProjects, error) {
	var m model.UsersProjects
	err := s.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find membership %s: %w", id, err)
	}
	return &m, nil
}

// Create inserts a membership row. The users_projects unique constraint on
// (user_id, project_id) is the authority on duplicates; a violation maps to
// store.ErrDuplicateMembership so concurrent joins cannot both succeed.
func (s *MembershipsStore) Create(m *model.UsersProjects) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := s.db.Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateMembership
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

// CreateRules inserts permission rows in bulk.
func (s *MembershipsStore) CreateRules(rules []model.Rule) error {
	for i := range rules {
		if rules[i].ID == uuid.Nil {
			rules[i].ID = uuid.New()
		}
	}
	if err := s.db.Create(&rules).Error; err != nil {
		return fmt.Errorf("failed to create rules: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
