package gorm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// Ensure ProjectsStore implements store.ProjectsStore
var _ store.ProjectsStore = (*ProjectsStore)(nil)

// ProjectsStore implements store.ProjectsStore using GORM
type ProjectsStore struct {
	db *gorm.DB
}

// NewProjectsStore creates a new ProjectsStore
func NewProjectsStore(db *gorm.DB) *ProjectsStore {
	return &ProjectsStore{db: db}
}

// Create inserts a project.
func (s *ProjectsStore) Create(p *model.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if err := s.db.Create(p).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Find resolves a project by id.
func (s *ProjectsStore) Find(id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := s.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find project %s: %w", id, err)
	}
	return &p, nil
}

// Update persists changed fields of a project.
func (s *ProjectsStore) Update(p *model.Project) error {
	if err := s.db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to update project %s: %w", p.ID, err)
	}
	return nil
}

// Archive soft-deletes a project by setting archived_at.
func (s *ProjectsStore) Archive(id uuid.UUID) error {
	result := s.db.Model(&model.Project{}).
		Where("id = ? AND archived_at IS NULL", id).
		Update("archived_at", time.Now())
	if result.Error != nil {
		return fmt.Errorf("failed to archive project %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// List returns the projects the given user is a member of.
func (s *ProjectsStore) List(req store.ProjectListRequest) ([]model.Project, int64, error) {
	query := s.db.
		Table("projects").
		Joins("JOIN users_projects ON users_projects.project_id = projects.id").
		Where("users_projects.user_id = ?", req.UserID)

	if req.Name != "" {
		query = query.Where("projects.name ILIKE ?", "%"+req.Name+"%")
	}
	if !req.ShowArchived {
		query = query.Where("projects.archived_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	if req.Limit > 0 {
		query = query.Limit(req.Limit)
	}
	if req.Offset > 0 {
		query = query.Offset(req.Offset)
	}

	var projects []model.Project
	if err := query.Order("projects.created_at").Select("projects.*").Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}
