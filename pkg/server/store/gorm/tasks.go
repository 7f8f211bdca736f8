package gorm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskgate/taskgate/pkg/model"
	"github.com/taskgate/taskgate/pkg/server/store"
)

// Ensure TasksStore implements store.TasksStore
var _ store.TasksStore = (*TasksStore)(nil)

// TasksStore implements store.TasksStore using GORM
type TasksStore struct {
	db *gorm.DB
}

// NewTasksStore creates a new TasksStore
func NewTasksStore(db *gorm.DB) *TasksStore {
	return &TasksStore{db: db}
}

// Create inserts a task.
func (s *TasksStore) Create(t *model.Task) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if err := s.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Find resolves a task by id.
func (s *TasksStore) Find(id uuid.UUID) (*model.Task, error) {
	var t model.Task
	err := s.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task %s: %w", id, err)
	}
	return &t, nil
}

// Update persists changed fields of a task.
func (s *TasksStore) Update(t *model.Task) error {
	if err := s.db.Save(t).Error; err != nil {
		return fmt.Errorf("failed to update task %s: %w", t.ID, err)
	}
	return nil
}

// Archive soft-deletes a task by setting archived_at.
func (s *TasksStore) Archive(id uuid.UUID) error {
	result := s.db.Model(&model.Task{}).
		Where("id = ? AND archived_at IS NULL", id).
		Update("archived_at", time.Now())
	if result.Error != nil {
		return fmt.Errorf("failed to archive task %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// List returns a project's unarchived tasks.
func (s *TasksStore) List(projectID uuid.UUID, limit, offset int) ([]model.Task, int64, error) {
	query := s.db.Model(&model.Task{}).
		Where("project_id = ? AND archived_at IS NULL", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var tasks []model.Task
	if err := query.Order("created_at").Find(&tasks).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Statuses returns every workflow status.
func (s *TasksStore) Statuses() ([]model.TaskStatus, error) {
	var statuses []model.TaskStatus
	if err := s.db.Order("name").Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to list task statuses: %w", err)
	}
	return statuses, nil
}

// FindStatusByName resolves a status by name.
func (s *TasksStore) FindStatusByName(name string) (*model.TaskStatus, error) {
	var status model.TaskStatus
	err := s.db.Where("name = ?", name).First(&status).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task status %q: %w", name, err)
	}
	return &status, nil
}
