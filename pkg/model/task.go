package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is a work item scoped to one project. Description holds markdown;
// rendering happens at the API layer.
type Task struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ProjectID   uuid.UUID  `gorm:"column:project_id;type:uuid;not null"`
	Title       string     `gorm:"column:title;not null"`
	Description string     `gorm:"column:description"`
	StatusID    uuid.UUID  `gorm:"column:status_id;type:uuid;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	ArchivedAt  *time.Time `gorm:"column:archived_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskStatus is a workflow state a task can be in.
type TaskStatus struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name string    `gorm:"column:name;not null"`
}

func (TaskStatus) TableName() string {
	return "task_statuses"
}
