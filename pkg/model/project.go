package model

import (
	"time"

	"github.com/google/uuid"
)

// Project is the unit of collaboration. Deleting a project is a soft
// archive; ArchivedAt is set instead of removing the row.
type Project struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Description string     `gorm:"column:description"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	ArchivedAt  *time.Time `gorm:"column:archived_at"`
}

func (Project) TableName() string {
	return "projects"
}

// IsArchived reports whether the project has been archived.
func (p *Project) IsArchived() bool {
	return p.ArchivedAt != nil
}
