package model

import (
	"time"

	"github.com/google/uuid"
)

// UsersProjects represents one user's membership in one project. The
// (user_id, project_id) pair is unique at the database level; the permission
// matrix hangs off this row via Rules.
type UsersProjects struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	ProjectID uuid.UUID `gorm:"column:project_id;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Rules []Rule `gorm:"foreignKey:UsersProjectsID"`
}

func (UsersProjects) TableName() string {
	return "users_projects"
}
