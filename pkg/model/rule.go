package model

import "github.com/google/uuid"

// Rule is one allow/deny bit for one membership on one operation. At most
// one row exists per (users_projects_id, operation_id).
type Rule struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UsersProjectsID uuid.UUID `gorm:"column:users_projects_id;type:uuid;not null"`
	OperationID     uuid.UUID `gorm:"column:operation_id;type:uuid;not null"`
	Access          bool      `gorm:"column:access;not null"`

	Operation Operation `gorm:"foreignKey:OperationID"`
}

func (Rule) TableName() string {
	return "rules"
}
