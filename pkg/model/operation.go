package model

import "github.com/google/uuid"

// Operation represents one protectable API operation, identified by its
// (controller, action) natural key. Rows are immutable once created; the
// catalog sync only updates descriptions.
type Operation struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Controller  string    `gorm:"column:controller;not null"`
	Action      string    `gorm:"column:action;not null"`
	Description string    `gorm:"column:description;not null"`
}

func (Operation) TableName() string {
	return "operations"
}
