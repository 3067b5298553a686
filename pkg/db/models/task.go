package models

import (
	"time"

	"github.com/google/uuid"
)

// Task belongs to exactly one project.
type Task struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID  uuid.UUID  `gorm:"column:project_id;type:uuid;not null;index"`
	Title      string     `gorm:"column:title;not null"`
	Status     string     `gorm:"column:status;not null;default:'todo'"`
	AssigneeID *uuid.UUID `gorm:"column:assignee_id;type:uuid"`
	DueAt      *time.Time `gorm:"column:due_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
