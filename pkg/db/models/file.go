package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/teamflowhq/teamflow-backend/pkg/enums"
)

// File is an attachment reviewed by a project manager. RejectionReason is
// non-empty exactly when Status is rejected.
type File struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID       uuid.UUID        `gorm:"column:project_id;type:uuid;not null;index"`
	TaskID          *uuid.UUID       `gorm:"column:task_id;type:uuid"`
	Name            string           `gorm:"column:name;not null"`
	Status          enums.FileStatus `gorm:"column:status;type:file_status;not null;default:'pending'"`
	RejectionReason *string          `gorm:"column:rejection_reason"`
	UploadedBy      uuid.UUID        `gorm:"column:uploaded_by;type:uuid;not null"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`

	Project *Project `gorm:"foreignKey:ProjectID"`
	Task    *Task    `gorm:"foreignKey:TaskID"`
}
