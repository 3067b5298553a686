package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/teamflowhq/teamflow-backend/pkg/enums"
)

// Application is a candidate submission attached to a single posting.
type Application struct {
	ID            uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RecruitmentID uuid.UUID               `gorm:"column:recruitment_id;type:uuid;not null;index"`
	ApplicantID   uuid.UUID               `gorm:"column:applicant_id;type:uuid;not null;index"`
	Status        enums.ApplicationStatus `gorm:"column:status;type:application_status;not null;default:'submitted'"`
	Feedback      *string                 `gorm:"column:feedback"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
