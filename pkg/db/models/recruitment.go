package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/teamflowhq/teamflow-backend/pkg/enums"
)

// Recruitment is a job posting. When AutoClose is set and the deadline has
// elapsed, the scheduled closer forces the status to closed.
type Recruitment struct {
	ID          uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string                  `gorm:"column:title;not null"`
	Description string                  `gorm:"column:description;not null"`
	Type        string                  `gorm:"column:type;not null"`
	Location    string                  `gorm:"column:location;not null"`
	SalaryMin   *int                    `gorm:"column:salary_min"`
	SalaryMax   *int                    `gorm:"column:salary_max"`
	Status      enums.RecruitmentStatus `gorm:"column:status;type:recruitment_status;not null;default:'draft'"`
	Deadline    *time.Time              `gorm:"column:deadline"`
	AutoClose   bool                    `gorm:"column:auto_close;not null;default:false"`
	CreatedBy   uuid.UUID               `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
