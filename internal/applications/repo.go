package applications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

// Repository exposes application persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an application repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listQuery struct {
	recruitmentID uuid.UUID
	status        enums.ApplicationStatus
	page          pagination.Params
}

// Create inserts a new application row.
func (r *Repository) Create(ctx context.Context, application *models.Application) (*models.Application, error) {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		return nil, err
	}
	return application, nil
}

// FindByID loads one application.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).First(&application, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// List returns one page of a posting's applications plus the unpaged total.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Application, int64, error) {
	page := opts.page.Normalize()
	query := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("recruitment_id = ?", opts.recruitmentID)

	if opts.status != "" {
		query = query.Where("status = ?", opts.status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Application
	err := query.
		Order("created_at DESC, id DESC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateStatus flips status from→to with a conditional write and records the
// reviewer feedback. The boolean reports whether this caller won the write.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.ApplicationStatus, feedback *string) (bool, error) {
	updates := map[string]any{"status": to}
	if feedback != nil {
		updates["feedback"] = feedback
	}
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
