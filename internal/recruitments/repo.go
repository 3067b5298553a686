package recruitments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

// Repository exposes recruitment persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a recruitment repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listQuery struct {
	search string
	status enums.RecruitmentStatus
	page   pagination.Params
}

// Create inserts a new posting row.
func (r *Repository) Create(ctx context.Context, recruitment *models.Recruitment) (*models.Recruitment, error) {
	if err := r.db.WithContext(ctx).Create(recruitment).Error; err != nil {
		return nil, err
	}
	return recruitment, nil
}

// FindByID loads one posting.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Recruitment, error) {
	var recruitment models.Recruitment
	if err := r.db.WithContext(ctx).First(&recruitment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recruitment, nil
}

// List returns one page of postings plus the unpaged total. Search matches
// the title and location case-insensitively.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Recruitment, int64, error) {
	page := opts.page.Normalize()
	query := r.db.WithContext(ctx).Model(&models.Recruitment{})

	if opts.search != "" {
		like := "%" + opts.search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(location) LIKE LOWER(?)", like, like)
	}
	if opts.status != "" {
		query = query.Where("status = ?", opts.status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Recruitment
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

// UpdateStatus flips status from→to with a conditional write. The boolean
// reports whether this caller won the write.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.RecruitmentStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Recruitment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindExpired returns published postings whose auto-close deadline has passed.
func (r *Repository) FindExpired(ctx context.Context, now time.Time) ([]models.Recruitment, error) {
	var rows []models.Recruitment
	err := r.db.WithContext(ctx).
		Where("status = ? AND auto_close = ? AND deadline IS NOT NULL AND deadline < ?",
			enums.RecruitmentStatusPublished, true, now).
		Order("deadline ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
