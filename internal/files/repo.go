package files

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

// Repository exposes file persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a file repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listQuery struct {
	projectID uuid.UUID
	search    string
	status    enums.FileStatus
	page      pagination.Params
}

// Create inserts a new file row.
func (r *Repository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

// FindByID loads one file with its project and task.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	var file models.File
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Task").
		First(&file, "files.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// List returns one page of files plus the unpaged total, scoped to a project
// when projectID is set. Search matches the file name case-insensitively.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.File, int64, error) {
	page := opts.page.Normalize()
	query := r.db.WithContext(ctx).Model(&models.File{})

	if opts.projectID != uuid.Nil {
		query = query.Where("project_id = ?", opts.projectID)
	}
	if opts.search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+opts.search+"%")
	}
	if opts.status != "" {
		query = query.Where("status = ?", opts.status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.File
	err := query.
		Preload("Project").
		Preload("Task").
		Order("created_at DESC, id DESC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateStatus flips status from→to with a conditional write, keeping
// rejection_reason in lockstep: set on rejection, cleared otherwise. The
// boolean reports whether this caller won the write.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.FileStatus, rejectionReason *string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.File{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":           to,
			"rejection_reason": rejectionReason,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
