package subscriptions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

// Repository exposes subscription persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a subscription repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listQuery struct {
	search string
	status enums.SubscriptionStatus
	page   pagination.Params
}

// Create inserts a new subscription row.
func (r *Repository) Create(ctx context.Context, subscription *models.Subscription) (*models.Subscription, error) {
	if err := r.db.WithContext(ctx).Create(subscription).Error; err != nil {
		return nil, err
	}
	return subscription, nil
}

// FindByID loads one subscription with its plan and user.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Preload("User").
		First(&subscription, "subscriptions.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// List returns one page of subscriptions plus the unpaged total. Search
// matches the subscriber name/email and the plan name, case-insensitively.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Subscription, int64, error) {
	page := opts.page.Normalize()
	query := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Joins("JOIN users ON users.id = subscriptions.user_id").
		Joins("JOIN billing_plans ON billing_plans.id = subscriptions.plan_id")

	if opts.search != "" {
		like := "%" + opts.search + "%"
		query = query.Where(
			"LOWER(users.name) LIKE LOWER(?) OR LOWER(users.email) LIKE LOWER(?) OR LOWER(billing_plans.name) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if opts.status != "" {
		query = query.Where("subscriptions.status = ?", opts.status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Subscription
	err := query.
		Preload("Plan").
		Preload("User").
		Order("subscriptions.created_at DESC, subscriptions.id DESC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateStatus flips status from→to with a conditional write. The boolean
// reports whether this caller won the write; zero rows affected means a
// concurrent writer got there first.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.SubscriptionStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
