package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/teamflowhq/teamflow-backend/pkg/enums"
)

// Subscription links a user to a billing plan. Rows are never hard-deleted;
// cancelled and expired subscriptions stay visible in list views.
type Subscription struct {
	ID        uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	PlanID    uuid.UUID                `gorm:"column:plan_id;type:uuid;not null"`
	Status    enums.SubscriptionStatus `gorm:"column:status;type:subscription_status;not null;default:'pending'"`
	StartsAt  time.Time                `gorm:"column:starts_at;not null"`
	EndsAt    *time.Time               `gorm:"column:ends_at"`
	CreatedAt time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time                `gorm:"column:updated_at;autoUpdateTime"`

	Plan *BillingPlan `gorm:"foreignKey:PlanID"`
	User *User        `gorm:"foreignKey:UserID"`
}

// WillExpireSoon reports whether the subscription ends within the window.
func (s Subscription) WillExpireSoon(now time.Time, window time.Duration) bool {
	if s.EndsAt == nil || s.Status != enums.SubscriptionStatusActive {
		return false
	}
	return s.EndsAt.After(now) && s.EndsAt.Sub(now) <= window
}
