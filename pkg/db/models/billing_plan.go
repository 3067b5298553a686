package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teamflowhq/teamflow-backend/pkg/enums"
)

// BillingPlan is a purchasable pricing tier.
type BillingPlan struct {
	ID        uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string                `gorm:"column:name;not null;unique"`
	Price     decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	Currency  string                `gorm:"column:currency;not null;default:'EUR'"`
	Interval  enums.BillingInterval `gorm:"column:interval;not null;default:'monthly'"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// FormattedPrice renders the plan price the way notification emails display it.
func (p BillingPlan) FormattedPrice() string {
	symbol := "€"
	if p.Currency != "" && p.Currency != "EUR" {
		symbol = p.Currency
	}
	return p.Price.StringFixed(2) + " " + symbol
}
