package models

import (
	"time"

	"lokma/internal/domain"

	"github.com/shopspring/decimal"
)

// SubscriptionPlan holds the commission terms of a business. Nil rates fall back to the platform default.
type SubscriptionPlan struct {
	ID                        string           `gorm:"primaryKey;size:64" json:"id"`
	Code                      string           `gorm:"uniqueIndex;size:64;not null" json:"code"`
	Name                      string           `gorm:"size:255" json:"name"`
	ClickCollectRate          *decimal.Decimal `gorm:"type:decimal(5,2)" json:"click_collect_rate"`
	OwnCourierRate            *decimal.Decimal `gorm:"type:decimal(5,2)" json:"own_courier_rate"`
	LokmaCourierRate          *decimal.Decimal `gorm:"type:decimal(5,2)" json:"lokma_courier_rate"`
	FreeOrdersPerPeriod       int              `gorm:"not null;default:0" json:"free_orders_per_period"`
	PerOrderFeeType           string           `gorm:"size:20;default:'none'" json:"per_order_fee_type"`
	PerOrderFeeAmount         decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"per_order_fee_amount"`
	SponsoredFeePerConversion *decimal.Decimal `gorm:"type:decimal(12,2)" json:"sponsored_fee_per_conversion"`
	CreatedAt                 time.Time        `json:"created_at"`
	UpdatedAt                 time.Time        `json:"updated_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// RateFor returns the commission percentage for a courier type and whether the plan defines it.
func (p *SubscriptionPlan) RateFor(courierType string) (decimal.Decimal, bool) {
	var rate *decimal.Decimal
	switch courierType {
	case domain.CourierClickCollect:
		rate = p.ClickCollectRate
	case domain.CourierOwn:
		rate = p.OwnCourierRate
	case domain.CourierLokma:
		rate = p.LokmaCourierRate
	}
	if rate == nil {
		return decimal.Zero, false
	}
	return *rate, true
}
