package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SmartNotifyConfig points at the business's smart-home notification gateway.
type SmartNotifyConfig struct {
	Enabled      bool   `gorm:"default:false" json:"enabled"`
	GatewayURL   string `gorm:"size:512" json:"gateway_url"`
	GatewayKey   string `gorm:"size:255" json:"-"`
	AlexaEnabled bool   `gorm:"default:false" json:"alexa_enabled"`
	WLEDEnabled  bool   `gorm:"default:false" json:"wled_enabled"`
	HueEnabled   bool   `gorm:"default:false" json:"hue_enabled"`
}

type Business struct {
	ID               string            `gorm:"primaryKey;size:64" json:"id"`
	Name             string            `gorm:"size:255;not null" json:"name"`
	Phone            string            `gorm:"size:64" json:"phone"`
	PlanID           string            `gorm:"size:64;index" json:"plan_id"`
	PlanCode         string            `gorm:"size:64" json:"plan_code"`
	DeliveryStaffing string            `gorm:"size:20;default:'own_staff'" json:"delivery_staffing"`
	HasOwnCourier    bool              `gorm:"default:false" json:"has_own_courier"`
	SmartNotify      SmartNotifyConfig `gorm:"embedded;embeddedPrefix:smart_" json:"smart_notify"`
	AccountBalance   decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"account_balance"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}

// BusinessUsage is the per-period usage ledger of a business. Period is "2006-01".
type BusinessUsage struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	BusinessID      string          `gorm:"size:64;not null;uniqueIndex:idx_usage_business_period" json:"business_id"`
	Period          string          `gorm:"size:7;not null;uniqueIndex:idx_usage_business_period" json:"period"`
	OrderCount      int             `gorm:"not null;default:0" json:"order_count"`
	CommissionTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"commission_total"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (BusinessUsage) TableName() string {
	return "business_usage"
}
