package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CommissionRecord is written exactly once per billable order; OrderID is unique.
type CommissionRecord struct {
	ID                string          `gorm:"primaryKey;size:36" json:"id"`
	OrderID           string          `gorm:"uniqueIndex;size:64;not null" json:"order_id"`
	BusinessID        string          `gorm:"size:64;not null;index" json:"business_id"`
	PlanID            string          `gorm:"size:64" json:"plan_id"`
	Period            string          `gorm:"size:7;index" json:"period"`
	OrderTotal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"order_total"`
	CourierType       string          `gorm:"size:20;not null" json:"courier_type"`
	CommissionRate    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"commission_rate"`
	CommissionAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"commission_amount"`
	PerOrderFeeAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"per_order_fee_amount"`
	TotalCommission   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_commission"`
	NetCommission     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"net_commission"`
	VATRate           decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"vat_rate"`
	VATAmount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vat_amount"`
	SponsoredFee      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"sponsored_fee"`
	PaymentMethod     string          `gorm:"size:20" json:"payment_method"`
	CollectionStatus  string          `gorm:"size:20;not null;index" json:"collection_status"`
	IsFreeOrder       bool            `gorm:"default:false" json:"is_free_order"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (CommissionRecord) TableName() string {
	return "commission_records"
}

// BalanceIncrement is what the record adds to the business's open account balance.
func (r *CommissionRecord) BalanceIncrement() decimal.Decimal {
	return r.TotalCommission.Add(r.SponsoredFee)
}

// SponsoredConversion bills the sponsored items contained in one order.
type SponsoredConversion struct {
	ID               string                      `gorm:"primaryKey;size:36" json:"id"`
	OrderID          string                      `gorm:"uniqueIndex;size:64;not null" json:"order_id"`
	BusinessID       string                      `gorm:"size:64;not null;index" json:"business_id"`
	ItemIDs          datatypes.JSONSlice[string] `gorm:"type:json" json:"item_ids"`
	ItemCount        int                         `gorm:"not null" json:"item_count"`
	FeePerConversion decimal.Decimal             `gorm:"type:decimal(12,2);not null" json:"fee_per_conversion"`
	TotalFee         decimal.Decimal             `gorm:"type:decimal(12,2);not null" json:"total_fee"`
	CreatedAt        time.Time                   `json:"created_at"`
}

func (SponsoredConversion) TableName() string {
	return "sponsored_conversions"
}
