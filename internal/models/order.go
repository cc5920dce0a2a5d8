package models

import (
	"time"

	"lokma/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"` // pieces or kilograms
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type Order struct {
	ID                 string                         `gorm:"primaryKey;size:64" json:"id"`
	OrderNumber        string                         `gorm:"size:32;index" json:"order_number"`
	BusinessID         string                         `gorm:"size:64;not null;index" json:"business_id"`
	CustomerID         string                         `gorm:"size:64;index" json:"customer_id"`
	CustomerName       string                         `gorm:"size:255" json:"customer_name"`
	CustomerPhone      string                         `gorm:"size:64" json:"customer_phone"`
	CustomerFCMToken   string                         `gorm:"size:512" json:"-"`
	Items              datatypes.JSONSlice[OrderItem] `gorm:"type:json" json:"items"`
	TotalAmount        decimal.Decimal                `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	FulfillmentType    string                         `gorm:"size:20;not null;index" json:"fulfillment_type"`
	TableNumber        *int                           `json:"table_number,omitempty"`
	Status             domain.OrderStatus             `gorm:"size:20;not null;index" json:"status"`
	PaymentMethod      string                         `gorm:"size:20" json:"payment_method"`
	PaymentStatus      string                         `gorm:"size:20" json:"payment_status"`
	CourierID          string                         `gorm:"size:64;index" json:"courier_id,omitempty"`
	CourierName        string                         `gorm:"size:255" json:"courier_name,omitempty"`
	RejectionReason    string                         `gorm:"size:512" json:"rejection_reason,omitempty"`
	CancellationReason string                         `gorm:"size:512" json:"cancellation_reason,omitempty"`
	SponsoredItemIDs   datatypes.JSONSlice[string]    `gorm:"type:json" json:"sponsored_item_ids,omitempty"`
	FeedbackRequestAt  *time.Time                     `gorm:"index" json:"feedback_request_at,omitempty"`
	ScheduledAt        *time.Time                     `json:"scheduled_at,omitempty"`
	CreatedAt          time.Time                      `json:"created_at"`
	UpdatedAt          time.Time                      `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) IsDelivery() bool { return o.FulfillmentType == domain.FulfillmentDelivery }

// IsDineIn is true for dine-in orders and for any order carrying a table number.
func (o *Order) IsDineIn() bool {
	return o.FulfillmentType == domain.FulfillmentDineIn || o.TableNumber != nil
}

func (o *Order) WasPaid() bool {
	return o.PaymentStatus == domain.PaymentStatusPaid || o.PaymentStatus == domain.PaymentStatusCompleted
}

// DisplayNumber is the short number shown to customers, falling back to the id prefix.
func (o *Order) DisplayNumber() string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	if len(o.ID) > 6 {
		return o.ID[:6]
	}
	return o.ID
}
