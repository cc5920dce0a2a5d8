package service

import (
	"context"
	"time"

	"lokma/internal/models"
)

// The services depend on these narrow views of the repositories so tests can run on in-memory fakes.

type OrderStore interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Save(ctx context.Context, o *models.Order) error
	ScheduleFeedback(ctx context.Context, orderID string, at time.Time) error
}

type BusinessStore interface {
	GetByID(ctx context.Context, id string) (*models.Business, error)
	GetUsage(ctx context.Context, businessID, period string) (*models.BusinessUsage, error)
}

type PlanStore interface {
	GetByID(ctx context.Context, id string) (*models.SubscriptionPlan, error)
	GetByCode(ctx context.Context, code string) (*models.SubscriptionPlan, error)
}

type StaffStore interface {
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	ListForBusiness(ctx context.Context, businessID string) ([]models.Staff, error)
}

type LedgerStore interface {
	ExistsForOrder(ctx context.Context, orderID string) (bool, error)
	RecordCommission(ctx context.Context, rec *models.CommissionRecord, conv *models.SponsoredConversion, creditBalance bool) error
}

type SettingStore interface {
	Get(ctx context.Context, key string) (string, error)
}

// Pusher delivers one notification to many device tokens.
type Pusher interface {
	SendMulticast(ctx context.Context, tokens []string, msg PushMessage) (*PushResult, error)
}

// OrderFeed broadcasts order events to connected dashboards of a business.
type OrderFeed interface {
	PublishOrderEvent(businessID string, payload interface{})
}

// Gateway forwards order events to a business's smart-home notification gateway.
type Gateway interface {
	Notify(ctx context.Context, business *models.Business, ev GatewayEvent) error
}

// CommissionRecorder is the ledger entry point used by the notifier.
type CommissionRecorder interface {
	RecordOrder(ctx context.Context, order *models.Order) (*models.CommissionRecord, error)
}
