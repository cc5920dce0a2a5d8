package service

import (
	"context"
	"time"

	"lokma/internal/domain"
	"lokma/internal/event"
	"lokma/internal/logger"
	"lokma/internal/metrics"
	"lokma/internal/models"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Recipient groups, used as metric labels and in push data.
const (
	recipientCustomer = "customer"
	recipientDrivers  = "drivers"
	recipientWaiters  = "waiters"
)

type NotifierConfig struct {
	// Callback number for rejection messages when the business has none.
	SupportPhone  string
	FeedbackDelay time.Duration
}

// OrderFeedEvent is what dashboards receive for every handled transition.
type OrderFeedEvent struct {
	Type            string             `json:"type"`
	OrderID         string             `json:"order_id"`
	OrderNumber     string             `json:"order_number"`
	Status          domain.OrderStatus `json:"status"`
	PreviousStatus  domain.OrderStatus `json:"previous_status"`
	FulfillmentType string             `json:"fulfillment_type"`
	TableNumber     *int               `json:"table_number,omitempty"`
	Terminal        bool               `json:"terminal"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// OrderNotifier reacts to order status transitions: it notifies the customer and the
// staff concerned, schedules feedback, and hands billable orders to the ledger.
// Every side effect is independent; a failure is logged and the others still run.
type OrderNotifier struct {
	orders     OrderStore
	businesses BusinessStore
	staff      StaffStore
	push       Pusher
	ledger     CommissionRecorder
	feed       OrderFeed
	gateway    Gateway
	cfg        NotifierConfig
	now        func() time.Time
	log        zerolog.Logger
}

// NewOrderNotifier wires the notifier. feed and gateway may be nil.
func NewOrderNotifier(orders OrderStore, businesses BusinessStore, staff StaffStore, push Pusher, ledger CommissionRecorder, feed OrderFeed, gateway Gateway, cfg NotifierConfig) *OrderNotifier {
	if cfg.FeedbackDelay <= 0 {
		cfg.FeedbackDelay = 24 * time.Hour
	}
	return &OrderNotifier{
		orders:     orders,
		businesses: businesses,
		staff:      staff,
		push:       push,
		ledger:     ledger,
		feed:       feed,
		gateway:    gateway,
		cfg:        cfg,
		now:        time.Now,
		log:        logger.Component("notifier"),
	}
}

// HandleOrderUpdate processes one before/after pair. Missing snapshots and unchanged statuses
// are ignored. An unrecognized status returns domain.ErrUnknownStatus without side effects.
func (n *OrderNotifier) HandleOrderUpdate(ctx context.Context, change *event.OrderChange) error {
	if change == nil || change.Before == nil || change.After == nil {
		return nil
	}
	before, after := change.Before, change.After
	if before.Status == after.Status {
		return nil
	}
	status, err := domain.ParseOrderStatus(string(after.Status))
	if err != nil {
		return err
	}

	ctx, span := otel.Tracer("lokma/service").Start(ctx, "OrderNotifier.HandleOrderUpdate")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", after.ID),
		attribute.String("order.status", string(status)),
		attribute.String("business.id", after.BusinessID),
	)

	log := n.log.With().Str("order_id", after.ID).Str("business_id", after.BusinessID).Str("status", string(status)).Logger()
	log.Info().Str("previous_status", string(before.Status)).Msg("order status changed")
	metrics.OrderTransitions.WithLabelValues(string(status)).Inc()

	business, err := n.businesses.GetByID(ctx, after.BusinessID)
	if err != nil {
		log.Warn().Err(err).Msg("business lookup failed")
		metrics.BranchErrors.WithLabelValues("business").Inc()
		business = nil
	}

	switch status {
	case domain.StatusPending:
	case domain.StatusPreparing, domain.StatusOnTheWay, domain.StatusRejected, domain.StatusCancelled:
		n.notifyCustomer(ctx, log, before, after, status, business)
	case domain.StatusReady:
		tableReady := after.IsDineIn() && after.TableNumber != nil
		if after.IsDelivery() {
			n.notifyCustomer(ctx, log, before, after, status, business)
			n.notifyDrivers(ctx, log, after, business)
		}
		if tableReady {
			n.notifyWaiters(ctx, log, after)
		}
		if !after.IsDelivery() && !tableReady {
			n.notifyCustomer(ctx, log, before, after, status, business)
		}
	case domain.StatusServed:
		n.notifyCustomer(ctx, log, before, after, status, business)
		n.scheduleFeedback(ctx, log, after)
	case domain.StatusDelivered:
		n.notifyCustomer(ctx, log, before, after, status, business)
		n.scheduleFeedback(ctx, log, after)
	case domain.StatusCompleted:
		n.notifyCustomer(ctx, log, before, after, status, business)
	}
	if status.IsBillable() {
		n.recordCommission(ctx, log, after)
	}

	n.broadcast(before, after)
	n.forwardToGateway(ctx, log, business, after)
	return nil
}

func (n *OrderNotifier) notifyCustomer(ctx context.Context, log zerolog.Logger, before, after *models.Order, status domain.OrderStatus, business *models.Business) {
	callback := n.cfg.SupportPhone
	if business != nil && business.Phone != "" {
		callback = business.Phone
	}
	msg, ok := customerMessage(before, after, status, callback)
	if !ok {
		return
	}
	if after.CustomerFCMToken == "" {
		log.Info().Msg("no customer device token, customer not notified")
		metrics.Notifications.WithLabelValues(recipientCustomer, metrics.ResultSkipped).Inc()
		return
	}
	n.dispatch(ctx, log, recipientCustomer, []string{after.CustomerFCMToken}, msg)
}

func (n *OrderNotifier) notifyDrivers(ctx context.Context, log zerolog.Logger, order *models.Order, business *models.Business) {
	if business == nil {
		metrics.Notifications.WithLabelValues(recipientDrivers, metrics.ResultSkipped).Inc()
		return
	}
	staff, err := n.staff.ListForBusiness(ctx, business.ID)
	if err != nil {
		log.Error().Err(err).Msg("load delivery staff")
		metrics.BranchErrors.WithLabelValues("staff").Inc()
		return
	}
	n.dispatch(ctx, log, recipientDrivers, DeliveryRecipients(business, staff), staffMessage(order, recipientDrivers))
}

func (n *OrderNotifier) notifyWaiters(ctx context.Context, log zerolog.Logger, order *models.Order) {
	staff, err := n.staff.ListForBusiness(ctx, order.BusinessID)
	if err != nil {
		log.Error().Err(err).Msg("load table staff")
		metrics.BranchErrors.WithLabelValues("staff").Inc()
		return
	}
	tokens := TableRecipients(order.BusinessID, *order.TableNumber, staff)
	n.dispatch(ctx, log, recipientWaiters, tokens, staffMessage(order, recipientWaiters))
}

func (n *OrderNotifier) dispatch(ctx context.Context, log zerolog.Logger, recipient string, tokens []string, msg PushMessage) {
	if len(tokens) == 0 {
		log.Debug().Str("recipient", recipient).Msg("no device tokens")
		metrics.Notifications.WithLabelValues(recipient, metrics.ResultSkipped).Inc()
		return
	}
	res, err := n.push.SendMulticast(ctx, tokens, msg)
	if err != nil {
		log.Error().Err(err).Str("recipient", recipient).Int("tokens", len(tokens)).Msg("push failed")
		metrics.Notifications.WithLabelValues(recipient, metrics.ResultFailed).Inc()
		return
	}
	if res == nil || res.SuccessCount+res.FailureCount == 0 {
		log.Debug().Str("recipient", recipient).Msg("push not configured")
		metrics.Notifications.WithLabelValues(recipient, metrics.ResultSkipped).Inc()
		return
	}
	metrics.Notifications.WithLabelValues(recipient, metrics.ResultSent).Inc()
	if res.FailureCount > 0 {
		log.Warn().Str("recipient", recipient).Int("success", res.SuccessCount).Int("failure", res.FailureCount).Msg("push partially failed")
	}
}

func (n *OrderNotifier) scheduleFeedback(ctx context.Context, log zerolog.Logger, order *models.Order) {
	at := n.now().Add(n.cfg.FeedbackDelay)
	if err := n.orders.ScheduleFeedback(ctx, order.ID, at); err != nil {
		log.Error().Err(err).Msg("schedule feedback request")
		metrics.BranchErrors.WithLabelValues("feedback").Inc()
	}
}

func (n *OrderNotifier) recordCommission(ctx context.Context, log zerolog.Logger, order *models.Order) {
	if _, err := n.ledger.RecordOrder(ctx, order); err != nil {
		log.Error().Err(err).Msg("record commission")
		metrics.BranchErrors.WithLabelValues("ledger").Inc()
	}
}

func (n *OrderNotifier) broadcast(before, after *models.Order) {
	if n.feed == nil {
		return
	}
	n.feed.PublishOrderEvent(after.BusinessID, OrderFeedEvent{
		Type:            "order_status",
		OrderID:         after.ID,
		OrderNumber:     after.DisplayNumber(),
		Status:          after.Status,
		PreviousStatus:  before.Status,
		FulfillmentType: after.FulfillmentType,
		TableNumber:     after.TableNumber,
		Terminal:        after.Status.IsTerminal(),
		UpdatedAt:       n.now().UTC(),
	})
}

func (n *OrderNotifier) forwardToGateway(ctx context.Context, log zerolog.Logger, business *models.Business, order *models.Order) {
	if n.gateway == nil || business == nil || !business.SmartNotify.Enabled || business.SmartNotify.GatewayURL == "" {
		return
	}
	if err := n.gateway.Notify(ctx, business, NewGatewayEvent(business, order)); err != nil {
		log.Warn().Err(err).Msg("smart notification gateway")
		metrics.BranchErrors.WithLabelValues("gateway").Inc()
	}
}
