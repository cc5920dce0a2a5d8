package service

import (
	"context"
	"fmt"

	"lokma/internal/domain"
	"lokma/internal/event"
	"lokma/internal/models"
)

// StatusUpdate is a staff or courier action on an order.
type StatusUpdate struct {
	Status      string
	Reason      string
	CourierID   string
	CourierName string
}

// OrderService applies status changes made through the API and runs the notifier on them.
type OrderService struct {
	orders   OrderStore
	notifier *OrderNotifier
}

func NewOrderService(orders OrderStore, notifier *OrderNotifier) *OrderService {
	return &OrderService{orders: orders, notifier: notifier}
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// UpdateStatus stores the new status and processes the transition. Legality of the transition
// is not checked. Notification failures do not fail the update.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, upd StatusUpdate) (*models.Order, error) {
	status, err := domain.ParseOrderStatus(upd.Status)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	before := *order

	order.Status = status
	switch status {
	case domain.StatusRejected:
		order.RejectionReason = upd.Reason
	case domain.StatusCancelled:
		order.CancellationReason = upd.Reason
	}
	if upd.CourierID != "" {
		order.CourierID = upd.CourierID
	}
	if upd.CourierName != "" {
		order.CourierName = upd.CourierName
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	after := *order
	if err := s.notifier.HandleOrderUpdate(ctx, &event.OrderChange{OrderID: order.ID, Before: &before, After: &after}); err != nil {
		s.notifier.log.Error().Err(err).Str("order_id", order.ID).Msg("handle status change")
	}
	return order, nil
}
