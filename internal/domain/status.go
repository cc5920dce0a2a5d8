package domain

import (
	"errors"
	"fmt"
)

// OrderStatus is the lifecycle state of an order. Transitions are driven by staff and couriers;
// nothing in this service enforces their legality.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusOnTheWay  OrderStatus = "onTheWay"
	StatusServed    OrderStatus = "served"
	StatusDelivered OrderStatus = "delivered"
	StatusCompleted OrderStatus = "completed"
	StatusRejected  OrderStatus = "rejected"
	StatusCancelled OrderStatus = "cancelled"
)

var ErrUnknownStatus = errors.New("unknown order status")

var knownStatuses = map[OrderStatus]struct{}{
	StatusPending:   {},
	StatusPreparing: {},
	StatusReady:     {},
	StatusOnTheWay:  {},
	StatusServed:    {},
	StatusDelivered: {},
	StatusCompleted: {},
	StatusRejected:  {},
	StatusCancelled: {},
}

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if _, ok := knownStatuses[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

// IsBillable reports whether reaching this status creates a commission record.
func (s OrderStatus) IsBillable() bool {
	return s == StatusDelivered || s == StatusCompleted
}

// IsTerminal reports whether no further transition is expected.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}
