package domain

import (
	"errors"
	"testing"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    OrderStatus
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"preparing", StatusPreparing, false},
		{"ready", StatusReady, false},
		{"onTheWay", StatusOnTheWay, false},
		{"served", StatusServed, false},
		{"delivered", StatusDelivered, false},
		{"completed", StatusCompleted, false},
		{"rejected", StatusRejected, false},
		{"cancelled", StatusCancelled, false},
		{"on_the_way", "", true},
		{"Delivered", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOrderStatus(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrderStatus(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("ParseOrderStatus(%q) error = %v, want ErrUnknownStatus", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("ParseOrderStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestOrderStatusFlags(t *testing.T) {
	tests := []struct {
		s        OrderStatus
		billable bool
		terminal bool
	}{
		{StatusPending, false, false},
		{StatusReady, false, false},
		{StatusDelivered, true, false},
		{StatusCompleted, true, true},
		{StatusRejected, false, true},
		{StatusCancelled, false, true},
	}
	for _, tt := range tests {
		if got := tt.s.IsBillable(); got != tt.billable {
			t.Errorf("%q.IsBillable() = %v, want %v", tt.s, got, tt.billable)
		}
		if got := tt.s.IsTerminal(); got != tt.terminal {
			t.Errorf("%q.IsTerminal() = %v, want %v", tt.s, got, tt.terminal)
		}
	}
}

func TestIsCardPayment(t *testing.T) {
	tests := []struct {
		method string
		want   bool
	}{
		{PaymentMethodCard, true},
		{PaymentMethodStripe, true},
		{PaymentMethodCash, false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCardPayment(tt.method); got != tt.want {
			t.Errorf("IsCardPayment(%q) = %v, want %v", tt.method, got, tt.want)
		}
	}
}
