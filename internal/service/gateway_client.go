package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"lokma/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var ErrGatewayDisabled = errors.New("smart notification gateway not configured")

type GatewayChannels struct {
	Alexa bool `json:"alexa"`
	WLED  bool `json:"wled"`
	Hue   bool `json:"hue"`
}

// GatewayEvent is the body posted to a business's smart-home gateway.
type GatewayEvent struct {
	BusinessID      string          `json:"businessId"`
	Event           string          `json:"event"`
	OrderID         string          `json:"orderId"`
	OrderNumber     string          `json:"orderNumber"`
	Status          string          `json:"status"`
	FulfillmentType string          `json:"fulfillmentType"`
	TableNumber     *int            `json:"tableNumber,omitempty"`
	TotalAmount     string          `json:"totalAmount"`
	Channels        GatewayChannels `json:"channels"`
}

// NewGatewayEvent describes an order transition for the gateway.
func NewGatewayEvent(business *models.Business, order *models.Order) GatewayEvent {
	return GatewayEvent{
		BusinessID:      business.ID,
		Event:           "order." + string(order.Status),
		OrderID:         order.ID,
		OrderNumber:     order.DisplayNumber(),
		Status:          string(order.Status),
		FulfillmentType: order.FulfillmentType,
		TableNumber:     order.TableNumber,
		TotalAmount:     order.TotalAmount.StringFixed(2),
		Channels: GatewayChannels{
			Alexa: business.SmartNotify.AlexaEnabled,
			WLED:  business.SmartNotify.WLEDEnabled,
			Hue:   business.SmartNotify.HueEnabled,
		},
	}
}

// GatewayClient posts order events to the per-business gateway URL.
type GatewayClient struct {
	http *http.Client
}

func NewGatewayClient(timeout time.Duration) *GatewayClient {
	return &GatewayClient{http: &http.Client{Timeout: timeout}}
}

func (c *GatewayClient) Notify(ctx context.Context, business *models.Business, ev GatewayEvent) error {
	cfg := business.SmartNotify
	if !cfg.Enabled || cfg.GatewayURL == "" {
		return ErrGatewayDisabled
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.GatewayKey != "" {
		req.Header.Set("X-Gateway-Key", cfg.GatewayKey)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}
