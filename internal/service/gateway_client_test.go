package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lokma/internal/domain"
	"lokma/internal/models"
)

func TestGatewayClientNotify(t *testing.T) {
	var got GatewayEvent
	var key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("X-Gateway-Key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	table := 4
	b := &models.Business{ID: "b1", SmartNotify: models.SmartNotifyConfig{Enabled: true, GatewayURL: srv.URL, GatewayKey: "secret", WLEDEnabled: true}}
	o := &models.Order{ID: "o1", OrderNumber: "A-7", BusinessID: "b1", Status: domain.StatusReady,
		FulfillmentType: domain.FulfillmentDineIn, TableNumber: &table, TotalAmount: dec("18.5")}

	client := NewGatewayClient(time.Second)
	if err := client.Notify(context.Background(), b, NewGatewayEvent(b, o)); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if key != "secret" {
		t.Errorf("X-Gateway-Key = %q, want secret", key)
	}
	if got.OrderID != "o1" || got.Event != "order.ready" || got.TotalAmount != "18.50" || got.TableNumber == nil || *got.TableNumber != 4 {
		t.Errorf("body = %+v", got)
	}
	if !got.Channels.WLED || got.Channels.Hue {
		t.Errorf("channels = %+v", got.Channels)
	}
}

func TestGatewayClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()
	client := NewGatewayClient(time.Second)
	o := &models.Order{ID: "o1", Status: domain.StatusReady}

	b := &models.Business{ID: "b1", SmartNotify: models.SmartNotifyConfig{Enabled: true, GatewayURL: srv.URL}}
	if err := client.Notify(context.Background(), b, NewGatewayEvent(b, o)); err == nil {
		t.Error("expected error for non-2xx response")
	}

	off := &models.Business{ID: "b1"}
	if err := client.Notify(context.Background(), off, NewGatewayEvent(off, o)); !errors.Is(err, ErrGatewayDisabled) {
		t.Errorf("disabled gateway error = %v, want ErrGatewayDisabled", err)
	}
}
