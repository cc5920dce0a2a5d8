package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lokma/internal/domain"
	"lokma/internal/event"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUpdateHandler struct {
	err    error
	called *event.OrderChange
}

func (s *stubUpdateHandler) HandleOrderUpdate(_ context.Context, change *event.OrderChange) error {
	s.called = change
	return s.err
}

func TestOrderEvent(t *testing.T) {
	valid := `{"orderId":"o1","before":{"status":"preparing"},"after":{"status":"ready"}}`
	tests := []struct {
		name       string
		body       string
		handlerErr error
		wantCode   int
		wantCalled bool
	}{
		{"accepted", valid, nil, http.StatusAccepted, true},
		{"malformed body", `{not json`, nil, http.StatusBadRequest, false},
		{"unknown status", valid, domain.ErrUnknownStatus, http.StatusUnprocessableEntity, true},
		{"processing error", valid, errors.New("db down"), http.StatusInternalServerError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubUpdateHandler{err: tt.handlerErr}
			r := gin.New()
			r.POST("/events", NewEventHandler(stub).OrderEvent)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body))
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.wantCode, w.Body.String())
			}
			if (stub.called != nil) != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", stub.called != nil, tt.wantCalled)
			}
			if tt.wantCalled && stub.called.OrderID != "o1" {
				t.Errorf("OrderID = %q, want o1", stub.called.OrderID)
			}
		})
	}
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthz(t *testing.T) {
	tests := []struct {
		name   string
		pinger Pinger
		want   int
	}{
		{"healthy", stubPinger{}, http.StatusOK},
		{"database down", stubPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable},
		{"no database", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/healthz", NewHealthHandler(tt.pinger).Healthz)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
