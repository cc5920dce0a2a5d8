package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lokma/config"
	"lokma/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func feedServer(t *testing.T, cfg *config.JWTConfig, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/orders", UpgradeOrderFeed(cfg, hub))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestUpgradeOrderFeedRejectsBadTokens(t *testing.T) {
	cfg := &config.JWTConfig{AccessSecret: "secret", AccessExpiry: time.Hour, Issuer: "lokma"}
	noBusiness, err := auth.GenerateAccessToken(cfg, "s1", "", "COURIER")
	if err != nil {
		t.Fatal(err)
	}
	srv := feedServer(t, cfg, NewHub())

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "abc", http.StatusUnauthorized},
		{"token without business", noBusiness, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/ws/orders?token=" + tt.token)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestUpgradeOrderFeedStreamsBusinessEvents(t *testing.T) {
	cfg := &config.JWTConfig{AccessSecret: "secret", AccessExpiry: time.Hour, Issuer: "lokma"}
	token, err := auth.GenerateAccessToken(cfg, "s1", "b1", "STAFF")
	if err != nil {
		t.Fatal(err)
	}
	hub := NewHub()
	srv := feedServer(t, cfg, hub)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount("b1") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.PublishOrderEvent("b1", map[string]string{"orderId": "o1", "status": "ready"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(msg), `"orderId":"o1"`) {
		t.Errorf("message = %s", msg)
	}
}
