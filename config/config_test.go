package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyEnvOverridesDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SUPPORT_PHONE", "+49 30 1234")

	cfg := defaults()
	applyEnv(cfg)

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Server.RateLimit != 2.5 {
		t.Errorf("RateLimit = %v, want 2.5", cfg.Server.RateLimit)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("Redis.DB = %d, want 3", cfg.Redis.DB)
	}
	if cfg.Ledger.SupportPhone != "+49 30 1234" {
		t.Errorf("SupportPhone = %q", cfg.Ledger.SupportPhone)
	}
	if cfg.Kafka.OrderUpdateTopic != "order-updates" {
		t.Errorf("OrderUpdateTopic = %q, want default", cfg.Kafka.OrderUpdateTopic)
	}
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("LOKMA_EMPTY", "")
	t.Setenv("LOKMA_BAD_INT", "many")

	if got := getEnv("LOKMA_EMPTY", "fallback"); got != "fallback" {
		t.Errorf("getEnv(empty) = %q, want fallback", got)
	}
	if got := getEnvInt("LOKMA_BAD_INT", 7); got != 7 {
		t.Errorf("getEnvInt(bad) = %d, want 7", got)
	}
	if got := getEnvFloat("LOKMA_UNSET_FLOAT", 1.5); got != 1.5 {
		t.Errorf("getEnvFloat(unset) = %v, want 1.5", got)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lokma.yaml")
	body := `
server:
  port: "7070"
gateway:
  timeout: 3s
ledger:
  feedback_delay: 48h
kafka:
  brokers: ["broker:9092"]
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := defaults()
	if err := loadYAML(path, cfg); err != nil {
		t.Fatalf("loadYAML: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("Port = %q, want 7070", cfg.Server.Port)
	}
	if cfg.Gateway.Timeout != 3*time.Second {
		t.Errorf("Gateway.Timeout = %v, want 3s", cfg.Gateway.Timeout)
	}
	if cfg.Ledger.FeedbackDelay != 48*time.Hour {
		t.Errorf("FeedbackDelay = %v, want 48h", cfg.Ledger.FeedbackDelay)
	}
	if cfg.JWT.Issuer != "lokma" {
		t.Errorf("Issuer = %q, want default kept", cfg.JWT.Issuer)
	}
	if len(cfg.Kafka.Brokers) != 1 {
		t.Errorf("Brokers = %v", cfg.Kafka.Brokers)
	}
}

func TestLoadYAMLMissingFile(t *testing.T) {
	if err := loadYAML(filepath.Join(t.TempDir(), "absent.yaml"), defaults()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadReportsUnreadableSources(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("PORT", "6060")

	cfg, warnings := Load()
	if cfg.Server.Port != "6060" {
		t.Errorf("Port = %q, want 6060", cfg.Server.Port)
	}
	var sawConfigFile bool
	for _, w := range warnings {
		if strings.Contains(w, "absent.yaml") {
			sawConfigFile = true
		}
	}
	if !sawConfigFile {
		t.Errorf("warnings = %v, want one naming the config file", warnings)
	}
}
