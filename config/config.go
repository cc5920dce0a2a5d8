package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Firebase FirebaseConfig `yaml:"firebase"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Ledger   LedgerConfig   `yaml:"ledger"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	Env          string        `yaml:"env"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// Requests per second allowed per client IP.
	RateLimit      float64 `yaml:"rate_limit"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
	// Shared secret for POST /internal/order-events.
	InternalEventSecret string `yaml:"internal_event_secret"`
}

type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type JWTConfig struct {
	AccessSecret string        `yaml:"access_secret"`
	AccessExpiry time.Duration `yaml:"access_expiry"`
	Issuer       string        `yaml:"issuer"`
}

type FirebaseConfig struct {
	ServiceAccountPath string `yaml:"service_account_path"`
}

type KafkaConfig struct {
	Brokers          []string `yaml:"brokers"`
	OrderUpdateTopic string   `yaml:"order_update_topic"`
	GroupID          string   `yaml:"group_id"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PlanTTL  time.Duration `yaml:"plan_ttl"`
}

type TracingConfig struct {
	JaegerEndpoint string `yaml:"jaeger_endpoint"`
	ServiceName    string `yaml:"service_name"`
}

// GatewayConfig configures calls to the per-business smart-home notification gateway.
type GatewayConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type LedgerConfig struct {
	// Platform support number quoted in rejection messages when the business has none.
	SupportPhone  string        `yaml:"support_phone"`
	FeedbackDelay time.Duration `yaml:"feedback_delay"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			RateLimit:      20,
			RateLimitBurst: 40,
		},
		Database: DatabaseConfig{
			DSN:             "lokma:lokma@tcp(localhost:3306)/lokma?charset=utf8mb4&parseTime=True&loc=UTC",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret: "change-me-in-production",
			AccessExpiry: 12 * time.Hour,
			Issuer:       "lokma",
		},
		Kafka: KafkaConfig{
			OrderUpdateTopic: "order-updates",
			GroupID:          "lokma-notifier",
		},
		Redis: RedisConfig{
			PlanTTL: 10 * time.Minute,
		},
		Tracing: TracingConfig{
			ServiceName: "lokma-backend",
		},
		Gateway: GatewayConfig{
			Timeout: 5 * time.Second,
		},
		Ledger: LedgerConfig{
			FeedbackDelay: 24 * time.Hour,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file (CONFIG_FILE),
// a .env file and the process environment, later sources winning. Sources that could not
// be read are reported as warnings for the caller to log once logging is set up.
func Load() (*Config, []string) {
	cfg := defaults()
	var warnings []string
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring config file %s: %v", path, err))
		}
	}
	if err := godotenv.Load(); err != nil {
		warnings = append(warnings, "no .env file found, using environment variables")
	}
	applyEnv(cfg)
	return cfg, warnings
}

func loadYAML(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, cfg)
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.Env = getEnv("APP_ENV", cfg.Server.Env)
	cfg.Server.RateLimit = getEnvFloat("RATE_LIMIT_RPS", cfg.Server.RateLimit)
	cfg.Server.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", cfg.Server.RateLimitBurst)
	cfg.Server.InternalEventSecret = getEnv("INTERNAL_EVENT_SECRET", cfg.Server.InternalEventSecret)

	cfg.Database.DSN = getEnv("DATABASE_DSN", cfg.Database.DSN)

	cfg.JWT.AccessSecret = getEnv("JWT_ACCESS_SECRET", cfg.JWT.AccessSecret)
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", cfg.JWT.Issuer)

	cfg.Firebase.ServiceAccountPath = getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", cfg.Firebase.ServiceAccountPath)

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	cfg.Kafka.OrderUpdateTopic = getEnv("KAFKA_ORDER_UPDATE_TOPIC", cfg.Kafka.OrderUpdateTopic)
	cfg.Kafka.GroupID = getEnv("KAFKA_GROUP_ID", cfg.Kafka.GroupID)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)

	cfg.Tracing.JaegerEndpoint = getEnv("JAEGER_ENDPOINT", cfg.Tracing.JaegerEndpoint)

	cfg.Ledger.SupportPhone = getEnv("SUPPORT_PHONE", cfg.Ledger.SupportPhone)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return f
}
