package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Dispatch stores dispatch engine settings.
type Dispatch struct {
	// AreaThreshold is the maximum fuzzy dissimilarity score still treated
	// as an area match. Must stay in (0,1].
	AreaThreshold    float64
	MaxAttempts      int
	OperationTimeout time.Duration
}

// RateLimit stores HTTP rate limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Kafka stores order-events consumer settings. Empty brokers disable the consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// CustomerAPI stores settings for the storefront address book gateway.
// An empty BaseURL switches address resolution to the local address table.
type CustomerAPI struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Config stores dispatch service settings.
type Config struct {
	Port        int
	DB          DB
	Dispatch    Dispatch
	RateLimit   RateLimit
	Kafka       Kafka
	CustomerAPI CustomerAPI
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:        DefaultPort(),
		DB:          DefaultDB(),
		Dispatch:    DefaultDispatch(),
		RateLimit:   DefaultRateLimit(),
		Kafka:       DefaultKafka(),
		CustomerAPI: DefaultCustomerAPI(),
	}

	applyEnv(cfg)

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Float64Var(&cfg.Dispatch.AreaThreshold, "area-threshold", cfg.Dispatch.AreaThreshold,
		"max fuzzy area dissimilarity accepted as a match")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Dispatch.AreaThreshold <= 0 || cfg.Dispatch.AreaThreshold > 1 {
		return nil, fmt.Errorf("invalid area threshold: %v", cfg.Dispatch.AreaThreshold)
	}
	if cfg.Dispatch.MaxAttempts <= 0 {
		return nil, fmt.Errorf("invalid dispatch max attempts: %d", cfg.Dispatch.MaxAttempts)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	envInt("PORT", &cfg.Port)

	envStr("POSTGRES_HOST", &cfg.DB.Host)
	envStr("POSTGRES_PORT", &cfg.DB.Port)
	envStr("POSTGRES_USER", &cfg.DB.User)
	envStr("POSTGRES_PASSWORD", &cfg.DB.Pass)
	envStr("POSTGRES_DB", &cfg.DB.Name)

	envFloat("DISPATCH_AREA_THRESHOLD", &cfg.Dispatch.AreaThreshold)
	envInt("DISPATCH_MAX_ATTEMPTS", &cfg.Dispatch.MaxAttempts)
	envDuration("DISPATCH_OPERATION_TIMEOUT", &cfg.Dispatch.OperationTimeout)

	envBool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled)
	envFloat("RATE_LIMIT_RATE", &cfg.RateLimit.Rate)
	envInt("RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
	envDuration("RATE_LIMIT_TTL", &cfg.RateLimit.TTL)
	envInt("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets)

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers := make([]string, 0, 2)
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		cfg.Kafka.Brokers = brokers
	}
	envStr("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	envStr("KAFKA_TOPIC", &cfg.Kafka.Topic)

	envStr("CUSTOMER_API_BASE_URL", &cfg.CustomerAPI.BaseURL)
	envDuration("CUSTOMER_API_TIMEOUT", &cfg.CustomerAPI.Timeout)
	envInt("CUSTOMER_API_MAX_ATTEMPTS", &cfg.CustomerAPI.MaxAttempts)
}

func envStr(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func envInt(name string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(name string, dst *float64) {
	if v := os.Getenv(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func envBool(name string, dst *bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envDuration(name string, dst *time.Duration) {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
