package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module provides application configuration.
var Module = fx.Module("config", fx.Provide(Load))

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64

	RedisAddr      string
	RateLimitRPS   float64
	RateLimitBurst int

	SweepInterval time.Duration

	// Placeholder principal used until a real auth boundary exists. The
	// resolver that consumes these is an injected collaborator, so swapping
	// in real principal extraction touches nothing below the server layer.
	PrincipalID    string
	PrincipalEmail string
	PrincipalRole  string
}

// Load loads configuration from environment variables, a .env file, and an
// optional config.yaml overlay.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:          getenv("APP_SERVICE", "webhook-api"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      getenv("ENVIRONMENT", "development"),
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		OTLPEndpoint:     getenv("OTLP_ENDPOINT", "localhost:4317"),
		MongoURI:         getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getenv("MONGODB_DATABASE", "webhook_api"),
		MongoMaxPoolSize: getenvUint64("MONGODB_MAX_POOL_SIZE", 100),
		RedisAddr:        strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RateLimitRPS:     getenvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:   getenvInt("RATE_LIMIT_BURST", 20),
		SweepInterval:    getenvDuration("INVITATION_SWEEP_INTERVAL", time.Hour),
		PrincipalID:      getenv("PRINCIPAL_ID", "000000000000000000000001"),
		PrincipalEmail:   getenv("PRINCIPAL_EMAIL", "system@webhook.local"),
		PrincipalRole:    getenv("PRINCIPAL_ROLE", "MEMBER"),
	}

	return applyFileOverrides(cfg)
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvUint64(key string, def uint64) uint64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
