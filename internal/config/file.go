package config

import (
	"strings"

	"github.com/spf13/viper"
)

// applyFileOverrides layers an optional config.yaml on top of the
// environment-derived configuration. A missing file is not an error.
func applyFileOverrides(cfg Config) Config {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/webhook-api")
	v.AddConfigPath(".")

	v.SetEnvPrefix("WEBHOOK_API")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg
		}
		return cfg
	}

	if addr := strings.TrimSpace(v.GetString("server.addr")); addr != "" {
		cfg.HTTPAddr = addr
	}
	if uri := strings.TrimSpace(v.GetString("mongodb.uri")); uri != "" {
		cfg.MongoURI = uri
	}
	if name := strings.TrimSpace(v.GetString("mongodb.database")); name != "" {
		cfg.MongoDatabase = name
	}
	if pool := v.GetUint64("mongodb.max_pool_size"); pool > 0 {
		cfg.MongoMaxPoolSize = pool
	}
	if addr := strings.TrimSpace(v.GetString("redis.addr")); addr != "" {
		cfg.RedisAddr = addr
	}
	if rps := v.GetFloat64("ratelimit.rps"); rps > 0 {
		cfg.RateLimitRPS = rps
	}
	if burst := v.GetInt("ratelimit.burst"); burst > 0 {
		cfg.RateLimitBurst = burst
	}

	return cfg
}
