package ratelimit

import (
	"context"
	"fmt"
	"strings"

	"github.com/noreyni/webhook-api/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyRequest = "ratelimit:req:%s:%s"

// RequestLimiter throttles write requests per client IP and route. With no
// Redis address configured the limiter is disabled and every request passes.
type RequestLimiter struct {
	enabled bool

	bucket *TokenBucket
	locker *Locker

	rate  float64
	burst int
}

func NewClient(cfg config.Config) *redis.Client {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}

func NewRequestLimiter(cfg config.Config, client *redis.Client) *RequestLimiter {
	if client == nil || cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return &RequestLimiter{}
	}
	return &RequestLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
		rate:    cfg.RateLimitRPS,
		burst:   cfg.RateLimitBurst,
	}
}

func (l *RequestLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *RequestLimiter) Allow(ctx context.Context, clientIP, route string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	key := fmt.Sprintf(keyRequest, strings.TrimSpace(clientIP), strings.TrimSpace(route))
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}

// Lock exposes the shared locker for background jobs that must run on a
// single instance at a time.
func (l *RequestLimiter) Lock() *Locker {
	if l == nil {
		return nil
	}
	return l.locker
}
