package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/noreyni/webhook-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketTTL(t *testing.T) {
	assert.Equal(t, 4*time.Second, bucketTTL(10, 20))
	assert.Equal(t, time.Second, bucketTTL(100, 1))
}

func TestCastHelpers(t *testing.T) {
	assert.Equal(t, int64(1), castToInt(int64(1)))
	assert.Equal(t, int64(2), castToInt(2))
	assert.Equal(t, int64(0), castToInt("nope"))

	assert.Equal(t, 1.5, castToFloat(1.5))
	assert.Equal(t, 3.0, castToFloat(int64(3)))
	assert.Equal(t, 12.25, castToFloat("12.25"))
	assert.Equal(t, 0.0, castToFloat("garbage"))
}

func TestRequestLimiterDisabledWithoutRedis(t *testing.T) {
	limiter := NewRequestLimiter(config.Config{RateLimitRPS: 10, RateLimitBurst: 20}, nil)
	assert.False(t, limiter.Enabled())

	res, err := limiter.Allow(context.Background(), "10.0.0.1", "/api/projects")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestNewClientNilWithoutAddr(t *testing.T) {
	assert.Nil(t, NewClient(config.Config{}))
}
