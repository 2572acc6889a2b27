// Package cache holds the Redis client and the webhook dedupe guard.
package cache

import (
	"context"
	"time"

	"rental-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis. Returns nil when the connection cannot
// be established; callers degrade gracefully by skipping dedupe.
func NewRedisClient(config utils.RedisConfig, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, webhook dedupe disabled", zap.Error(err))
		return nil
	}

	return client
}

// Dedupe records webhook deliveries so retried events can short-circuit.
// It is an optimization only: the confirm transition stays idempotent even
// when every delivery is processed.
type Dedupe struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewDedupe(client *redis.Client, ttl time.Duration, log *zap.Logger) *Dedupe {
	return &Dedupe{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("component", "dedupe")),
	}
}

// Seen reports whether key was recorded by a fully processed delivery.
// Without a Redis connection, or on any Redis error, nothing counts as
// seen so no delivery is ever dropped by mistake.
func (d *Dedupe) Seen(ctx context.Context, key string) bool {
	if d == nil || d.client == nil {
		return false
	}

	n, err := d.client.Exists(ctx, key).Result()
	if err != nil {
		d.log.Warn("Dedupe lookup failed, processing anyway", zap.Error(err), zap.String("key", key))
		return false
	}

	return n > 0
}

// MarkDelivered records a fully processed delivery. Callers record only
// after the state transition succeeded, so a skipped retry can never hide
// an unapplied confirm. A failed write just means the next retry does
// redundant idempotent work.
func (d *Dedupe) MarkDelivered(ctx context.Context, key string) {
	if d == nil || d.client == nil {
		return
	}

	if err := d.client.Set(ctx, key, 1, d.ttl).Err(); err != nil {
		d.log.Warn("Dedupe record failed", zap.Error(err), zap.String("key", key))
	}
}
