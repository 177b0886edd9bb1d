package redis_counter_driver

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrementScript starts the TTL on the first increment of a window so the
// window is fixed, and does both steps atomically.
var incrementScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// RedisCounterDriver shares fixed-window counters across instances.
type RedisCounterDriver struct {
	client *redis.Client
	prefix string
}

// NewRedisCounterDriverWithURL creates a driver from a redis:// URL.
func NewRedisCounterDriverWithURL(url string) (*RedisCounterDriver, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisCounterDriver(redis.NewClient(opts)), nil
}

func NewRedisCounterDriver(client *redis.Client) *RedisCounterDriver {
	return &RedisCounterDriver{client: client, prefix: "feedcore:ratelimit:"}
}

// Ping verifies the connection.
func (d *RedisCounterDriver) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (d *RedisCounterDriver) Close() error {
	return d.client.Close()
}

func (d *RedisCounterDriver) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	ms := window.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	n, err := incrementScript.Run(ctx, d.client, []string{d.prefix + key}, ms).Int64()
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", key, err)
	}
	return n, nil
}
