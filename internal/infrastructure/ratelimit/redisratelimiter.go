package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// allowScript checks every window before recording the request, so denied
// requests are never counted. ARGV: now, member, then per key its cutoff,
// limit and ttl in milliseconds.
var allowScript = redis.NewScript(`
for i, key in ipairs(KEYS) do
  redis.call('ZREMRANGEBYSCORE', key, '-inf', ARGV[3 * i])
  if redis.call('ZCARD', key) >= tonumber(ARGV[3 * i + 1]) then
    return 0
  end
end
for i, key in ipairs(KEYS) do
  redis.call('ZADD', key, ARGV[1], ARGV[2])
  redis.call('PEXPIRE', key, ARGV[3 * i + 2])
end
return 1
`)

type window struct {
	name     string
	duration time.Duration
}

var (
	minuteWindow = window{"minute", time.Minute}
	hourWindow   = window{"hour", time.Hour}
)

// RedisRateLimiter keeps one sorted set of request timestamps (microseconds)
// per key and window.
type RedisRateLimiter struct {
	client *redis.Client
	now    func() time.Time
	seq    atomic.Uint64
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, now: time.Now}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	now := l.now()

	var keys []string
	args := []interface{}{
		now.UnixMicro(),
		fmt.Sprintf("%d-%d", now.UnixMicro(), l.seq.Add(1)),
	}
	for _, w := range []struct {
		window
		limit int
	}{
		{minuteWindow, config.RequestsPerMinute},
		{hourWindow, config.RequestsPerHour},
	} {
		if w.limit <= 0 {
			continue
		}
		keys = append(keys, windowKey(key, w.window))
		args = append(args, cutoff(now, w.duration), w.limit, (w.duration + time.Minute).Milliseconds())
	}
	if len(keys) == 0 {
		return true, nil
	}

	allowed, err := allowScript.Run(ctx, l.client, keys, args...).Int()
	if err != nil {
		return false, fmt.Errorf("failed to evaluate rate limit: %w", err)
	}
	return allowed == 1, nil
}

// Used counts the requests recorded for key within the trailing window.
func (l *RedisRateLimiter) Used(ctx context.Context, key string, d time.Duration) (int64, error) {
	w := minuteWindow
	if d == hourWindow.duration {
		w = hourWindow
	}

	n, err := l.client.ZCount(ctx, windowKey(key, w), "("+cutoff(l.now(), w.duration), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read rate limit usage: %w", err)
	}
	return n, nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, windowKey(key, minuteWindow), windowKey(key, hourWindow)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit for %s: %w", key, err)
	}
	return nil
}

func cutoff(now time.Time, d time.Duration) string {
	return strconv.FormatInt(now.Add(-d).UnixMicro(), 10)
}

func windowKey(key string, w window) string {
	return fmt.Sprintf("ratelimit:%s:%s", key, w.name)
}
