package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucketScript refills the bucket stored under KEYS[1] and takes one
// token from it. It returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 and refill_tokens > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + (intervals * refill_tokens))
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

// RateLimiter is a token bucket per client key kept in Redis, so that every
// API instance draws from the same bucket.
type RateLimiter struct {
	cfg       RateLimitConfig
	rdb       redis.Scripter
	logger    *slog.Logger
	keyFunc   func(r *http.Request) string
	onLimited func(w http.ResponseWriter, r *http.Request, retryAfter time.Duration)
	now       func() time.Time
}

func NewRateLimiter(
	cfg RateLimitConfig,
	rdb redis.Scripter,
	logger *slog.Logger,
	keyFunc func(r *http.Request) string,
	onLimited func(w http.ResponseWriter, r *http.Request, retryAfter time.Duration)) *RateLimiter {

	return &RateLimiter{
		cfg:       cfg,
		rdb:       rdb,
		logger:    logger,
		keyFunc:   keyFunc,
		onLimited: onLimited,
		now:       time.Now,
	}
}

func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	if l == nil || !l.cfg.Enabled || l.rdb == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("%s:%s", l.cfg.Prefix, l.keyFunc(r))

		allowed, remaining, retryAfter, err := l.take(r, key)
		if err != nil {
			// the limiter fails open; bookings must not depend on Redis being up
			l.logger.Warn("rate limiter unavailable", "key", key, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Capacity))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			l.onLimited(w, r, retryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) take(r *http.Request, key string) (bool, int64, time.Duration, error) {
	args := []any{
		l.now().UnixMilli(),
		l.cfg.Capacity,
		l.cfg.RefillTokens,
		l.cfg.RefillInterval.Milliseconds(),
		int64(l.cfg.TTL / time.Second),
	}

	vals, err := tokenBucketScript.Run(r.Context(), l.rdb, []string{key}, args...).Int64Slice()
	if err != nil {
		return false, 0, 0, err
	}

	if len(vals) != 3 {
		return false, 0, 0, fmt.Errorf("unexpected rate limiter result: %v", vals)
	}

	return vals[0] == 1, vals[1], time.Duration(vals[2]) * time.Millisecond, nil
}
