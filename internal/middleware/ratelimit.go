package middleware

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when redis cannot be reached.
type FailPolicy int

const (
	// FailOpen lets the request through unmetered.
	FailOpen FailPolicy = iota
	// FailClosed rejects it with 503.
	FailClosed
)

var errNoLimiterStore = errors.New("rate limit store not configured")

// usage is a caller's standing in the current fixed window.
type usage struct {
	count int64
	reset time.Duration
}

// limitsEnforced is false for local, test and load-test environments.
func limitsEnforced() bool {
	switch os.Getenv("APP_ENV") {
	case "", "test", "development", "stress":
		return false
	}
	return true
}

// consume counts one hit against rl:<resource>:<id>. The window starts on the
// first hit; a key that somehow lost its expiry gets a fresh one.
func consume(ctx context.Context, rdb *redis.Client, resource, id string, window time.Duration) (usage, error) {
	if rdb == nil {
		return usage{}, errNoLimiterStore
	}
	key := "rl:" + resource + ":" + id

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	if _, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		ttl = p.TTL(ctx, key)
		return nil
	}); err != nil {
		return usage{}, err
	}

	u := usage{count: incr.Val(), reset: ttl.Val()}
	if u.reset < 0 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return usage{}, err
		}
		u.reset = window
	}
	return u, nil
}

// CheckRateLimit reports whether id may use resource once more within window.
// Limits are not enforced when APP_ENV is unset, "test", "development" or "stress".
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if !limitsEnforced() {
		return true, nil
	}
	u, err := consume(ctx, rdb, resource, id, window)
	if err != nil {
		return false, err
	}
	return u.count <= int64(limit), nil
}

// RateLimit allows limit requests per window, keyed by the authenticated
// caller or else the remote IP. The optional name groups routes under one
// counter; by default each path is counted separately.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, name...)
}

// RateLimitWithPolicy is RateLimit with an explicit failure policy.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limitsEnforced() {
			return c.Next()
		}

		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}
		caller := "ip:" + c.IP()
		if uid, ok := c.Locals("userID").(interface{ String() string }); ok {
			caller = "user:" + uid.String()
		}

		u, err := consume(c.UserContext(), rdb, resource, caller, window)
		if err != nil {
			if policy == FailOpen {
				return c.Next()
			}
			Logger.WarnContext(c.UserContext(), "rate limiter unavailable, rejecting request",
				slog.String("resource", resource), slog.String("error", err.Error()))
			return fiber.NewError(fiber.StatusServiceUnavailable, "rate limit unavailable")
		}

		remaining := int64(limit) - u.count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if u.count > int64(limit) {
			RateLimited.WithLabelValues(resource).Inc()
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(u.reset.Round(time.Second)/time.Second)))
			return &models.AppError{
				Status:  fiber.StatusTooManyRequests,
				Code:    "RATE_LIMITED",
				Message: "rate limit exceeded",
			}
		}
		return c.Next()
	}
}
