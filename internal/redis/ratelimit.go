package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Key pattern: ratelimit:{ip}:{scope}, TTL = window.

type Scope string

const (
	ScopeAuth    Scope = "auth"
	ScopeContact Scope = "contact"
)

type RateLimitConfig struct {
	AuthLimit     int // register + login attempts per window
	AuthWindow    time.Duration
	ContactLimit  int // contact submissions per window
	ContactWindow time.Duration
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		AuthLimit:     10,
		AuthWindow:    time.Minute,
		ContactLimit:  5,
		ContactWindow: time.Minute,
	}
}

type RateLimiter struct {
	client *goredis.Client
	config RateLimitConfig
}

type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
	Limit     int
}

func NewRateLimiter(client *goredis.Client, config RateLimitConfig) *RateLimiter {
	defaults := DefaultRateLimitConfig()
	if config.AuthLimit <= 0 {
		config.AuthLimit = defaults.AuthLimit
	}
	if config.AuthWindow <= 0 {
		config.AuthWindow = defaults.AuthWindow
	}
	if config.ContactLimit <= 0 {
		config.ContactLimit = defaults.ContactLimit
	}
	if config.ContactWindow <= 0 {
		config.ContactWindow = defaults.ContactWindow
	}
	return &RateLimiter{
		client: client,
		config: config,
	}
}

func (r *RateLimiter) limitFor(scope Scope) (int, time.Duration, error) {
	switch scope {
	case ScopeAuth:
		return r.config.AuthLimit, r.config.AuthWindow, nil
	case ScopeContact:
		return r.config.ContactLimit, r.config.ContactWindow, nil
	default:
		return 0, 0, fmt.Errorf("unknown rate limit scope %q", scope)
	}
}

func key(scope Scope, id string) string {
	return fmt.Sprintf("ratelimit:%s:%s", id, scope)
}

// Allow counts one attempt for id in scope and reports whether it fits the window.
func (r *RateLimiter) Allow(ctx context.Context, scope Scope, id string) (*RateLimitResult, error) {
	limit, window, err := r.limitFor(scope)
	if err != nil {
		return nil, err
	}
	return r.checkLimit(ctx, key(scope, id), limit, window)
}

var fixedWindowScript = goredis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = redis.call('GET', key)
	if current == false then
		current = 0
	else
		current = tonumber(current)
	end

	local ttl = redis.call('TTL', key)
	if ttl < 0 then
		ttl = window
	end

	if current < limit then
		redis.call('INCR', key)
		if ttl == window then
			redis.call('EXPIRE', key, window)
		end
		return {1, limit - current - 1, ttl}
	else
		return {0, 0, ttl}
	end
`)

func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	result, err := fixedWindowScript.Run(ctx, r.client, []string{key}, limit, int(window.Seconds())).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) < 3 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	allowed, ok1 := values[0].(int64)
	remaining, ok2 := values[1].(int64)
	resetIn, ok3 := values[2].(int64)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("unexpected rate limit result types")
	}

	return &RateLimitResult{
		Allowed:   allowed == 1,
		Remaining: int(remaining),
		ResetIn:   time.Duration(resetIn) * time.Second,
		Limit:     limit,
	}, nil
}
