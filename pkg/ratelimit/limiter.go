package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/config"
)

// IdentityType classifies the caller for rule selection
type IdentityType int

const (
	IdentityAnonymous IdentityType = iota
	IdentityAuthenticated
)

// Rule is the effective limit applied to one endpoint/identity pair
type Rule struct {
	Limit  int
	Burst  int
	Window time.Duration
}

// Result is the outcome of a rate limit check
type Result struct {
	Allowed      bool
	Remaining    int
	RetryAfter   time.Duration
	Limit        int
	Window       time.Duration
	ResetAfter   time.Duration
	IdentityKey  string
	EndpointKey  string
	IdentityType IdentityType
}

// Counter script shared by all limiter instances. Fixed window with burst
// headroom; the window TTL is set on first increment.
const limiterScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local window_ms = tonumber(ARGV[3])

local count = redis.call("INCR", key)
if count == 1 then
	redis.call("PEXPIRE", key, window_ms)
end

local ttl = redis.call("PTTL", key)
if ttl < 0 then
	redis.call("PEXPIRE", key, window_ms)
	ttl = window_ms
end

local capacity = limit + burst
local allowed = 0
if count <= capacity then
	allowed = 1
end

local remaining = capacity - count
if remaining < 0 then
	remaining = 0
end

local retry_after = 0
if allowed == 0 then
	retry_after = ttl
end

return {allowed, remaining, retry_after, ttl}
`

// Limiter enforces per-endpoint request limits backed by Redis
type Limiter struct {
	client redis.Cmdable
	script *redis.Script
	cfg    config.RateLimitConfig
}

// NewLimiter creates a new rate limiter
func NewLimiter(client redis.Cmdable, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		client: client,
		script: redis.NewScript(limiterScript),
		cfg:    cfg,
	}
}

// RuleFor resolves the effective rule for an endpoint and identity type.
// Endpoint overrides take precedence over the config-wide defaults; a
// non-positive override limit falls back to the default.
func (l *Limiter) RuleFor(endpoint string, identity IdentityType) Rule {
	rule := Rule{Window: l.cfg.Window()}

	if identity == IdentityAuthenticated {
		rule.Limit = l.cfg.DefaultLimit
		rule.Burst = l.cfg.DefaultBurst
	} else {
		rule.Limit = l.cfg.AnonymousLimit
		rule.Burst = l.cfg.AnonymousBurst
	}

	if override, ok := l.cfg.EndpointOverrides[endpoint]; ok {
		if override.WindowSeconds > 0 {
			rule.Window = time.Duration(override.WindowSeconds) * time.Second
		}
		if identity == IdentityAuthenticated {
			if override.AuthenticatedLimit > 0 {
				rule.Limit = override.AuthenticatedLimit
			}
			rule.Burst = override.AuthenticatedBurst
		} else {
			if override.AnonymousLimit > 0 {
				rule.Limit = override.AnonymousLimit
			}
			rule.Burst = override.AnonymousBurst
		}
	}

	if rule.Burst < 0 {
		rule.Burst = 0
	}

	return rule
}

// Allow checks whether the request identified by endpoint and identity may
// proceed under the given rule. A disabled limiter and non-positive limits
// always allow.
func (l *Limiter) Allow(ctx context.Context, endpoint, identity string, rule Rule, identityType IdentityType) (Result, error) {
	result := Result{
		Limit:        rule.Limit,
		Window:       rule.Window,
		IdentityKey:  identity,
		EndpointKey:  endpoint,
		IdentityType: identityType,
	}

	if !l.cfg.Enabled || rule.Limit <= 0 {
		result.Allowed = true
		if rule.Limit > 0 {
			result.Remaining = rule.Limit
		}
		return result, nil
	}

	window := rule.Window
	if window <= 0 {
		window = l.cfg.Window()
	}
	result.Window = window

	key := fmt.Sprintf("%s:%s:%s", l.cfg.RedisPrefix, endpoint, identity)

	values, err := l.script.Run(ctx, l.client,
		[]string{key},
		rule.Limit, rule.Burst, window.Milliseconds(),
	).Slice()
	if err != nil {
		return result, err
	}
	if len(values) != 4 {
		return result, fmt.Errorf("unexpected rate limit script reply: %v", values)
	}

	result.Allowed = toInt(values[0]) == 1
	result.Remaining = toInt(values[1])
	result.RetryAfter = time.Duration(toInt(values[2])) * time.Millisecond
	result.ResetAfter = time.Duration(toInt(values[3])) * time.Millisecond

	return result, nil
}

func toInt(v interface{}) int {
	switch value := v.(type) {
	case int64:
		return int(value)
	case int:
		return value
	case float64:
		return int(value)
	case string:
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
