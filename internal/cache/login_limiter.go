package cache

import (
	"context"
	"fmt"
	"time"
)

// LoginLimiter throttles failed admin login attempts per client IP.
// The window lives in Redis so restarts and multiple instances share it.
type LoginLimiter struct {
	redis  *RedisClient
	limit  int64
	window time.Duration
}

// NewLoginLimiter creates a limiter allowing 5 attempts per minute per IP.
func NewLoginLimiter(redis *RedisClient) *LoginLimiter {
	return &LoginLimiter{
		redis:  redis,
		limit:  5,
		window: time.Minute,
	}
}

func (l *LoginLimiter) key(ip string) string {
	return fmt.Sprintf("login:attempts:%s", ip)
}

// Allow records an attempt for ip and reports whether it is within the limit.
// Redis errors fail open: an unreachable limiter must not lock admins out.
func (l *LoginLimiter) Allow(ctx context.Context, ip string) bool {
	n, err := l.redis.Incr(ctx, l.key(ip), l.window)
	if err != nil {
		return true
	}
	return n <= l.limit
}

// Reset clears the attempt counter for ip after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, ip string) {
	_ = l.redis.Delete(ctx, l.key(ip))
}
