package ratelimiter

import (
	"sync"
	"time"

	"github.com/kimhour/StudentClearance/internal/config"
	"go.uber.org/zap"
)

// FixedWindowRateLimiter counts requests per client within a fixed time frame.
// The counter of a client resets when its window expires.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*windowCounter
	cfg     config.RateLimiterConfig
	logger  *zap.SugaredLogger
}

type windowCounter struct {
	count       int
	windowStart time.Time
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*windowCounter),
		cfg:     cfg,
		logger:  logger,
	}
}

// Allow reports whether the client may proceed, and the wait until the current
// window resets when it may not.
func (rl *FixedWindowRateLimiter) Allow(clientKey string) (bool, time.Duration) {
	if !rl.cfg.Enabled {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	counter, exists := rl.clients[clientKey]
	if !exists || now.Sub(counter.windowStart) >= rl.cfg.TimeFrame {
		rl.clients[clientKey] = &windowCounter{count: 1, windowStart: now}
		return true, 0
	}

	if counter.count >= rl.cfg.RequestsPerTimeFrame {
		retryAfter := rl.cfg.TimeFrame - now.Sub(counter.windowStart)
		rl.logger.Debugf("Rate limit exceeded for client %s, retry after %s", clientKey, retryAfter)
		return false, retryAfter
	}

	counter.count++
	return true, 0
}
