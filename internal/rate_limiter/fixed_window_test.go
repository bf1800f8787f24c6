package ratelimiter

import (
	"testing"
	"time"

	"github.com/kimhour/StudentClearance/internal/config"
)

func TestFixedWindowLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 2,
		TimeFrame:            time.Minute,
		Enabled:              true,
	}, nil)

	if ok, _ := rl.Allow("1.2.3.4"); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _ := rl.Allow("1.2.3.4"); !ok {
		t.Fatal("second request should be allowed")
	}

	ok, retryAfter := rl.Allow("1.2.3.4")
	if ok {
		t.Fatal("third request should be rejected")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("unexpected retry-after: %s", retryAfter)
	}

	// other clients have their own window
	if ok, _ := rl.Allow("5.6.7.8"); !ok {
		t.Error("different client should be allowed")
	}
}

func TestFixedWindowLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 1,
		TimeFrame:            time.Minute,
		Enabled:              false,
	}, nil)

	for i := 0; i < 10; i++ {
		if ok, _ := rl.Allow("1.2.3.4"); !ok {
			t.Fatal("disabled limiter must allow everything")
		}
	}
}
