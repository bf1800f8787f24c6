package middleware

import (
	"net/http"

	appcontext "github.com/kimhour/StudentClearance/internal/app_context"
	ratelimiter "github.com/kimhour/StudentClearance/internal/rate_limiter"
	"github.com/kimhour/StudentClearance/internal/util"
	"github.com/gin-gonic/gin"
)

type Middleware struct {
	rateLimiter *ratelimiter.FixedWindowRateLimiter
	app         *appcontext.Application
}

func NewMiddleware(app *appcontext.Application,
	rateLimiter *ratelimiter.FixedWindowRateLimiter,
) *Middleware {
	return &Middleware{app: app, rateLimiter: rateLimiter}
}

func (m Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	allowed, retryAfter := m.rateLimiter.Allow(ctx.ClientIP())
	if !allowed {
		ctx.Header("Retry-After", retryAfter.String())
		util.ResponseFailed(ctx, http.StatusTooManyRequests, "Too many requests", nil, nil)
		return
	}

	ctx.Next()
}
