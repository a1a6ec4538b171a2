package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/metrics"
	"github.com/xiebiao/bookreview/pkg/response"
)

// Limiter 限流器，由redis.FixedWindowLimiter实现
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit 按客户端IP限流
// Redis不可用时拒绝请求
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.WarnContext(c.Request.Context(), "rate limiter unavailable", "error", err)
		}
		if err != nil || !allowed {
			metrics.IncCounterVec(metrics.RateLimitedTotal, map[string]string{"route": c.FullPath()})
			response.Abort(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
