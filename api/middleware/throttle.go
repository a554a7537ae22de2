package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/westcoasttreez/storefront-backend/api/responses"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
	"github.com/westcoasttreez/storefront-backend/pkg/logger"
)

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Throttle applies a per-session fixed-window limit backed by Redis. A limiter
// outage fails open.
func Throttle(scope string, limit int64, window time.Duration, limiter rateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if limiter == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := scope + ":" + SessionIDFromContext(ctx)
			allowed, count, err := limiter.FixedWindowAllow(ctx, key, limit, window)
			if err != nil {
				if logg != nil {
					logg.Error(ctx, "rate limiter unavailable", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "request_count", count), "rate limit exceeded")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many requests, slow down"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
