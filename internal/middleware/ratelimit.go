package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/cache"
)

// WriteLimiter checks the per-subject write budget.
type WriteLimiter interface {
	CheckWriteRateLimit(ctx context.Context, subjectID int64, ratePerMinute, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for write rate limiting.
type RateLimitConfig struct {
	Logger    *slog.Logger
	Limiter   WriteLimiter
	Enabled   bool
	PerMinute int
	Burst     int
}

// RateLimitWrite returns a middleware that rate limits mutating requests per
// authenticated subject. It must run after Auth; unauthenticated requests
// pass through untouched and fail authorization downstream instead.
func RateLimitWrite(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			sub := auth.SubjectFromContext(r.Context())
			if sub == nil {
				next.ServeHTTP(w, r)
				return
			}

			result, err := cfg.Limiter.CheckWriteRateLimit(r.Context(), sub.UserID, cfg.PerMinute, cfg.Burst)
			if err != nil || result.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			cfg.Logger.Warn("write rate limit exceeded",
				slog.Int64("user_id", sub.UserID),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too many write requests","code":"RATE_LIMITED"}`))
		})
	}
}
