package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/agrovia/agroexport-web/api/responses"
	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
	"github.com/agrovia/agroexport-web/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimit throttles a traffic surface per client IP. Login and license
// endpoints sit behind this so credential guessing burns out quickly.
func RateLimit(name string, limit int64, window time.Duration, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || limit <= 0 || window <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			scope := name + ":" + clientIP(r)
			allowed, count, err := store.FixedWindowAllow(ctx, scope, limit, window)
			if err != nil {
				// Throttling is best-effort; an unavailable counter
				// should not take the login page down with it.
				if logg != nil {
					logg.Error(ctx, "rate_limit.check", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{"scope": name, "count": count})
					logg.Warn(ctx, "rate_limit.exceeded")
				}
				if wantsJSON(r) {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again shortly"))
					return
				}
				http.Error(w, "Too many attempts. Please wait a moment and try again.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
