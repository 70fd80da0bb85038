package middleware

import (
	"context"
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds handler execution time.
const DefaultRequestTimeout = 30 * time.Second

// Timeout enforces a deadline on each request. The handler sees a context
// that expires with the deadline, and slow responses are cut off with a 503.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			handler := http.TimeoutHandler(next, timeout, "Request Timeout")
			handler.ServeHTTP(w, r)
		})
	}
}
