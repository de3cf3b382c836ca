package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fala-hotels/fala-api/internal/pkg/metrics"
)

// Metrics records request counts and durations per route pattern.
// Uses the chi route pattern rather than the raw path so IDs do not blow up
// label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}

		metrics.ObserveHTTP(r.Method, pattern, strconv.Itoa(wrapped.statusCode), time.Since(start))
	})
}
