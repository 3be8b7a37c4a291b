package middleware

import (
	"net/http"
	"strconv"
	"time"

	"arcade-leaderboard/internal/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics records latency and count per matched chi route pattern. Unmatched paths share one label.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			code := strconv.Itoa(ww.Status())
			m.RequestLatency.WithLabelValues(route, r.Method, code).Observe(time.Since(start).Seconds())
			m.Requests.WithLabelValues(route, r.Method, code).Inc()
		})
	}
}
