package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jagan25-mj/startup-connect-hub/internal/telemetry"
)

// RequestMetrics records one measurement per served request: count,
// duration and 5xx errors, dimensioned by method, route pattern and status.
func RequestMetrics(metrics *telemetry.ServerMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			// The route pattern is only populated once chi has matched.
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			durationMs := float64(time.Since(start)) / float64(time.Millisecond)
			metrics.RecordRequest(r.Context(), r.Method, route, status, durationMs)
		})
	}
}
