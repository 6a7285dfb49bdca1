package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/pkg/metrics"
)

// Metrics middleware records HTTP metrics
func (m *Middleware) Metrics(serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip metrics endpoint to avoid recursion
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			metrics.HttpRequestsInFlight.WithLabelValues(serviceName).Inc()
			defer metrics.HttpRequestsInFlight.WithLabelValues(serviceName).Dec()

			rw := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			metrics.RecordHTTPMetrics(serviceName, r.Method, m.routeLabel(r.URL.Path), rw.Status(), duration)
		})
	}
}

// routeLabel keeps the path label bounded: only registered API routes are reported
// as is, everything else collapses into a wildcard label.
func (m *Middleware) routeLabel(path string) string {
	dashboard := m.gate.DashboardPath()
	switch {
	case path == "/health", path == "/", path == m.gate.LoginPath():
		return path
	case strings.HasPrefix(path, dashboard+"/api/"):
		if _, ok := m.apiRoutes[path]; ok {
			return path
		}
		return dashboard + "/api/*"
	case m.gate.IsProtected(path):
		return dashboard + "/*"
	case strings.HasPrefix(path, "/swagger/"):
		return "/swagger/*"
	default:
		return "/*"
	}
}
