package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Middleware records request counts and latencies. Shaped to fit
// mux's Router.Use.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/metrics" {
			// Skip collecting metrics from the metrics endpoint itself
			next.ServeHTTP(w, r)
			return
		}

		HttpRequestsTotal.WithLabelValues(path).Inc()

		timer := prometheus.NewTimer(HttpRequestDuration.WithLabelValues(path))
		next.ServeHTTP(w, r)
		timer.ObserveDuration()
	})
}
