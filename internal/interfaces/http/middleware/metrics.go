package middleware

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts, latency, and the in-flight gauge.  The path
// label uses the chi route pattern rather than the raw URL so cardinality
// stays bounded.
func Metrics(collector prometheus.MetricsCollector) func(http.Handler) http.Handler {
	var inFlight atomic.Int64
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			collector.SetGauge(prometheus.MetricHTTPInFlight, float64(inFlight.Add(1)), nil)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			collector.SetGauge(prometheus.MetricHTTPInFlight, float64(inFlight.Add(-1)), nil)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			collector.IncCounter(prometheus.MetricHTTPRequests, map[string]string{
				prometheus.LabelMethod: r.Method,
				prometheus.LabelPath:   pattern,
				prometheus.LabelCode:   strconv.Itoa(ww.Status()),
			})
			collector.ObserveHistogram(prometheus.MetricHTTPDuration,
				time.Since(start).Seconds(), map[string]string{
					prometheus.LabelMethod: r.Method,
					prometheus.LabelPath:   pattern,
				})
		})
	}
}
