package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c MetricsCollector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return string(body)
}

func TestAppCollector_EmitsRegisteredMetrics(t *testing.T) {
	c := NewAppCollector("helios_test")

	c.IncCounter(MetricProjectionRuns, map[string]string{LabelStatus: "ok"})
	c.AddCounter(MetricExportBytes, 2048, map[string]string{LabelFormat: "csv"})
	c.SetGauge(MetricHTTPInFlight, 3, nil)
	c.ObserveHistogram(MetricProjectionDuration, 0.002, nil)

	body := scrape(t, c)
	assert.Contains(t, body, `helios_test_projection_runs_total{status="ok"} 1`)
	assert.Contains(t, body, `helios_test_export_bytes_total{format="csv"} 2048`)
	assert.Contains(t, body, `helios_test_http_requests_in_flight 3`)
	assert.Contains(t, body, "helios_test_projection_duration_seconds_count 1")
}

func TestCollector_UnknownMetricIsSilentlyDropped(t *testing.T) {
	c := NewAppCollector("helios_test")

	assert.NotPanics(t, func() {
		c.IncCounter("never_registered", nil)
		c.SetGauge("never_registered", 1, nil)
		c.ObserveHistogram("never_registered", 1, nil)
	})
}

func TestTimer_RecordsIntoHistogram(t *testing.T) {
	c := NewAppCollector("helios_test")

	timer := NewTimer(c, MetricProjectionDuration, nil)
	time.Sleep(time.Millisecond)
	d := timer.Stop()

	assert.Greater(t, d, time.Duration(0))
	assert.Contains(t, scrape(t, c), "helios_test_projection_duration_seconds_count 1")
}

func TestNoopCollector(t *testing.T) {
	c := NewNoopCollector()

	assert.NotPanics(t, func() {
		c.IncCounter(MetricProjectionRuns, nil)
		c.ObserveHistogram(MetricSolverIterations, 12, nil)
	})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
