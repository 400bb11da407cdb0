package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics("test")

	m.RecordHealthCheck("ok")
	m.RecordHealthCheck("ok")
	m.RecordHealthCheck("not_found")
	m.RecordIssue("high", "CTR (%)")
	m.RecordCacheLookup("hit")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HealthChecks.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HealthChecks.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IssuesDetected.WithLabelValues("high", "CTR (%)")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("test")
	m.ObserveFetch("ok", time.Now())
	m.RecordHealthCheck("ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_health_checks_total")
	assert.Contains(t, rec.Body.String(), "test_record_fetch_duration_seconds")
}

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics("test")
		NewMetrics("test")
	})
}
