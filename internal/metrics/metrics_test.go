package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub/auth-service/internal/auth"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveAttempt("password", auth.Authenticated)
	m.ObserveAttempt("password", auth.Rejected)
	m.ObserveAttempt("password", auth.Rejected)
	m.ObserveSession("google")

	assert.InDelta(t, 1, testutil.ToFloat64(m.attempts.WithLabelValues("password", "authenticated")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.attempts.WithLabelValues("password", "rejected")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.sessions.WithLabelValues("google")), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveAttempt("discord", auth.Failed)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `auth_attempts_total{method="discord",outcome="error"} 1`)
}

func TestMetrics_InstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveSession("password")
	assert.InDelta(t, 0, testutil.ToFloat64(b.sessions.WithLabelValues("password")), 0)
}
