package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsAreIsolatedPerInstance(t *testing.T) {
	first := NewMetrics()
	second := NewMetrics()

	first.RecordLogin(LoginSucceeded)
	first.RecordLogin(LoginRejected)
	first.RecordLogin(LoginRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(first.loginsTotal.WithLabelValues(LoginRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.activeSessions))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.activeSessions))

	first.RecordLogout()
	assert.Equal(t, 0.0, testutil.ToFloat64(first.activeSessions))
}

func TestRecordMoveAndRequest(t *testing.T) {
	m := NewMetrics()
	m.RecordMove("clients", true)
	m.RecordMove("clients", false)
	m.RecordRequest("/pipeline", "GET", 200, 5*time.Millisecond)
	m.RecordError("/auth/login", "POST", "INVALID_CREDENTIALS")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.movesTotal.WithLabelValues("clients", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/pipeline", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("/auth/login", "POST", "INVALID_CREDENTIALS")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordLogin(LoginSucceeded)
		m.RecordMove("leads", true)
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		_ = m.Handler()
	})
}
