package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不应panic（重复注册）

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, ReviewOperationsTotal)
	assert.NotNil(t, CircuitBreakerState)
}

func TestCounterVec(t *testing.T) {
	InitMetrics()
	labels := map[string]string{"method": "GET", "route": "/api/v1/bookstore/books", "status": "200"}
	before := counterValue(t, HTTPRequestsTotal, labels)

	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, labels)

	assert.Equal(t, before+2, counterValue(t, HTTPRequestsTotal, labels))
}

func TestRecordReview(t *testing.T) {
	InitMetrics()
	labels := map[string]string{"operation": "submit", "result": "conflict"}
	before := counterValue(t, ReviewOperationsTotal, labels)

	RecordReview("submit", "conflict")

	assert.Equal(t, before+1, counterValue(t, ReviewOperationsTotal, labels))
}

func TestGauge(t *testing.T) {
	InitMetrics()
	before := gaugeValue(t, HTTPRequestsInProgress)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)

	assert.Equal(t, before+1, gaugeValue(t, HTTPRequestsInProgress))
	DecGauge(HTTPRequestsInProgress)
}

func TestSetGaugeVec(t *testing.T) {
	InitMetrics()
	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "review-events"}, 1)

	g, err := CircuitBreakerState.GetMetricWith(map[string]string{"name": "review-events"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, gaugeValue(t, g))
}

func TestNilSafeHelpers(t *testing.T) {
	assert.NotPanics(t, func() {
		IncCounterVec(nil, nil)
		SetGaugeVec(nil, nil, 1)
		ObserveHistogramVec(nil, nil, 1)
		IncGauge(nil)
	})
}

func TestHandler(t *testing.T) {
	InitMetrics()
	RecordReview("delete", "success")

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "review_operations_total")
}

// =========================================
// 辅助函数：读取指标当前值
// =========================================

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	c, err := vec.GetMetricWith(labels)
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}
