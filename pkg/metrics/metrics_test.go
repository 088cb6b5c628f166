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

func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	first := HTTPRequestsTotal
	InitMetrics()

	require.NotNil(t, first)
	assert.Same(t, first, HTTPRequestsTotal)
	assert.NotNil(t, OrdersFailedTotal)
	assert.NotNil(t, OrderPlacementDuration)
}

func TestHelpers_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		IncCounter(nil)
		AddCounter(nil, 3)
		IncCounterVec(nil, map[string]string{"a": "b"})
		IncGauge(nil)
		DecGauge(nil)
		SetGaugeVec(nil, nil, 1)
		ObserveHistogram(nil, 1)
		ObserveHistogramVec(nil, nil, 1)
	})
}

func TestCounters(t *testing.T) {
	InitMetrics()

	before := counterValue(t, OrdersPlacedTotal)
	IncCounter(OrdersPlacedTotal)
	IncCounter(OrdersPlacedTotal)
	assert.Equal(t, before+2, counterValue(t, OrdersPlacedTotal))

	sold := counterValue(t, BooksSoldTotal)
	AddCounter(BooksSoldTotal, 5)
	assert.Equal(t, sold+5, counterValue(t, BooksSoldTotal))

	labels := map[string]string{"reason": "insufficient_stock"}
	failed := counterVecValue(t, OrdersFailedTotal, labels)
	IncCounterVec(OrdersFailedTotal, labels)
	assert.Equal(t, failed+1, counterVecValue(t, OrdersFailedTotal, labels))
}

func TestGauges(t *testing.T) {
	InitMetrics()

	before := gaugeValue(t, HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)
	assert.Equal(t, before+1, gaugeValue(t, HTTPRequestsInProgress))
	DecGauge(HTTPRequestsInProgress)

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "order-events"}, 1)
	var m dto.Metric
	require.NoError(t, CircuitBreakerState.With(prometheus.Labels{"name": "order-events"}).Write(&m))
	assert.Equal(t, float64(1), m.GetGauge().GetValue())
}

func TestHistograms(t *testing.T) {
	InitMetrics()

	var before dto.Metric
	require.NoError(t, OrderPlacementDuration.Write(&before))

	ObserveHistogram(OrderPlacementDuration, 0.02)
	ObserveHistogram(OrderPlacementDuration, 0.2)

	var after dto.Metric
	require.NoError(t, OrderPlacementDuration.Write(&after))
	assert.Equal(t, before.GetHistogram().GetSampleCount()+2, after.GetHistogram().GetSampleCount())
	assert.InDelta(t, before.GetHistogram().GetSampleSum()+0.22, after.GetHistogram().GetSampleSum(), 1e-9)

	labels := map[string]string{"method": "GET", "path": "/api/v1/books"}
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.01)
	var vm dto.Metric
	h := HTTPRequestDuration.With(labels).(prometheus.Histogram)
	require.NoError(t, h.Write(&vm))
	assert.GreaterOrEqual(t, vm.GetHistogram().GetSampleCount(), uint64(1))
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	InitMetrics()
	IncCounter(OrdersPlacedTotal)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "orders_placed_total")
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func counterVecValue(t *testing.T, c *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	return counterValue(t, c.With(labels))
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}
