package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(reg, reg, "test", "router"), reg
}

// value читает текущее значение счётчика или gauge
func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, m.Write(&pb))
	switch {
	case pb.Counter != nil:
		return pb.Counter.GetValue()
	case pb.Gauge != nil:
		return pb.Gauge.GetValue()
	}
	return 0
}

// series возвращает количество рядов семейства в реестре
func series(t *testing.T, g prometheus.Gatherer, name string) int {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return len(f.GetMetric())
		}
	}
	return 0
}

func TestNew(t *testing.T) {
	m, _ := newTestMetrics(t)

	require.NotNil(t, m)
	assert.NotNil(t, m.QueriesTotal)
	assert.NotNil(t, m.QueryDuration)
	assert.NotNil(t, m.CacheLookups)
}

func TestGet(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defaultMetrics = nil

	m := Get()
	require.NotNil(t, m)
	assert.Same(t, m, Get())
}

func TestRecordQuery(t *testing.T) {
	m, reg := newTestMetrics(t)

	m.RecordQuery("shortest", StatusOK, 2*time.Millisecond, 3)
	m.RecordQuery("shortest", StatusOK, time.Millisecond, 5)
	m.RecordQuery("detour", StatusUnreachable, time.Millisecond, 0)

	assert.Equal(t, 2.0, value(t, m.QueriesTotal.WithLabelValues("shortest", StatusOK)))
	assert.Equal(t, 1.0, value(t, m.QueriesTotal.WithLabelValues("detour", StatusUnreachable)))
	assert.Equal(t, 1, series(t, reg, "test_router_path_vertices"), "unreachable queries record no path length")
}

func TestRecordHeapOps(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordHeapOps("detour", 10, 3, 10)

	assert.Equal(t, 10.0, value(t, m.HeapOperations.WithLabelValues("detour", "insert")))
	assert.Equal(t, 3.0, value(t, m.HeapOperations.WithLabelValues("detour", "decrease_key")))
	assert.Equal(t, 10.0, value(t, m.HeapOperations.WithLabelValues("detour", "extract_min")))
}

func TestRecordCacheLookup(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordCacheLookup("shortest", true)
	m.RecordCacheLookup("shortest", false)
	m.RecordCacheLookup("shortest", false)

	assert.Equal(t, 1.0, value(t, m.CacheLookups.WithLabelValues("shortest", "hit")))
	assert.Equal(t, 2.0, value(t, m.CacheLookups.WithLabelValues("shortest", "miss")))
}

func TestSetNetworkSize(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.SetNetworkSize(4, 3, 1)
	m.SetServiceInfo("1.0.0", "test")
	m.RecordBatch(7)

	assert.Equal(t, 4.0, value(t, m.GraphVertices))
	assert.Equal(t, 3.0, value(t, m.GraphEdges))
	assert.Equal(t, 1.0, value(t, m.Customers))
	assert.Equal(t, 1.0, value(t, m.ServiceInfo.WithLabelValues("1.0.0", "test")))
}

func TestRuntimeCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewRuntimeCollector("test", "router"))

	assert.Equal(t, 1, series(t, reg, "test_router_runtime_goroutines"))
	assert.Equal(t, 1, series(t, reg, "test_router_runtime_heap_alloc_bytes"))
	assert.Equal(t, 1, series(t, reg, "test_router_runtime_gc_runs_total"))
}

func TestServer_MetricsAndHealth(t *testing.T) {
	m, reg := newTestMetrics(t)
	reg.MustRegister(NewRuntimeCollector("test", "router"))
	m.RecordQuery("shortest", StatusOK, time.Millisecond, 2)

	srv := m.NewServer(0, "/metrics")

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "test_router_queries_total"))
	assert.True(t, strings.Contains(body, "test_router_runtime_goroutines"))

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestTimer(t *testing.T) {
	timer := NewTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Elapsed(), time.Millisecond)
}
