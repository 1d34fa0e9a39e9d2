package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Query outcomes used as the "status" label.
const (
	StatusOK          = "ok"
	StatusUnreachable = "unreachable"
	StatusError       = "error"
)

// Metrics контейнер метрик маршрутизатора
type Metrics struct {
	// Запросы
	QueriesTotal    *prometheus.CounterVec
	QueryDuration   *prometheus.HistogramVec
	QueriesInFlight prometheus.Gauge
	PathVertices    *prometheus.HistogramVec
	HeapOperations  *prometheus.CounterVec
	BatchSize       prometheus.Histogram

	// Кэш
	CacheLookups *prometheus.CounterVec

	// Сеть
	GraphVertices prometheus.Gauge
	GraphEdges    prometheus.Gauge
	Customers     prometheus.Gauge

	// Информация о сервисе
	ServiceInfo *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

var defaultMetrics *Metrics

// InitMetrics регистрирует метрики в глобальном реестре
func InitMetrics(namespace, subsystem string) *Metrics {
	m := New(prometheus.DefaultRegisterer, prometheus.DefaultGatherer, namespace, subsystem)
	defaultMetrics = m
	return m
}

// New регистрирует метрики в переданном реестре.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer, namespace, subsystem string) *Metrics {
	f := promauto.With(reg)

	m := &Metrics{
		QueriesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queries_total",
				Help:      "Total number of route queries",
			},
			[]string{"kind", "status"},
		),

		QueryDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "query_duration_seconds",
				Help:      "Duration of route queries",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"kind"},
		),

		QueriesInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queries_in_flight",
				Help:      "Current number of route queries being processed",
			},
		),

		PathVertices: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "path_vertices",
				Help:      "Number of vertices in returned paths",
				Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 500, 1000},
			},
			[]string{"kind"},
		),

		HeapOperations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "heap_operations_total",
				Help:      "Priority queue operations performed by searches",
			},
			[]string{"kind", "op"},
		),

		BatchSize: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "batch_size",
				Help:      "Number of queries per batch",
				Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000},
			},
		),

		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_lookups_total",
				Help:      "Route cache lookups by result",
			},
			[]string{"kind", "result"},
		),

		GraphVertices: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_vertices",
				Help:      "Number of vertex slots in the loaded graph",
			},
		),

		GraphEdges: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_edges",
				Help:      "Number of edges in the loaded graph",
			},
		),

		Customers: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "customers",
				Help:      "Number of customer vertices",
			},
		),

		ServiceInfo: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service information",
			},
			[]string{"version", "environment"},
		),

		gatherer: gatherer,
	}

	return m
}

// Get возвращает глобальные метрики
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("detour", "router")
	}
	return defaultMetrics
}

// RecordQuery записывает результат одного запроса
func (m *Metrics) RecordQuery(kind, status string, duration time.Duration, pathVertices int) {
	m.QueriesTotal.WithLabelValues(kind, status).Inc()
	m.QueryDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if status == StatusOK {
		m.PathVertices.WithLabelValues(kind).Observe(float64(pathVertices))
	}
}

// RecordHeapOps записывает счётчики операций кучи
func (m *Metrics) RecordHeapOps(kind string, inserts, decreaseKeys, extractions int) {
	m.HeapOperations.WithLabelValues(kind, "insert").Add(float64(inserts))
	m.HeapOperations.WithLabelValues(kind, "decrease_key").Add(float64(decreaseKeys))
	m.HeapOperations.WithLabelValues(kind, "extract_min").Add(float64(extractions))
}

// RecordCacheLookup записывает попадание или промах кэша
func (m *Metrics) RecordCacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(kind, result).Inc()
}

// RecordBatch записывает размер пакета
func (m *Metrics) RecordBatch(size int) {
	m.BatchSize.Observe(float64(size))
}

// SetNetworkSize записывает размер загруженной сети
func (m *Metrics) SetNetworkSize(vertices, edges, customers int) {
	m.GraphVertices.Set(float64(vertices))
	m.GraphEdges.Set(float64(edges))
	m.Customers.Set(float64(customers))
}

// SetServiceInfo устанавливает информацию о сервисе
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler возвращает HTTP handler для /metrics
func (m *Metrics) Handler() http.Handler {
	if m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// NewServer создаёт HTTP сервер для метрик и /health
func (m *Metrics) NewServer(port int, path string) *http.Server {
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}
