package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"detour/pkg/apperror"
	"detour/pkg/cache"
	"detour/pkg/domain"
	"detour/pkg/logger"
	"detour/pkg/metrics"
	"detour/pkg/telemetry"
	"detour/services/router-svc/internal/algorithms"
	"detour/services/router-svc/internal/converter"
)

// Result ответ на запрос одного вида
type Result struct {
	Kind     string
	Path     *domain.Path // nil если пути нет
	Err      error
	CacheHit bool
	Elapsed  time.Duration
	Heap     algorithms.HeapStats
}

// Reachable reports whether a path was found.
func (r Result) Reachable() bool {
	return r.Err == nil && r.Path != nil
}

// Report результат пары запросов для одной пары (source, target).
// Err is set only for failures other than an unreachable target.
type Report struct {
	QueryID  string
	Source   domain.VertexID
	Target   domain.VertexID
	Shortest Result
	Detour   Result
	Err      error
}

// Router отвечает на запросы маршрутов над загруженной сетью
type Router struct {
	network *converter.Network
	hash    string
	routes  *cache.RouteCache
	metrics *metrics.Metrics
	tracer  trace.Tracer
	timeout time.Duration
	workers int
}

// Option настраивает Router
type Option func(*Router)

// WithCache включает кэш маршрутов
func WithCache(rc *cache.RouteCache) Option {
	return func(r *Router) { r.routes = rc }
}

// WithMetrics включает запись метрик
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

// WithTracer задаёт tracer вместо глобального
func WithTracer(t trace.Tracer) Option {
	return func(r *Router) { r.tracer = t }
}

// WithTimeout ограничивает время одного запроса; 0 без ограничения
func WithTimeout(d time.Duration) Option {
	return func(r *Router) { r.timeout = d }
}

// WithWorkers задаёт размер пула для SolveBatch
func WithWorkers(n int) Option {
	return func(r *Router) {
		if n > 0 {
			r.workers = n
		}
	}
}

// NewRouter создаёт маршрутизатор над сетью
func NewRouter(network *converter.Network, opts ...Option) (*Router, error) {
	if network == nil || network.Graph == nil || network.Detour == nil {
		return nil, apperror.NewWithField(apperror.CodeNilInput, "network is nil", "network")
	}

	r := &Router{
		network: network,
		hash:    cache.NetworkHash(network.Graph, network.Customers),
		workers: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = telemetry.Get().Tracer()
	}

	if r.metrics != nil {
		r.metrics.SetNetworkSize(network.Graph.MaxVertex(), network.Graph.EdgeCount(), network.Customers.Len())
	}

	logger.Log.Info("network loaded",
		"vertices", network.Graph.MaxVertex(),
		"edges", network.Graph.EdgeCount(),
		"customers", network.Customers.Len(),
		"hash", r.hash,
	)

	return r, nil
}

// Network возвращает сеть
func (r *Router) Network() *converter.Network {
	return r.network
}

// NetworkHash возвращает хеш сети, используемый в ключах кэша
func (r *Router) NetworkHash() string {
	return r.hash
}

// ShortestPath кратчайший путь между source и target
func (r *Router) ShortestPath(ctx context.Context, source, target domain.VertexID) (*domain.Path, error) {
	res := r.run(ctx, logger.WithContext(ctx), cache.KindShortest, source, target)
	return res.Path, res.Err
}

// MinDetourPath кратчайший путь через хотя бы одного клиента
func (r *Router) MinDetourPath(ctx context.Context, source, target domain.VertexID) (*domain.Path, error) {
	res := r.run(ctx, logger.WithContext(ctx), cache.KindDetour, source, target)
	return res.Path, res.Err
}

// Solve отвечает на оба запроса для пары вершин.
// Unreachable targets are reported inside the Report; the error is returned
// only for invalid queries and cancellation.
func (r *Router) Solve(ctx context.Context, source, target domain.VertexID) (*Report, error) {
	report := r.solve(ctx, source, target)
	return report, report.Err
}

// SolveBatch решает пакет запросов на пуле из workers горутин.
// Per-query failures are kept in Report.Err; the returned error is set only
// when ctx is done before every query was started.
func (r *Router) SolveBatch(ctx context.Context, queries []converter.Query) ([]*Report, error) {
	ctx, span := r.tracer.Start(ctx, "Router.SolveBatch",
		trace.WithAttributes(
			attribute.Int(telemetry.AttrBatchSize, len(queries)),
			attribute.Int("batch.workers", r.workers),
		),
	)
	defer span.End()

	if r.metrics != nil {
		r.metrics.RecordBatch(len(queries))
	}

	reports := make([]*Report, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = r.solve(gctx, q.Source, q.Target)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		telemetry.SetError(ctx, err)
		return reports, apperror.Canceled(err)
	}

	logger.WithContext(ctx).Info("batch solved", "queries", len(queries), "workers", r.workers)
	return reports, nil
}

// InvalidateCache удаляет все маршруты текущей сети из кэша
func (r *Router) InvalidateCache(ctx context.Context) (int64, error) {
	if r.routes == nil {
		return 0, nil
	}
	return r.routes.Invalidate(ctx, r.hash)
}

func (r *Router) solve(ctx context.Context, source, target domain.VertexID) *Report {
	report := &Report{
		QueryID: uuid.NewString(),
		Source:  source,
		Target:  target,
	}

	ctx, span := r.tracer.Start(ctx, "Router.Solve",
		trace.WithAttributes(attribute.String(telemetry.AttrQueryID, report.QueryID)),
	)
	defer span.End()

	log := logger.WithContext(ctx, "query_id", report.QueryID)

	report.Shortest = r.run(ctx, log, cache.KindShortest, source, target)
	if failed(report.Shortest.Err) {
		report.Err = report.Shortest.Err
		return report
	}

	report.Detour = r.run(ctx, log, cache.KindDetour, source, target)
	if failed(report.Detour.Err) {
		report.Err = report.Detour.Err
	}

	return report
}

// run выполняет один запрос: кэш, поиск, метрики, трассировка
func (r *Router) run(ctx context.Context, log *slog.Logger, kind string, source, target domain.VertexID) Result {
	ctx, span := r.tracer.Start(ctx, "Router."+kind,
		trace.WithAttributes(telemetry.QueryAttributes(kind, source, target)...),
	)
	defer span.End()

	if r.metrics != nil {
		r.metrics.QueriesInFlight.Inc()
		defer r.metrics.QueriesInFlight.Dec()
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	timer := metrics.NewTimer()
	res := Result{Kind: kind}

	if cached, ok := r.lookup(ctx, log, kind, source, target); ok {
		res.CacheHit = true
		res.Path = cached.Path()
		if cached.Unreachable {
			res.Err = apperror.Unreachable(source, target)
		}
	} else {
		res.Path, res.Heap, res.Err = r.search(ctx, kind, source, target)
		r.store(ctx, log, kind, source, target, res)
	}
	res.Elapsed = timer.Elapsed()

	span.SetAttributes(attribute.Bool(telemetry.AttrCacheHit, res.CacheHit))
	status := metrics.StatusOK
	switch {
	case res.Err == nil:
		span.SetAttributes(telemetry.RouteAttributes(res.Path.Len(), res.Path.Distance)...)
		log.Debug("route found",
			"kind", kind,
			"source", source,
			"target", target,
			"distance", res.Path.Distance,
			"vertices", res.Path.Len(),
			"cache_hit", res.CacheHit,
			"elapsed", res.Elapsed,
		)
	case apperror.Is(res.Err, apperror.CodeUnreachableNode):
		status = metrics.StatusUnreachable
		span.SetAttributes(attribute.Bool(telemetry.AttrReachable, false))
		telemetry.RecordError(ctx, res.Err)
		log.Debug("target unreachable", "kind", kind, "source", source, "target", target)
	default:
		status = metrics.StatusError
		telemetry.SetError(ctx, res.Err)
		log.Warn("route query failed",
			"kind", kind,
			"source", source,
			"target", target,
			"error", res.Err,
		)
	}

	if !res.CacheHit {
		span.SetAttributes(telemetry.HeapAttributes(res.Heap.Inserts, res.Heap.DecreaseKeys, res.Heap.Extractions)...)
	}

	if r.metrics != nil {
		r.metrics.RecordQuery(kind, status, res.Elapsed, res.Path.Len())
		if !res.CacheHit {
			r.metrics.RecordHeapOps(kind, res.Heap.Inserts, res.Heap.DecreaseKeys, res.Heap.Extractions)
		}
	}

	return res
}

func (r *Router) search(ctx context.Context, kind string, source, target domain.VertexID) (*domain.Path, algorithms.HeapStats, error) {
	if kind == cache.KindDetour {
		return algorithms.SearchMinDetourPath(ctx, r.network.Detour, source, target)
	}
	return algorithms.SearchShortestPath(ctx, r.network.Graph, source, target)
}

func (r *Router) lookup(ctx context.Context, log *slog.Logger, kind string, source, target domain.VertexID) (*cache.CachedRoute, bool) {
	if r.routes == nil {
		return nil, false
	}

	cached, found, err := r.routes.Get(ctx, r.hash, kind, source, target)
	if err != nil {
		log.Warn("route cache lookup failed", "kind", kind, "error", err)
		found = false
	}
	if r.metrics != nil {
		r.metrics.RecordCacheLookup(kind, found)
	}
	if found {
		telemetry.AddEvent(ctx, "cache_hit")
	}
	return cached, found
}

// store кэширует найденный путь и недостижимость; прочие ошибки не кэшируются
func (r *Router) store(ctx context.Context, log *slog.Logger, kind string, source, target domain.VertexID, res Result) {
	if r.routes == nil {
		return
	}
	if res.Err != nil && !apperror.Is(res.Err, apperror.CodeUnreachableNode) {
		return
	}

	if err := r.routes.Set(ctx, r.hash, kind, source, target, res.Path); err != nil {
		log.Warn("failed to cache route", "kind", kind, "error", err)
	}
}

// failed отличает настоящие ошибки от недостижимости
func failed(err error) bool {
	return err != nil && !apperror.IsWarning(err)
}
