package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Стандартные ключи атрибутов
const (
	// Сеть
	AttrGraphVertices = "graph.vertices"
	AttrGraphEdges    = "graph.edges"
	AttrCustomers     = "graph.customers"
	AttrNetworkHash   = "graph.hash"

	// Запрос
	AttrQueryID     = "query.id"
	AttrQueryKind   = "query.kind"
	AttrQuerySource = "query.source"
	AttrQueryTarget = "query.target"

	// Результат
	AttrPathVertices = "route.vertices"
	AttrDistance     = "route.distance"
	AttrReachable    = "route.reachable"
	AttrCacheHit     = "route.cache_hit"

	// Куча
	AttrHeapInserts      = "heap.inserts"
	AttrHeapDecreaseKeys = "heap.decrease_keys"
	AttrHeapExtractions  = "heap.extractions"

	// Пакет
	AttrBatchSize = "batch.size"
)

// NetworkAttributes возвращает атрибуты сети
func NetworkAttributes(vertices, edges, customers int, hash string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrGraphVertices, vertices),
		attribute.Int(AttrGraphEdges, edges),
		attribute.Int(AttrCustomers, customers),
		attribute.String(AttrNetworkHash, hash),
	}
}

// QueryAttributes возвращает атрибуты запроса
func QueryAttributes(kind string, source, target int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrQueryKind, kind),
		attribute.Int(AttrQuerySource, source),
		attribute.Int(AttrQueryTarget, target),
	}
}

// RouteAttributes возвращает атрибуты найденного маршрута
func RouteAttributes(vertices int, distance int64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(AttrReachable, true),
		attribute.Int(AttrPathVertices, vertices),
		attribute.Int64(AttrDistance, distance),
	}
}

// HeapAttributes возвращает счётчики операций кучи
func HeapAttributes(inserts, decreaseKeys, extractions int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrHeapInserts, inserts),
		attribute.Int(AttrHeapDecreaseKeys, decreaseKeys),
		attribute.Int(AttrHeapExtractions, extractions),
	}
}

// WithAttributes создаёт SpanStartOption с атрибутами
func WithAttributes(attrs ...attribute.KeyValue) trace.SpanStartOption {
	return trace.WithAttributes(attrs...)
}
