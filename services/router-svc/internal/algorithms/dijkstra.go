package algorithms

import (
	"context"

	"detour/pkg/domain"
)

// =============================================================================
// Dijkstra's Algorithm
// =============================================================================
//
// Single-source shortest paths over a graph with non-negative weights, driven
// by the indexed MinHeap. Every vertex is inserted at most once; later
// improvements go through DecreaseKey, so there are no stale heap entries.
//
// Time Complexity: O((V + E) log V)
// Space Complexity: O(V)
//
// The engine depends only on domain.Adjacency and is used unchanged for the
// plain graph and for the detour graph.
// =============================================================================

// checkInterval количество извлечений между проверками контекста
const checkInterval = 100

// SearchResult is the finished state of one Dijkstra run.
type SearchResult struct {
	source int
	state  *MinHeap

	// Canceled indicates whether the run stopped early because of the context.
	Canceled bool
}

// Source возвращает стартовую вершину поиска
func (r *SearchResult) Source() int {
	return r.source
}

// Reached reports whether v has a finite distance from the source.
func (r *SearchResult) Reached(v int) bool {
	return r.state.State(v) == Finalized
}

// Distance returns the shortest distance to v; ok is false if v was not reached.
func (r *SearchResult) Distance(v int) (domain.Weight, bool) {
	if !r.Reached(v) {
		return 0, false
	}
	return r.state.Distance(v)
}

// Predecessor returns the previous vertex on the shortest path to v.
// ok is false for the source and for unreached vertices.
func (r *SearchResult) Predecessor(v int) (int, bool) {
	if !r.Reached(v) {
		return 0, false
	}
	return r.state.Predecessor(v)
}

// Stats возвращает счётчики операций кучи
func (r *SearchResult) Stats() HeapStats {
	return r.state.Stats()
}

// Dijkstra executes Dijkstra's algorithm without context cancellation support.
func Dijkstra(g domain.Adjacency, source int) *SearchResult {
	return DijkstraWithContext(context.Background(), g, source)
}

// DijkstraWithContext executes Dijkstra's algorithm with context cancellation.
//
// Parameters:
//   - ctx: Context for cancellation support, checked every checkInterval extractions
//   - g: The graph to search
//   - source: The start vertex index, must be in [0, g.VertexCount())
//
// Returns:
//   - *SearchResult with per-vertex distances, predecessors and the Canceled flag
func DijkstraWithContext(ctx context.Context, g domain.Adjacency, source int) *SearchResult {
	h := NewMinHeap(g.VertexCount())
	result := &SearchResult{source: source, state: h}

	h.Start(source)

	iterations := 0
	for {
		if iterations%checkInterval == 0 {
			select {
			case <-ctx.Done():
				result.Canceled = true
				return result
			default:
			}
		}
		iterations++

		v, dv, ok := h.ExtractMin()
		if !ok {
			break
		}

		for _, arc := range g.Neighbors(v) {
			u := arc.To
			candidate := domain.AddWeight(dv, arc.Weight)

			switch h.State(u) {
			case Undiscovered:
				h.Insert(u, candidate, v)
			case InQueue:
				if du, _ := h.Distance(u); candidate < du {
					h.DecreaseKey(u, candidate, v)
				}
			case Finalized:
				// расстояние окончательное
			}
		}
	}

	return result
}
