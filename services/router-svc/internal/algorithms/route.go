package algorithms

import (
	"context"

	"detour/pkg/apperror"
	"detour/pkg/domain"
)

// ShortestPath returns the minimum-weight path from source to target.
//
// Errors:
//   - NIL_INPUT if g is nil
//   - INVALID_SOURCE / OUT_OF_RANGE_TARGET for ids outside [0, n]
//   - UNREACHABLE_NODE if target has no finite distance
//   - TIMEOUT if ctx is done before the search completes
func ShortestPath(ctx context.Context, g *domain.Graph, source, target domain.VertexID) (*domain.Path, error) {
	path, _, err := SearchShortestPath(ctx, g, source, target)
	return path, err
}

// SearchShortestPath is ShortestPath that also reports the heap counters of
// the search. Stats are zero when no search ran.
func SearchShortestPath(ctx context.Context, g *domain.Graph, source, target domain.VertexID) (*domain.Path, HeapStats, error) {
	if g == nil {
		return nil, HeapStats{}, apperror.NilGraph()
	}
	if err := checkQuery(g.MaxVertex(), source, target); err != nil {
		return nil, HeapStats{}, err
	}

	if source == target {
		return &domain.Path{Vertices: []domain.VertexID{source}}, HeapStats{}, nil
	}

	res := DijkstraWithContext(ctx, g, source)
	if res.Canceled {
		return nil, res.Stats(), apperror.Canceled(ctx.Err())
	}

	vertices, err := ReconstructPath(res, target)
	if err != nil {
		return nil, res.Stats(), err
	}
	dist, _ := res.Distance(target)

	return &domain.Path{Vertices: vertices, Distance: dist}, res.Stats(), nil
}

// MinDetourPath returns the shortest path from source to target that visits
// at least one customer of dg.
//
// The search runs from source/pre to target/post; every such path crosses a
// bridge and so passes a customer. When source == target the trivial path is
// returned only if the vertex is itself a customer.
func MinDetourPath(ctx context.Context, dg *domain.DetourGraph, source, target domain.VertexID) (*domain.Path, error) {
	path, _, err := SearchMinDetourPath(ctx, dg, source, target)
	return path, err
}

// SearchMinDetourPath is MinDetourPath that also reports heap counters.
func SearchMinDetourPath(ctx context.Context, dg *domain.DetourGraph, source, target domain.VertexID) (*domain.Path, HeapStats, error) {
	if dg == nil {
		return nil, HeapStats{}, apperror.NilGraph()
	}
	if err := checkQuery(dg.MaxVertex(), source, target); err != nil {
		return nil, HeapStats{}, err
	}

	if dg.BridgeCount() == 0 {
		return nil, HeapStats{}, apperror.Unreachable(source, target).
			WithDetails("reason", "no customers")
	}
	if source == target && dg.IsCustomer(source) {
		return &domain.Path{Vertices: []domain.VertexID{source}}, HeapStats{}, nil
	}

	from := domain.Pre(source)
	to := domain.Post(target)

	res := DijkstraWithContext(ctx, dg, dg.Index(from))
	if res.Canceled {
		return nil, res.Stats(), apperror.Canceled(ctx.Err())
	}

	vertices, err := ReconstructDetourPath(res, dg, to)
	if err != nil {
		return nil, res.Stats(), err
	}
	dist, _ := res.Distance(dg.Index(to))

	return &domain.Path{Vertices: vertices, Distance: dist}, res.Stats(), nil
}

func checkQuery(maxVertex, source, target domain.VertexID) error {
	if source < 0 || source > maxVertex {
		return apperror.InvalidSource(source, maxVertex)
	}
	if target < 0 || target > maxVertex {
		return apperror.OutOfRangeTarget(target, maxVertex)
	}
	return nil
}
