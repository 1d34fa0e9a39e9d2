package algorithms

import (
	"slices"

	"detour/pkg/apperror"
	"detour/pkg/domain"
)

// ReconstructPath walks predecessor links from target back to the source and
// returns the vertices in source-to-target order.
func ReconstructPath(res *SearchResult, target int) ([]domain.VertexID, error) {
	return walk(res, target, func(index int) domain.VertexID { return index })
}

// ReconstructDetourPath reconstructs a path found on a detour graph and folds
// every detour vertex back to its original id.
//
// A bridge crossing c/pre -> c/post folds to the same id twice; the repeated
// id is emitted once, so the result is a walk in the original graph.
func ReconstructDetourPath(res *SearchResult, dg *domain.DetourGraph, target domain.DetourVertex) ([]domain.VertexID, error) {
	raw, err := walk(res, dg.Index(target), func(index int) domain.VertexID {
		return dg.Vertex(index).ID
	})
	if err != nil {
		return nil, err
	}

	out := raw[:0]
	for i, id := range raw {
		if i > 0 && out[len(out)-1] == id {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func walk(res *SearchResult, target int, fold func(int) domain.VertexID) ([]domain.VertexID, error) {
	if !res.Reached(target) {
		return nil, apperror.Unreachable(fold(res.Source()), fold(target))
	}

	var path []domain.VertexID
	for v := target; ; {
		path = append(path, fold(v))
		pred, ok := res.Predecessor(v)
		if !ok {
			break
		}
		v = pred
	}

	slices.Reverse(path)
	return path, nil
}
