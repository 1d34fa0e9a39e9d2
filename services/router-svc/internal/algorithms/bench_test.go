package algorithms

import (
	"context"
	"strconv"
	"testing"

	"detour/pkg/domain"
)

// gridEdges строит решётку side x side с вершинами 1..side*side
func gridEdges(side int) (int, []domain.Edge) {
	id := func(r, c int) int { return r*side + c + 1 }
	var edges []domain.Edge
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			w := domain.Weight((r*7+c*3)%10 + 1)
			if c+1 < side {
				edges = append(edges, domain.Edge{U: id(r, c), V: id(r, c+1), W: w})
			}
			if r+1 < side {
				edges = append(edges, domain.Edge{U: id(r, c), V: id(r+1, c), W: w + 1})
			}
		}
	}
	return side * side, edges
}

func BenchmarkShortestPath(b *testing.B) {
	for _, side := range []int{10, 50, 100} {
		n, edges := gridEdges(side)
		g := domain.BuildGraph(n, edges)
		ctx := context.Background()

		b.Run("grid_"+strconv.Itoa(side), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := ShortestPath(ctx, g, 1, n); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkMinDetourPath(b *testing.B) {
	for _, side := range []int{10, 50, 100} {
		n, edges := gridEdges(side)
		// Клиент в правом верхнем углу, вне диагонали source-target
		dg := domain.BuildDetourGraph(n, edges, domain.NewCustomerSet(side))
		ctx := context.Background()

		b.Run("grid_"+strconv.Itoa(side), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := MinDetourPath(ctx, dg, 1, n); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDijkstra_Random(b *testing.B) {
	g := randomGraph(b, 2000, 10000, 7)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Dijkstra(g, 1)
	}
}
