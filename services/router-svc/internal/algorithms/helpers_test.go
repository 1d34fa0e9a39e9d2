package algorithms

import (
	"math/rand/v2"
	"testing"

	"detour/pkg/domain"
)

const unreachable = domain.Weight(-1)

// randomGraph строит случайный граф на вершинах 1..n с фиксированным seed.
func randomGraph(t testing.TB, n, m int, seed uint64) *domain.Graph {
	t.Helper()
	r := rand.New(rand.NewPCG(seed, seed*31+1))

	edges := make([]domain.Edge, 0, m)
	for i := 0; i < m; i++ {
		edges = append(edges, domain.Edge{
			U: 1 + r.IntN(n),
			V: 1 + r.IntN(n),
			W: domain.Weight(r.IntN(20)),
		})
	}

	g, err := domain.BuildGraphChecked(n, edges)
	if err != nil {
		t.Fatalf("random graph: %v", err)
	}
	return g
}

// randomCustomers выбирает k случайных клиентов из 1..n.
func randomCustomers(n, k int, seed uint64) domain.CustomerSet {
	r := rand.New(rand.NewPCG(seed, 99))
	set := domain.NewCustomerSet()
	for i := 0; i < k; i++ {
		set.Add(1 + r.IntN(n))
	}
	return set
}

// floydWarshall возвращает матрицу кратчайших расстояний, unreachable для недостижимых.
func floydWarshall(g *domain.Graph) [][]domain.Weight {
	n := g.VertexCount()
	dist := make([][]domain.Weight, n)
	for i := range dist {
		dist[i] = make([]domain.Weight, n)
		for j := range dist[i] {
			dist[i][j] = unreachable
		}
		dist[i][i] = 0
	}

	for u := 0; u < n; u++ {
		for _, a := range g.Neighbors(u) {
			if dist[u][a.To] == unreachable || a.Weight < dist[u][a.To] {
				dist[u][a.To] = a.Weight
			}
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if dist[i][k] == unreachable {
				continue
			}
			for j := 0; j < n; j++ {
				if dist[k][j] == unreachable {
					continue
				}
				if d := dist[i][k] + dist[k][j]; dist[i][j] == unreachable || d < dist[i][j] {
					dist[i][j] = d
				}
			}
		}
	}

	return dist
}

// bruteForceDetour минимум d(s,c)+d(c,t) по всем клиентам.
func bruteForceDetour(dist [][]domain.Weight, customers domain.CustomerSet, s, t int) domain.Weight {
	best := unreachable
	for _, c := range customers.Sorted() {
		if dist[s][c] == unreachable || dist[c][t] == unreachable {
			continue
		}
		if d := dist[s][c] + dist[c][t]; best == unreachable || d < best {
			best = d
		}
	}
	return best
}
