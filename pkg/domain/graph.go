// Package domain holds the road-network model shared by the router service:
// the undirected weighted graph, the doubled "detour" graph built over it and
// the customer set that decides where the two copies are bridged.
package domain

import (
	"fmt"
	"math"
)

// VertexID идентификатор вершины, ожидается в диапазоне [0, n].
type VertexID = int

// Weight вес ребра и длина пути.
type Weight = int64

// Limits accepted by ValidateEdges. A simple path in the detour graph has at
// most 2*(MaxVertices+1) vertices, so its length stays below math.MaxInt64.
const (
	MaxVertices        = 1 << 26
	MaxWeight   Weight = 1 << 35
)

// AddWeight складывает длины, насыщаясь на math.MaxInt64 вместо переполнения.
// Both arguments must be non-negative.
func AddWeight(a, b Weight) Weight {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Edge одна запись входного списка рёбер. Ребро неориентированное.
type Edge struct {
	U VertexID
	V VertexID
	W Weight
}

// String возвращает строковое представление ребра
func (e Edge) String() string {
	return fmt.Sprintf("%d-%d(%d)", e.U, e.V, e.W)
}

// Arc одна запись списка смежности.
type Arc struct {
	To     VertexID
	Weight Weight
}

// Adjacency is the read-only view the shortest-path engine consumes.
// Vertices are dense indices in [0, VertexCount()).
type Adjacency interface {
	VertexCount() int
	Neighbors(v int) []Arc
}

// Graph is an undirected weighted graph stored as adjacency lists over the
// vertex ids 0..n. It is immutable once built and safe for concurrent reads.
type Graph struct {
	adj   [][]Arc
	edges []Edge
}

var _ Adjacency = (*Graph)(nil)

// BuildGraph создаёт граф за один проход по списку рёбер.
// Every edge {u,v,w} is stored on both u and v; parallel edges are kept.
// Ids are not checked: callers must guarantee 0 <= id <= n.
func BuildGraph(n int, edges []Edge) *Graph {
	if n < 0 {
		n = 0
	}

	g := &Graph{
		adj:   make([][]Arc, n+1),
		edges: make([]Edge, len(edges)),
	}
	copy(g.edges, edges)

	for _, e := range edges {
		g.adj[e.U] = append(g.adj[e.U], Arc{To: e.V, Weight: e.W})
		g.adj[e.V] = append(g.adj[e.V], Arc{To: e.U, Weight: e.W})
	}

	return g
}

// BuildGraphChecked validates the edge list before building the graph.
func BuildGraphChecked(n int, edges []Edge) (*Graph, error) {
	if err := ValidateEdges(n, edges); err != nil {
		return nil, err
	}
	return BuildGraph(n, edges), nil
}

// MaxVertex возвращает n, максимальный допустимый идентификатор вершины
func (g *Graph) MaxVertex() VertexID {
	return len(g.adj) - 1
}

// VertexCount возвращает количество слотов вершин (n+1)
func (g *Graph) VertexCount() int {
	return len(g.adj)
}

// Neighbors возвращает список смежности вершины
func (g *Graph) Neighbors(v int) []Arc {
	if v < 0 || v >= len(g.adj) {
		return nil
	}
	return g.adj[v]
}

// Contains reports whether id is a valid vertex of the graph.
func (g *Graph) Contains(id VertexID) bool {
	return id >= 0 && id < len(g.adj)
}

// EdgeCount возвращает количество входных рёбер
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Edges returns a copy of the input records in their original order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// ArcCount возвращает количество записей смежности (2 на ребро)
func (g *Graph) ArcCount() int {
	count := 0
	for _, arcs := range g.adj {
		count += len(arcs)
	}
	return count
}
