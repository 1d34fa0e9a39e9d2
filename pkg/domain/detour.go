package domain

import (
	"fmt"
)

// Layer копия графа, к которой принадлежит вершина detour-графа.
type Layer uint8

const (
	// LayerPre вершины, достигнутые до посещения клиента
	LayerPre Layer = iota
	// LayerPost вершины, достигнутые после посещения клиента
	LayerPost
)

// String возвращает строковое представление слоя
func (l Layer) String() string {
	switch l {
	case LayerPre:
		return "pre"
	case LayerPost:
		return "post"
	default:
		return "unknown"
	}
}

// DetourVertex вершина detour-графа: исходный идентификатор и слой.
type DetourVertex struct {
	ID    VertexID
	Layer Layer
}

// Pre возвращает вершину в слое до клиента
func Pre(id VertexID) DetourVertex {
	return DetourVertex{ID: id, Layer: LayerPre}
}

// Post возвращает вершину в слое после клиента
func Post(id VertexID) DetourVertex {
	return DetourVertex{ID: id, Layer: LayerPost}
}

// String возвращает строковое представление вершины
func (v DetourVertex) String() string {
	return fmt.Sprintf("%d/%s", v.ID, v.Layer)
}

// DetourGraph is the doubled graph used for customer-constrained routing.
//
// Both layers carry a full copy of the original edges. The layers are joined
// only by zero-weight bridges {c/pre, c/post} at customer vertices, so every
// path from s/pre to t/post crosses a bridge and therefore visits a customer.
//
// Vertices are exposed to the engine as dense indices; the index encoding is
// private and callers convert with Index and Vertex.
type DetourGraph struct {
	base      *Graph
	customers CustomerSet
	offset    int
	adj       [][]Arc
}

var _ Adjacency = (*DetourGraph)(nil)

// BuildDetourGraph создаёт detour-граф за один проход по рёбрам.
// Ids are not checked: callers must guarantee 0 <= id <= n for edges and customers.
func BuildDetourGraph(n int, edges []Edge, customers CustomerSet) *DetourGraph {
	return newDetourGraph(BuildGraph(n, edges), customers)
}

// BuildDetourGraphChecked validates edges and customers before building.
func BuildDetourGraphChecked(n int, edges []Edge, customers CustomerSet) (*DetourGraph, error) {
	if err := ValidateEdges(n, edges); err != nil {
		return nil, err
	}
	if err := ValidateCustomers(n, customers); err != nil {
		return nil, err
	}
	return BuildDetourGraph(n, edges, customers), nil
}

// NewDetourGraph строит detour-граф поверх уже построенного графа.
func NewDetourGraph(g *Graph, customers CustomerSet) *DetourGraph {
	return newDetourGraph(g, customers)
}

func newDetourGraph(g *Graph, customers CustomerSet) *DetourGraph {
	offset := g.VertexCount()
	dg := &DetourGraph{
		base:      g,
		customers: customers.Clone(),
		offset:    offset,
		adj:       make([][]Arc, 2*offset),
	}

	for v := 0; v < offset; v++ {
		arcs := g.Neighbors(v)
		if len(arcs) == 0 {
			continue
		}
		pre := make([]Arc, len(arcs))
		post := make([]Arc, len(arcs))
		for i, a := range arcs {
			pre[i] = a
			post[i] = Arc{To: a.To + offset, Weight: a.Weight}
		}
		dg.adj[v] = pre
		dg.adj[v+offset] = post
	}

	// Мосты только в вершинах-клиентах
	for _, c := range dg.customers.Sorted() {
		dg.adj[c] = append(dg.adj[c], Arc{To: c + offset, Weight: 0})
		dg.adj[c+offset] = append(dg.adj[c+offset], Arc{To: c, Weight: 0})
	}

	return dg
}

// Base возвращает исходный граф
func (dg *DetourGraph) Base() *Graph {
	return dg.base
}

// Customers returns a copy of the customer set the bridges were built from.
func (dg *DetourGraph) Customers() CustomerSet {
	return dg.customers.Clone()
}

// IsCustomer проверяет, есть ли мост в вершине id
func (dg *DetourGraph) IsCustomer(id VertexID) bool {
	return dg.customers.Contains(id)
}

// Offset возвращает n+1, размер одного слоя
func (dg *DetourGraph) Offset() int {
	return dg.offset
}

// MaxVertex возвращает n
func (dg *DetourGraph) MaxVertex() VertexID {
	return dg.offset - 1
}

// VertexCount возвращает количество индексов detour-графа, 2(n+1)
func (dg *DetourGraph) VertexCount() int {
	return len(dg.adj)
}

// Neighbors возвращает список смежности по индексу
func (dg *DetourGraph) Neighbors(v int) []Arc {
	if v < 0 || v >= len(dg.adj) {
		return nil
	}
	return dg.adj[v]
}

// Index переводит вершину detour-графа в плотный индекс.
func (dg *DetourGraph) Index(v DetourVertex) int {
	if v.Layer == LayerPost {
		return v.ID + dg.offset
	}
	return v.ID
}

// Vertex переводит плотный индекс обратно в вершину detour-графа.
func (dg *DetourGraph) Vertex(index int) DetourVertex {
	if index >= dg.offset {
		return DetourVertex{ID: index - dg.offset, Layer: LayerPost}
	}
	return DetourVertex{ID: index, Layer: LayerPre}
}

// IsBridge reports whether the arc from index u to arc.To crosses layers.
func (dg *DetourGraph) IsBridge(u int, arc Arc) bool {
	return dg.Vertex(u).Layer != dg.Vertex(arc.To).Layer
}

// BridgeCount возвращает количество мостов (по одному на клиента)
func (dg *DetourGraph) BridgeCount() int {
	return len(dg.customers)
}
