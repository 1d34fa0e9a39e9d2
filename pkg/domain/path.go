package domain

import (
	"strconv"
	"strings"
)

// Path результат запроса: последовательность вершин и суммарная длина.
type Path struct {
	Vertices []VertexID
	Distance Weight
}

// Len возвращает количество вершин пути
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Vertices)
}

// Source возвращает первую вершину пути
func (p *Path) Source() VertexID {
	return p.Vertices[0]
}

// Target возвращает последнюю вершину пути
func (p *Path) Target() VertexID {
	return p.Vertices[len(p.Vertices)-1]
}

// VisitsAny reports whether at least one vertex of the path is in the set.
func (p *Path) VisitsAny(customers CustomerSet) bool {
	for _, v := range p.Vertices {
		if customers.Contains(v) {
			return true
		}
	}
	return false
}

// String formats the path as "1 --> 2 --> 3".
func (p *Path) String() string {
	return p.Format(nil)
}

// Format formats the path and marks customer vertices with "(C)".
func (p *Path) Format(customers CustomerSet) string {
	if p == nil {
		return ""
	}
	parts := make([]string, len(p.Vertices))
	for i, v := range p.Vertices {
		parts[i] = strconv.Itoa(v)
		if customers.Contains(v) {
			parts[i] += "(C)"
		}
	}
	return strings.Join(parts, " --> ")
}

// PathWeight sums the lightest arc between consecutive vertices of a walk.
// Returns false when two consecutive vertices are not adjacent.
func PathWeight(g *Graph, vertices []VertexID) (Weight, bool) {
	var total Weight
	for i := 0; i+1 < len(vertices); i++ {
		u, v := vertices[i], vertices[i+1]
		best, found := Weight(0), false
		for _, a := range g.Neighbors(u) {
			if a.To == v && (!found || a.Weight < best) {
				best, found = a.Weight, true
			}
		}
		if !found {
			return 0, false
		}
		total = AddWeight(total, best)
	}
	return total, true
}
