package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"

	"detour/pkg/domain"
)

// NetworkHash вычисляет хеш графа вместе с множеством клиентов.
// Edge order and the orientation of each edge do not affect the hash.
func NetworkHash(g *domain.Graph, customers domain.CustomerSet) string {
	if g == nil {
		return ""
	}

	hash := sha256.Sum256(networkToCanonical(g, customers))
	return hex.EncodeToString(hash[:16])
}

// networkToCanonical создаёт детерминированное представление сети
func networkToCanonical(g *domain.Graph, customers domain.CustomerSet) []byte {
	edges := g.Edges()
	for i, e := range edges {
		if e.U > e.V {
			edges[i].U, edges[i].V = e.V, e.U
		}
	}
	slices.SortFunc(edges, func(a, b domain.Edge) int {
		if a.U != b.U {
			return a.U - b.U
		}
		if a.V != b.V {
			return a.V - b.V
		}
		switch {
		case a.W < b.W:
			return -1
		case a.W > b.W:
			return 1
		}
		return 0
	})

	buf := make([]byte, 0, 16*len(edges)+8*len(customers)+16)
	buf = append(buf, "n:"...)
	buf = strconv.AppendInt(buf, int64(g.MaxVertex()), 10)
	buf = append(buf, ';')

	for _, e := range edges {
		buf = fmt.Appendf(buf, "e:%d:%d:%d;", e.U, e.V, e.W)
	}
	for _, c := range customers.Sorted() {
		buf = fmt.Appendf(buf, "c:%d;", c)
	}

	return buf
}

// BuildRouteKey строит ключ кэша для результата запроса
func BuildRouteKey(networkHash, kind string, source, target domain.VertexID) string {
	return fmt.Sprintf("route:%s:%s:%d:%d", networkHash, kind, source, target)
}
