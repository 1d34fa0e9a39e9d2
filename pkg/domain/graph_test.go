package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle() []Edge {
	return []Edge{
		{U: 1, V: 2, W: 4},
		{U: 2, V: 3, W: 1},
		{U: 1, V: 3, W: 10},
	}
}

func TestBuildGraph(t *testing.T) {
	g := BuildGraph(3, triangle())

	assert.Equal(t, 3, g.MaxVertex())
	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, 6, g.ArcCount())
	assert.Empty(t, g.Neighbors(0))
	assert.ElementsMatch(t, []Arc{{To: 2, Weight: 4}, {To: 3, Weight: 10}}, g.Neighbors(1))
}

func TestBuildGraph_Symmetric(t *testing.T) {
	g := BuildGraph(3, triangle())

	for u := 0; u < g.VertexCount(); u++ {
		for _, a := range g.Neighbors(u) {
			assert.Contains(t, g.Neighbors(a.To), Arc{To: u, Weight: a.Weight},
				"arc %d->%d has no mirror", u, a.To)
		}
	}
}

func TestBuildGraph_ParallelAndSelfLoop(t *testing.T) {
	g := BuildGraph(2, []Edge{
		{U: 1, V: 2, W: 5},
		{U: 1, V: 2, W: 3},
		{U: 2, V: 2, W: 7},
	})

	assert.Len(t, g.Neighbors(1), 2, "parallel edges are kept")
	assert.Len(t, g.Neighbors(2), 4, "self loop adds two entries")
	assert.Equal(t, 6, g.ArcCount())
}

func TestBuildGraph_Empty(t *testing.T) {
	g := BuildGraph(0, nil)
	assert.Equal(t, 1, g.VertexCount())

	g = BuildGraph(-3, nil)
	assert.Equal(t, 1, g.VertexCount())
}

func TestGraph_NeighborsOutOfRange(t *testing.T) {
	g := BuildGraph(3, triangle())

	assert.Nil(t, g.Neighbors(-1))
	assert.Nil(t, g.Neighbors(4))
	assert.True(t, g.Contains(0))
	assert.True(t, g.Contains(3))
	assert.False(t, g.Contains(4))
	assert.False(t, g.Contains(-1))
}

func TestGraph_EdgesIsCopy(t *testing.T) {
	input := triangle()
	g := BuildGraph(3, input)

	input[0].W = 100
	edges := g.Edges()
	assert.Equal(t, Weight(4), edges[0].W)

	edges[1].W = 100
	assert.Equal(t, Weight(1), g.Edges()[1].W)
}

func TestBuildGraphChecked(t *testing.T) {
	g, err := BuildGraphChecked(3, triangle())
	require.NoError(t, err)
	assert.Equal(t, 3, g.EdgeCount())

	_, err = BuildGraphChecked(2, triangle())
	assert.Error(t, err)
}

func TestEdge_String(t *testing.T) {
	assert.Equal(t, "1-2(4)", Edge{U: 1, V: 2, W: 4}.String())
}
