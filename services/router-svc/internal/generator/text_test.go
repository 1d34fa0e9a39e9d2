package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextGenerator_Single(t *testing.T) {
	g := NewTextGenerator()

	out, err := g.Generate(context.Background(), triangleData())

	require.NoError(t, err)
	assert.Equal(t, "Shortest path: 1 --> 2(C) --> 3\n"+
		"Shortest distance: 5\n"+
		"\n"+
		"Minimum detour path: 1 --> 2(C) --> 3\n"+
		"Minimum detour distance: 5\n", string(out))
}

func TestTextGenerator_Batch(t *testing.T) {
	g := NewTextGenerator()

	out, err := g.Generate(context.Background(), batchData())

	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "Query 1 -> 3\nShortest path: 1 --> 2(C) --> 3\n")
	assert.Contains(t, text, "Query 1 -> 4\nShortest path: No path from 1 to 4\n\nMinimum detour path: No path from 1 to 4\n")
	assert.Contains(t, text, "Query 1 -> 9\nError: OUT_OF_RANGE_TARGET: target 9 is outside [0, 4]\n")
	assert.NotContains(t, text, "Shortest distance: 0")
}
