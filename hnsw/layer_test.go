package hnsw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayer() Layer {
	return Layer{
		{Vector: []float64{0, 0}, Connections: []uint64{1, 2}},
		{Vector: []float64{1, 0}, Connections: []uint64{0, 2}},
		{Vector: []float64{0, 1}, Connections: []uint64{0, 1, 3}},
		{Vector: []float64{5, 5}, Connections: []uint64{2}},
	}
}

func TestSearchLayer_ReturnsAscendingByDistance(t *testing.T) {
	layer := testLayer()

	results, err := searchLayer(layer, 0, []float64{0.1, 0.1}, 4)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}
	assert.Equal(t, uint64(0), results[0].NodeID)
}

func TestSearchLayer_BoundsResultsToEF(t *testing.T) {
	layer := testLayer()

	results, err := searchLayer(layer, 0, []float64{0, 0}, 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 2)
}

func TestSearchLayer_EmptyLayer(t *testing.T) {
	results, err := searchLayer(Layer{}, 0, []float64{0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchLayer_EFZeroOrNegative(t *testing.T) {
	layer := testLayer()

	results, err := searchLayer(layer, 0, []float64{0, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = searchLayer(layer, 0, []float64{0, 0}, -1)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchLayer_InvalidEntry(t *testing.T) {
	layer := testLayer()

	_, err := searchLayer(layer, 99, []float64{0, 0}, 2)
	require.Error(t, err)

	var invalid *InvalidEntryError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, uint64(99), invalid.Entry)
	assert.Equal(t, len(layer), invalid.LayerSize)
}

func TestSearchLayer_ToleratesOutOfRangeConnections(t *testing.T) {
	layer := Layer{
		{Vector: []float64{0, 0}, Connections: []uint64{7}}, // dangling, out of range
	}

	results, err := searchLayer(layer, 0, []float64{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint64(0), results[0].NodeID)
}

func TestPrune_CapsAndOrdersByDistance(t *testing.T) {
	layer := Layer{
		{Vector: []float64{0, 0}, Connections: []uint64{1, 2, 3, 4}},
		{Vector: []float64{1, 0}},
		{Vector: []float64{5, 0}},
		{Vector: []float64{0.5, 0}},
		{Vector: []float64{10, 0}},
	}

	prune(layer, 0, 2)

	require.Len(t, layer[0].Connections, 2)
	assert.Equal(t, []uint64{3, 1}, layer[0].Connections)
}

func TestPrune_DeduplicatesAndDropsSelfLoop(t *testing.T) {
	layer := Layer{
		{Vector: []float64{0, 0}, Connections: []uint64{1, 1, 0}},
		{Vector: []float64{1, 0}},
	}

	prune(layer, 0, 8)
	assert.Equal(t, []uint64{1}, layer[0].Connections)
}

func TestPrune_SkipsOutOfRangeConnections(t *testing.T) {
	layer := Layer{
		{Vector: []float64{0, 0}, Connections: []uint64{1, 99}},
		{Vector: []float64{1, 0}},
	}

	prune(layer, 0, 8)
	assert.Equal(t, []uint64{1}, layer[0].Connections)
}

func TestPrune_IsIdempotent(t *testing.T) {
	layer := Layer{
		{Vector: []float64{0, 0}, Connections: []uint64{1, 2, 3}},
		{Vector: []float64{1, 0}},
		{Vector: []float64{2, 0}},
		{Vector: []float64{3, 0}},
	}

	prune(layer, 0, 2)
	first := append([]uint64(nil), layer[0].Connections...)

	prune(layer, 0, 2)
	assert.Equal(t, first, layer[0].Connections)
}
