package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpersOnEmptyInput(t *testing.T) {
	assert.Zero(t, Mean(nil))
	assert.Zero(t, WeightedMean(nil, nil))
	assert.Zero(t, Sum(nil))
	assert.Zero(t, Min(nil))
	assert.Zero(t, Max(nil))
}

func TestWeightedMean(t *testing.T) {
	assert.InDelta(t, 2.5, WeightedMean([]float64{1, 3}, []float64{1, 3}), 1e-9)
	assert.InDelta(t, 2.0, WeightedMean([]float64{1, 3}, []float64{0, 0}), 1e-9)
	assert.InDelta(t, 2.0, WeightedMean([]float64{1, 3}, []float64{1}), 1e-9)
}

func TestMinMax(t *testing.T) {
	values := []float64{4, -1, 9, 2}
	assert.Equal(t, -1.0, Min(values))
	assert.Equal(t, 9.0, Max(values))
	assert.Equal(t, 14.0, Sum(values))
	assert.Equal(t, 3.5, Mean(values))
}
