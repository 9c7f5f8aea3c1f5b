package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMADZScoreConstantInputIsZero(t *testing.T) {
	z := MADZScore([]float64{5, 5, 5, 5})
	for _, v := range z {
		assert.Equal(t, 0.0, v)
	}
}

func TestMADZScoreClipsToRange(t *testing.T) {
	z := MADZScore([]float64{1, 2, 3, 4, 5, 1000})
	for _, v := range z {
		assert.LessOrEqual(t, v, 3.0)
		assert.GreaterOrEqual(t, v, -3.0)
	}
}

func TestMADZScoreEmpty(t *testing.T) {
	assert.Empty(t, MADZScore(nil))
}

func TestMADZScoreKnownValues(t *testing.T) {
	// median=3, deviations {2,1,0,1,2}, MAD=1
	x := []float64{1, 2, 3, 4, 5}
	z := MADZScore(x)
	expected := (1.0 - 3.0) / 1.4826
	assert.InDelta(t, expected, z[0], 1e-9)
	assert.InDelta(t, 0.0, z[2], 1e-9)
}

func TestEntropyUniformTwoBuckets(t *testing.T) {
	h := Entropy([]float64{100, 100})
	assert.InDelta(t, 1.0, h, 1e-9)
}

func TestEntropySingleBucket(t *testing.T) {
	h := Entropy([]float64{42})
	assert.InDelta(t, 0.0, h, 1e-9)
}

func TestEntropyZeroWeights(t *testing.T) {
	assert.Equal(t, 0.0, Entropy([]float64{0, 0, 0}))
	assert.Equal(t, 0.0, Entropy(nil))
}

func TestSafeLog1p(t *testing.T) {
	assert.InDelta(t, 0.0, SafeLog1p(0), 1e-12)
	assert.Equal(t, 0.0, SafeLog1p(-1))
	assert.Equal(t, 0.0, SafeLog1p(-5))
}

func TestMedianEvenOdd(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{1, 2, 3, 4, 5}))
	assert.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}))
	assert.Equal(t, 0.0, Median(nil))
}
