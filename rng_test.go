package xcsf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRNGIsDeterministicForAGivenSeed(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestRNGChildIsIndependentStream(t *testing.T) {
	r := NewRNG(7)
	c1 := r.Child()
	c2 := r.Child()
	var same = true
	for i := 0; i < 10; i++ {
		if c1.Float64() != c2.Float64() {
			same = false
			break
		}
	}
	assert.False(t, same)
}

func TestUniformStaysInRange(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 200; i++ {
		v := uniform(r, -2, 3)
		assert.GreaterOrEqual(t, v, -2.0)
		assert.Less(t, v, 3.0)
	}
}

func TestRouletteAlwaysPicksAPresentWeight(t *testing.T) {
	r := NewRNG(3)
	weights := []float64{0, 0, 5, 0}
	for i := 0; i < 50; i++ {
		idx := roulette(r, weights)
		assert.Equal(t, 2, idx)
	}
}

func TestRouletteFallsBackToUniformWhenAllZero(t *testing.T) {
	r := NewRNG(3)
	weights := []float64{0, 0, 0}
	idx := roulette(r, weights)
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 3)
}
