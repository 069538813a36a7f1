package xcsf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allActionTypes() []ActionType { return []ActionType{ActionInteger, ActionNeural} }

func TestEveryActionVariantCoversWithinAllowedSet(t *testing.T) {
	allowed := []int{1, 3, 5}
	for _, at := range allActionTypes() {
		p := testParams()
		p.NActions = 6
		p.ActionType = at
		a := newAction(at, p)
		a.Cover([]float64{0.4}, allowed)
		assert.Contains(t, allowed, a.Value())
	}
}

func TestEveryActionVariantRoundTripsThroughWriteReadFrom(t *testing.T) {
	for _, at := range allActionTypes() {
		p := testParams()
		p.ActionType = at
		a := newAction(at, p)
		a.Cover([]float64{0.4}, []int{0})

		var buf bytes.Buffer
		_, err := a.WriteTo(&buf)
		assert.NoError(t, err)

		loaded := newAction(at, p)
		_, err = loaded.ReadFrom(&buf)
		assert.NoError(t, err)
		assert.Equal(t, a.Value(), loaded.Value())
	}
}

func TestIntegerActionCrossoverIsANoOp(t *testing.T) {
	p := testParams()
	p.NActions = 4
	a := newIntegerAction(p)
	a.Cover([]float64{0.1}, []int{1})
	b := newIntegerAction(p)
	b.Cover([]float64{0.1}, []int{2})

	for i := 0; i < 20; i++ {
		changed := a.Crossover(b)
		assert.False(t, changed)
		assert.Equal(t, 1, a.value)
		assert.Equal(t, 2, b.value)
	}
}

func TestIntegerActionMutateStaysWithinRange(t *testing.T) {
	p := testParams()
	p.PMutation = 1.0
	p.NActions = 3
	a := newIntegerAction(p)
	a.Cover([]float64{0.1}, []int{0})
	for i := 0; i < 20; i++ {
		a.Mutate()
		assert.GreaterOrEqual(t, a.Value(), 0)
		assert.Less(t, a.Value(), 3)
	}
}
