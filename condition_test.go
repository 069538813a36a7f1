package xcsf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allConditionTypes() []ConditionType {
	return []ConditionType{CondDummy, CondHyperrectangle, CondEllipsoid, CondTernary, CondNeural, CondDGP, CondGPTree}
}

func TestEveryConditionVariantCoversAndMatches(t *testing.T) {
	for _, ct := range allConditionTypes() {
		t.Run(conditionTypeName(ct), func(t *testing.T) {
			p := testParams()
			p.ConditionType = ct
			cond := newCondition(ct, p)
			x := []float64{0.42}
			cond.Cover(x)
			assert.True(t, cond.Match(x), "variant %s must match its own cover input", conditionTypeName(ct))
		})
	}
}

func TestEveryConditionVariantRoundTripsThroughWriteReadFrom(t *testing.T) {
	for _, ct := range allConditionTypes() {
		t.Run(conditionTypeName(ct), func(t *testing.T) {
			p := testParams()
			p.ConditionType = ct
			cond := newCondition(ct, p)
			x := []float64{0.7}
			cond.Cover(x)

			var buf bytes.Buffer
			_, err := cond.WriteTo(&buf)
			assert.NoError(t, err)

			loaded := newCondition(ct, p)
			_, err = loaded.ReadFrom(&buf)
			assert.NoError(t, err)
			assert.Equal(t, cond.Match(x), loaded.Match(x))
		})
	}
}

func TestEveryConditionVariantCopyIsIndependent(t *testing.T) {
	for _, ct := range allConditionTypes() {
		t.Run(conditionTypeName(ct), func(t *testing.T) {
			p := testParams()
			p.ConditionType = ct
			cond := newCondition(ct, p)
			cond.Cover([]float64{0.1})
			cp := cond.Copy()
			cp.Mutate()
			cp.Mutate()
			cp.Mutate()
			// cond itself keeps matching its own covered point regardless of
			// how many times the independent copy mutates.
			assert.True(t, cond.Match([]float64{0.1}))
		})
	}
}

func TestHyperrectangleGeneralImpliesBroaderMatch(t *testing.T) {
	p := testParams()
	p.ConditionType = CondHyperrectangle
	a := newHyperrectangleCondition(p)
	a.Centre[0], a.Spread[0] = 0.5, 0.4
	b := newHyperrectangleCondition(p)
	b.Centre[0], b.Spread[0] = 0.5, 0.1

	assert.True(t, a.General(b))
	for _, x := range []float64{0.42, 0.48, 0.55, 0.59} {
		if b.Match([]float64{x}) {
			assert.True(t, a.Match([]float64{x}), "x=%v matched by b but not by more-general a", x)
		}
	}
}

func TestTernaryGeneralRequiresStrictlyMoreWildcards(t *testing.T) {
	p := testParams()
	p.XDim = 1
	p.CondTernaryBits = 2
	general := newTernaryCondition(p)
	general.Bits = []uint8{ternaryWildcard, 1}
	specific := newTernaryCondition(p)
	specific.Bits = []uint8{0, 1}

	assert.True(t, general.General(specific))
	assert.False(t, specific.General(general))
}
