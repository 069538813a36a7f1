package xcsf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPAWeightsByFitnessAndPicksBestMeanPayoff(t *testing.T) {
	p := testParams()
	p.NActions = 2
	p.YDim = 1
	p.PredictionType = PredConstant
	pop := newPopulation()

	low := newClassifier(p, 0)
	low.Cover(p, []float64{0.5}, 0, 0)
	low.Prediction.(*constantPrediction).W[0] = 0.2
	low.Fit = 1

	high := newClassifier(p, 0)
	high.Cover(p, []float64{0.5}, 1, 0)
	high.Prediction.(*constantPrediction).W[0] = 0.9
	high.Fit = 1

	pop.insert(low)
	pop.insert(high)
	m := &Set{Indices: []int{0, 1}}

	pa := buildPA(p, pop, m, []float64{0.5})

	assert.True(t, pa.Present[0])
	assert.True(t, pa.Present[1])
	assert.Equal(t, 1, pa.Best)
	assert.InDelta(t, 0.9, pa.Payoff, 1e-9)
}

func TestPAMaxPresentPanicsWhenNoActionPresent(t *testing.T) {
	pa := &PA{Best: -1}
	assert.Panics(t, func() { pa.maxPresent() })
}

func TestBuildPAFitnessWeightedAverageAcrossTwoMembersSameAction(t *testing.T) {
	p := testParams()
	p.NActions = 1
	p.YDim = 1
	p.PredictionType = PredConstant
	pop := newPopulation()

	a := newClassifier(p, 0)
	a.Cover(p, []float64{0.5}, 0, 0)
	a.Prediction.(*constantPrediction).W[0] = 1.0
	a.Fit = 1

	b := newClassifier(p, 0)
	b.Cover(p, []float64{0.5}, 0, 0)
	b.Prediction.(*constantPrediction).W[0] = 0.0
	b.Fit = 3

	pop.insert(a)
	pop.insert(b)
	m := &Set{Indices: []int{0, 1}}

	pa := buildPA(p, pop, m, []float64{0.5})
	assert.InDelta(t, 0.25, pa.Values[0][0], 1e-9)
}
