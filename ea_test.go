package xcsf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEAShouldTriggerFiresOnlyPastThetaEA(t *testing.T) {
	p := testParams()
	p.ThetaEA = 10
	pop := newPopulation()
	c := newClassifier(p, 0)
	c.Cover(p, []float64{0.5}, 0, 0)
	pop.insert(c)
	s := &Set{Indices: []int{0}}

	assert.False(t, eaShouldTrigger(p, pop, s, 5))
	assert.True(t, eaShouldTrigger(p, pop, s, 20))
}

func TestEAShouldTriggerFalseOnEmptySet(t *testing.T) {
	p := testParams()
	pop := newPopulation()
	s := newSet()
	assert.False(t, eaShouldTrigger(p, pop, s, 1000))
}

func TestSelectParentRouletteFavoursFitterMembers(t *testing.T) {
	p := testParams()
	p.EASelectType = SelectRoulette
	pop := newPopulation()
	weak := newClassifier(p, 0)
	weak.Cover(p, []float64{0.5}, 0, 0)
	weak.Fit = 0.0001
	strong := newClassifier(p, 0)
	strong.Cover(p, []float64{0.5}, 0, 0)
	strong.Fit = 100
	pop.insert(weak)
	pop.insert(strong)
	s := &Set{Indices: []int{0, 1}}

	counts := map[int]int{}
	for i := 0; i < 200; i++ {
		counts[selectParent(p, pop, s)]++
	}
	assert.Greater(t, counts[1], counts[0])
}

func TestSelectParentTournamentAlwaysReturnsSetMember(t *testing.T) {
	p := testParams()
	p.EASelectType = SelectTournament
	p.EASelectSize = 0.5
	pop := newPopulation()
	for i := 0; i < 4; i++ {
		c := newClassifier(p, 0)
		c.Cover(p, []float64{0.5}, 0, 0)
		c.Fit = float64(i)
		pop.insert(c)
	}
	s := &Set{Indices: []int{0, 1, 2, 3}}
	for i := 0; i < 50; i++ {
		idx := selectParent(p, pop, s)
		assert.Contains(t, s.Indices, idx)
	}
}

func TestEAInsertsOffspringAndKeepsPopulationAtOrUnderCap(t *testing.T) {
	p := testParams()
	p.PopSize = 5
	p.ThetaEA = 0
	p.PCrossover = 1.0
	pop := newPopulation()
	c := newClassifier(p, 0)
	c.Cover(p, []float64{0.5}, 0, 0)
	c.Fit = 1
	pop.insert(c)
	s := &Set{Indices: []int{0}}
	k := newSet()

	ea(p, pop, s, 100, k)
	pop.killSweep(k)

	assert.LessOrEqual(t, pop.numSum(), p.PopSize)
}
