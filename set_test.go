package xcsf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCoversWhenPopulationIsEmpty(t *testing.T) {
	p := testParams()
	pop := newPopulation()
	m, k := newSet(), newSet()

	m.match(p, pop, []float64{0.5}, k, 0)

	assert.NotEmpty(t, m.Indices)
	assert.Equal(t, 1, pop.sizeMacro())
	for _, i := range m.Indices {
		assert.True(t, pop.Members[i].Condition.Match([]float64{0.5}))
	}
}

func TestMatchCoversEveryActionInReinforcementMode(t *testing.T) {
	p := testParams()
	p.NActions = 4
	pop := newPopulation()
	m, k := newSet(), newSet()

	m.match(p, pop, []float64{0.5}, k, 0)

	present := presentActions(pop, m)
	assert.Len(t, present, p.NActions)
}

func TestActionSetFiltersByActionValue(t *testing.T) {
	p := testParams()
	p.NActions = 3
	pop := newPopulation()
	m, k := newSet(), newSet()
	m.match(p, pop, []float64{0.5}, k, 0)

	a := pop.Members[m.Indices[0]].Action.Value()
	as := m.actionSet(pop, a)
	assert.NotEmpty(t, as.Indices)
	for _, i := range as.Indices {
		assert.Equal(t, a, pop.Members[i].Action.Value())
	}
}

func TestSetUpdateRaisesFitnessOfAccurateClassifiers(t *testing.T) {
	p := testParams()
	p.NActions = 1
	pop := newPopulation()
	m, k := newSet(), newSet()
	m.match(p, pop, []float64{0.5}, k, 0)

	before := pop.Members[m.Indices[0]].Fit
	for i := 0; i < 20; i++ {
		m.update(p, pop, []float64{0.5}, []float64{0.5})
	}
	after := pop.Members[m.Indices[0]].Fit
	assert.GreaterOrEqual(t, after, before)
}

func TestValidateMovesZeroNumerosityMembersIntoKillSet(t *testing.T) {
	pop := newPopulation()
	p := testParams()
	c1 := newClassifier(p, 0)
	c1.Cover(p, []float64{0.5}, 0, 0)
	c2 := newClassifier(p, 0)
	c2.Cover(p, []float64{0.5}, 0, 0)
	c2.Num = 0
	pop.insert(c1)
	pop.insert(c2)

	k := newSet()
	pop.validate(k)
	assert.Equal(t, []int{1}, k.Indices)
}

func TestSubsumeAbsorbsGeneralizedDuplicates(t *testing.T) {
	p := testParams()
	p.ConditionType = CondHyperrectangle
	p.ThetaSub = 0
	p.Eps0 = 10 // generous: any err qualifies.
	pop := newPopulation()

	general := newClassifier(p, 0)
	general.Cover(p, []float64{0.5}, 0, 0)
	general.Condition.(*hyperrectangleCondition).Spread[0] = 1.0
	general.Exp = 100

	specific := newClassifier(p, 0)
	specific.Cover(p, []float64{0.5}, 0, 0)
	specific.Condition.(*hyperrectangleCondition).Spread[0] = 0.01
	specific.Num = 3

	pop.insert(general)
	pop.insert(specific)

	s := &Set{Indices: []int{0, 1}}
	s.subsume(p, pop)

	assert.Equal(t, 4, general.Num)
	assert.Equal(t, 0, specific.Num)
}
