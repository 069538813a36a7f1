package xcsf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFitLearnsALinearTarget is fixture 1 from the testable-properties list,
// scaled down to a trial count a unit test can afford: y = 2*x0 + 0.5 with a
// hyperrectangle condition and constant prediction.
func TestFitLearnsALinearTarget(t *testing.T) {
	p := DefaultParameters(1, 1, 1)
	p.RNG = NewRNG(99)
	p.PopSize = 50
	p.MaxTrials = 2000
	p.ConditionType = CondHyperrectangle
	p.PredictionType = PredConstant

	rng := NewRNG(1)
	n := 500
	train := &Dataset{X: make([][]float64, n), Y: make([][]float64, n)}
	for i := 0; i < n; i++ {
		x0 := rng.Float64()
		train.X[i] = []float64{x0}
		train.Y[i] = []float64{2*x0 + 0.5}
	}

	engine, err := New(p)
	assert.NoError(t, err)
	_, err = engine.Fit(train, nil, true)
	assert.NoError(t, err)

	score, err := engine.Score(train)
	assert.NoError(t, err)
	assert.Less(t, score, 0.2)
	assert.LessOrEqual(t, engine.Pop.numSum(), p.PopSize)
}

func TestPredictRejectsWrongDimensionInput(t *testing.T) {
	p := DefaultParameters(2, 1, 1)
	engine, err := New(p)
	assert.NoError(t, err)
	_, err = engine.Predict([][]float64{{1}})
	assert.Error(t, err)
	var xerr *Error
	assert.ErrorAs(t, err, &xerr)
	assert.Equal(t, ErrRuntime, xerr.Category)
}

func TestStepUpdateRoundTripDrivesOneRLTrial(t *testing.T) {
	p := DefaultParameters(1, 1, 2)
	p.RNG = NewRNG(5)
	p.PopSize = 30
	engine, err := New(p)
	assert.NoError(t, err)

	a, err := engine.Step([]float64{0.3})
	assert.NoError(t, err)
	assert.Contains(t, []int{0, 1}, a)

	err = engine.Update(1.0, true, nil)
	assert.NoError(t, err)
	assert.LessOrEqual(t, engine.Pop.numSum(), p.PopSize)
}

func TestStepBeforeUpdateIsCompletedIsRejected(t *testing.T) {
	p := DefaultParameters(1, 1, 2)
	engine, err := New(p)
	assert.NoError(t, err)
	_, err = engine.Step([]float64{0.1})
	assert.NoError(t, err)
	_, err = engine.Step([]float64{0.1})
	assert.Error(t, err)
}

func TestMazeLikeRLLoopConverges(t *testing.T) {
	// A tiny one-dimensional "corridor" maze: state is position in [0,1],
	// two actions (step left/right by 0.2), reward 1 on reaching >=1.
	p := DefaultParameters(1, 1, 2)
	p.RNG = NewRNG(11)
	p.PopSize = 100
	p.Gamma = 0.9
	engine, err := New(p)
	assert.NoError(t, err)

	step := func(pos float64, action int) (float64, float64, bool) {
		if action == 1 {
			pos += 0.2
		} else {
			pos -= 0.2
		}
		pos = math.Max(0, math.Min(1, pos))
		if pos >= 1 {
			return pos, 1, true
		}
		return pos, 0, false
	}

	for episode := 0; episode < 300; episode++ {
		pos := 0.0
		for stepsTaken := 0; stepsTaken < 20; stepsTaken++ {
			action, err := engine.Step([]float64{pos})
			assert.NoError(t, err)
			next, reward, done := step(pos, action)
			err = engine.Update(reward, done, []float64{next})
			assert.NoError(t, err)
			pos = next
			if done {
				break
			}
		}
	}
	assert.LessOrEqual(t, engine.Pop.numSum(), p.PopSize)
}
