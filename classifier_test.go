package xcsf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testParams() *Parameters {
	p := DefaultParameters(1, 1, 1)
	p.RNG = NewRNG(123)
	return p
}

func TestClassifierCoverMatchesItsInput(t *testing.T) {
	p := testParams()
	c := newClassifier(p, 0)
	x := []float64{0.5}
	c.Cover(p, x, 0, 0)
	assert.True(t, c.Condition.Match(x))
	assert.Equal(t, 1, c.Num)
	assert.Equal(t, 0, c.Exp)
}

func TestClassifierCopyIsIndependent(t *testing.T) {
	p := testParams()
	c := newClassifier(p, 0)
	c.Cover(p, []float64{0.2}, 0, 0)
	cp := c.Copy()
	cp.Err = 99
	cp.Num = 42
	assert.NotEqual(t, c.Err, cp.Err)
	assert.NotEqual(t, c.Num, cp.Num)
	assert.NotEqual(t, c.ID, cp.ID)
}

func TestClassifierUpdateIncreasesExperienceAndTracksError(t *testing.T) {
	p := testParams()
	c := newClassifier(p, 0)
	c.Cover(p, []float64{0.5}, 0, 0)
	for i := 0; i < 10; i++ {
		c.Update(p, []float64{0.5}, []float64{1.0}, 1)
	}
	assert.Equal(t, 10, c.Exp)
	assert.GreaterOrEqual(t, c.Err, 0.0)
}

func TestClassifierAccIsOneBelowEps0(t *testing.T) {
	p := testParams()
	c := newClassifier(p, 0)
	c.Err = p.Eps0 / 2
	assert.Equal(t, 1.0, c.Acc(p))
}

func TestClassifierSubsumesRequiresExperienceAccuracyAndGenerality(t *testing.T) {
	p := testParams()
	p.ConditionType = CondHyperrectangle

	parent := newClassifier(p, 0)
	parent.Cover(p, []float64{0.5}, 0, 0)
	parent.Exp = int(p.ThetaSub)
	parent.Err = 0
	hc := parent.Condition.(*hyperrectangleCondition)
	hc.Spread[0] = 1.0

	child := newClassifier(p, 0)
	child.Cover(p, []float64{0.5}, 0, 0)
	childHC := child.Condition.(*hyperrectangleCondition)
	childHC.Spread[0] = 0.01

	assert.True(t, parent.Subsumes(p, child))
	assert.False(t, child.Subsumes(p, parent))
}

func TestClassifierWriteToReadFromRoundTrip(t *testing.T) {
	p := testParams()
	c := newClassifier(p, 5)
	c.Cover(p, []float64{0.3}, 0, 5)
	c.Update(p, []float64{0.3}, []float64{0.7}, 1)

	var buf bytes.Buffer
	_, err := c.writeTo(&buf)
	assert.NoError(t, err)

	got, _, err := readClassifier(&buf, p)
	assert.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.Err, got.Err)
	assert.Equal(t, c.Fit, got.Fit)
	assert.Equal(t, c.Num, got.Num)
	assert.Equal(t, c.Action.Value(), got.Action.Value())
}
