package xcsf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSaveLoadRoundTripProducesIdenticalPredictions is fixture 6: a trained
// engine snapshotted and reloaded predicts identically to the original.
func TestSaveLoadRoundTripProducesIdenticalPredictions(t *testing.T) {
	p := DefaultParameters(1, 1, 1)
	p.RNG = NewRNG(7)
	p.PopSize = 40
	p.MaxTrials = 300
	p.ConditionType = CondHyperrectangle
	p.PredictionType = PredConstant

	rng := NewRNG(2)
	n := 200
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

	probe := [][]float64{{0.1}, {0.4}, {0.9}}
	before, err := engine.Predict(probe)
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snap.bin")
	assert.NoError(t, engine.Save(path))

	reloaded, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, len(engine.Pop.Members), len(reloaded.Pop.Members))

	after, err := reloaded.Predict(probe)
	assert.NoError(t, err)
	for i := range before {
		assert.InDeltaSlice(t, before[i], after[i], 1e-9)
	}
}

func TestLoadRejectsFileWithoutMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	assert.NoError(t, os.WriteFile(path, []byte("not-a-snapshot-file"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
	var xerr *Error
	assert.ErrorAs(t, err, &xerr)
	assert.Equal(t, ErrPersistence, xerr.Category)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	assert.Error(t, err)
	var xerr *Error
	assert.ErrorAs(t, err, &xerr)
	assert.Equal(t, ErrPersistence, xerr.Category)
}
