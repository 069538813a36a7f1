package xcsf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allPredictionTypes() []PredictionType {
	return []PredictionType{PredConstant, PredNLMS, PredRLS, PredNeural}
}

func TestEveryPredictionVariantLearnsAConstantTarget(t *testing.T) {
	for _, pt := range allPredictionTypes() {
		t.Run(predictionTypeName(pt), func(t *testing.T) {
			p := testParams()
			p.PredictionType = pt
			p.PredNLMSEta = 0.3
			pr := newPrediction(pt, p)
			x := []float64{0.5}
			y := []float64{0.8}

			var lastErr float64
			for i := 0; i < 500; i++ {
				pr.Update(x, y)
				pr.Compute(x)
				lastErr = y[0] - pr.Output()[0]
			}
			assert.Less(t, abs(lastErr), 0.1, "variant %s failed to converge", predictionTypeName(pt))
		})
	}
}

// TestConstantPredictionUpdateBlendsByBetaNotNLMSEta pins down
// pred_constant.c's warm-up formula: once the running-mean phase has
// passed (1/n below the fixed rate), the blend rate is Beta, never
// PredNLMSEta (spec §4.4). Beta and PredNLMSEta are set far apart so a
// regression that reads the wrong field produces a visibly different
// result.
func TestConstantPredictionUpdateBlendsByBetaNotNLMSEta(t *testing.T) {
	p := testParams()
	p.YDim = 1
	p.Beta = 0.25
	p.PredNLMSEta = 0.75

	pr := newPrediction(PredConstant, p).(*constantPrediction)
	pr.n = 1000 // past warm-up: 1/(n+1) << either rate.
	pr.W[0] = 0

	pr.Update([]float64{0}, []float64{1.0})

	assert.InDelta(t, 0.25, pr.W[0], 1e-9)
}

func TestEveryPredictionVariantRoundTripsThroughWriteReadFrom(t *testing.T) {
	for _, pt := range allPredictionTypes() {
		t.Run(predictionTypeName(pt), func(t *testing.T) {
			p := testParams()
			p.PredictionType = pt
			pr := newPrediction(pt, p)
			x := []float64{0.3}
			for i := 0; i < 5; i++ {
				pr.Update(x, []float64{0.6})
			}
			pr.Compute(x)
			want := append([]float64{}, pr.Output()...)

			var buf bytes.Buffer
			_, err := pr.WriteTo(&buf)
			assert.NoError(t, err)

			loaded := newPrediction(pt, p)
			_, err = loaded.ReadFrom(&buf)
			assert.NoError(t, err)
			loaded.Compute(x)
			assert.InDeltaSlice(t, want, loaded.Output(), 1e-9)
		})
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
