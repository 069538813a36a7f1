package neural

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolLayerMaxAndAvg(t *testing.T) {
	rng := newTestRNG(10)
	maxL := &PoolLayer{mode: poolMax, Size: 2, Stride: 2}
	maxL.Init(4, rng)
	out := maxL.Forward([]float64{1, 5, 2, 2}, false)
	assert.Equal(t, []float64{5, 2}, out)

	avgL := &PoolLayer{mode: poolAvg, Size: 2, Stride: 2}
	avgL.Init(4, rng)
	out = avgL.Forward([]float64{1, 3, 2, 2}, false)
	assert.Equal(t, []float64{2, 2}, out)
}

func TestSoftmaxLayerSumsToOne(t *testing.T) {
	l := &SoftmaxLayer{}
	l.Init(3, newTestRNG(11))
	out := l.Forward([]float64{1, 2, 3}, false)
	sum := 0.0
	for _, v := range out {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestDropoutIdentityAtInference(t *testing.T) {
	l := &DropoutLayer{Prob: 0.5}
	l.Init(4, newTestRNG(12))
	x := []float64{1, 2, 3, 4}
	out := l.Forward(x, false)
	assert.Equal(t, x, out)
}

func TestNewLayerRoundTripsEveryType(t *testing.T) {
	types := []LayerType{Connected, Convolutional, MaxPool, AvgPool, UpSample, Dropout, Noise, Recurrent, LSTM, Softmax}
	for _, lt := range types {
		l := NewLayer(lt)
		assert.Equal(t, lt, l.Type())
	}
}
