package neural

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testRNG struct{ r *rand.Rand }

func newTestRNG(seed int64) RNG { return &testRNG{r: rand.New(rand.NewSource(seed))} }

func (t *testRNG) Float64() float64     { return t.r.Float64() }
func (t *testRNG) Intn(n int) int       { return t.r.Intn(n) }
func (t *testRNG) NormFloat64() float64 { return t.r.NormFloat64() }

func TestConnectedLayerForwardShape(t *testing.T) {
	rng := newTestRNG(1)
	l := NewConnectedLayer(3, ReLU)
	l.Init(4, rng)
	out := l.Forward([]float64{1, 2, 3, 4}, false)
	assert.Len(t, out, 3)
}

func TestConnectedLayerTrainsTowardTarget(t *testing.T) {
	rng := newTestRNG(2)
	l := NewConnectedLayer(1, Linear)
	l.Init(2, rng)
	x := []float64{0.5, -0.25}
	target := 1.0

	var lastErr float64
	for i := 0; i < 200; i++ {
		out := l.Forward(x, true)
		e := target - out[0]
		lastErr = e
		l.Backward([]float64{-e})
		l.Update(0.1)
	}
	assert.Less(t, abs(lastErr), 0.05)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestNetworkForwardChainsLayerWidths(t *testing.T) {
	rng := newTestRNG(3)
	net := NewNetwork(4, rng,
		NewConnectedLayer(5, ReLU),
		NewConnectedLayer(2, Sigmoid),
	)
	assert.Equal(t, 2, net.OutputWidth())
	out := net.Forward([]float64{1, 2, 3, 4}, false)
	assert.Len(t, out, 2)
	for _, v := range out {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestNetworkWriteToReadFromRoundTrip(t *testing.T) {
	rng := newTestRNG(4)
	net := NewNetwork(3, rng,
		NewConnectedLayer(4, ReLU),
		NewConnectedLayer(2, Linear),
	)
	x := []float64{0.1, 0.2, 0.3}
	want := net.Forward(x, false)

	var buf bytes.Buffer
	_, err := net.WriteTo(&buf)
	assert.NoError(t, err)

	var loaded Network
	_, err = loaded.ReadFrom(&buf)
	assert.NoError(t, err)

	got := loaded.Forward(x, false)
	assert.InDeltaSlice(t, want, got, 1e-9)
}

func TestNetworkMutateResizesDownstreamLayer(t *testing.T) {
	rng := newTestRNG(5)
	net := NewNetwork(3, rng,
		NewConnectedLayer(4, ReLU),
		NewConnectedLayer(2, Linear),
	)
	for i := 0; i < 50; i++ {
		net.Mutate(rng)
		assert.Equal(t, net.Layers[0].OutputWidth(), net.Layers[1].InputWidth())
	}
}
