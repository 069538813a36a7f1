package neural

import "io"

// LayerType tags a layer's concrete kind; it doubles as the on-disk variant
// identifier (spec §9).
type LayerType uint8

const (
	Connected LayerType = iota
	Convolutional
	MaxPool
	AvgPool
	UpSample
	Dropout
	Noise
	Recurrent
	LSTM
	Softmax
)

// RNG is the minimal random source layers need (dropout masks, noise,
// mutation, weight init). It mirrors xcsf.RNG so a caller can share one
// generator across the engine and its neural substrate.
type RNG interface {
	Float64() float64
	Intn(n int) int
	NormFloat64() float64
}

// Layer is the capability every neural-substrate layer implements: forward
// evaluation, one backward/update training step, a mutation operator that
// may change its output width, and a Resize hook invoked when an upstream
// layer's output width changed (spec §4.11).
type Layer interface {
	// Init allocates the layer's parameters for the given input width.
	Init(inputWidth int, rng RNG)
	// Forward computes the layer's output for x, caching whatever state
	// Backward needs (the last input, any mask/index buffers).
	Forward(x []float64, train bool) []float64
	// Backward propagates the output gradient back to an input gradient,
	// accumulating this layer's own parameter gradients.
	Backward(outGrad []float64) []float64
	// Update applies one SGD step with the given learning rate, then
	// clears accumulated gradients.
	Update(lr float64)
	// Mutate perturbs the layer in place (weights, and for connected
	// layers, possibly its output width; no other layer type changes its
	// width). Returns whether the output width changed, so the network can
	// Resize the next layer.
	Mutate(rng RNG) (widthChanged bool)
	// Resize adapts the layer to a new input width after an upstream
	// layer's output width changed.
	Resize(newInputWidth int, rng RNG)
	// InputWidth / OutputWidth report the layer's current shape.
	InputWidth() int
	OutputWidth() int
	// Copy returns an independent copy.
	Copy() Layer
	// Type returns the variant tag.
	Type() LayerType
	io.WriterTo
	ReadFrom(r io.Reader) (int64, error)
}

// NewLayer constructs a zero-value layer of the given type, ready for Init
// or ReadFrom.
func NewLayer(t LayerType) Layer {
	switch t {
	case Connected:
		return &ConnectedLayer{Activation: ReLU}
	case Convolutional:
		return &ConvolutionalLayer{Activation: ReLU}
	case MaxPool:
		return &PoolLayer{mode: poolMax}
	case AvgPool:
		return &PoolLayer{mode: poolAvg}
	case UpSample:
		return &UpSampleLayer{}
	case Dropout:
		return &DropoutLayer{Prob: 0.2}
	case Noise:
		return &NoiseLayer{Stdev: 0.1}
	case Recurrent:
		return &RecurrentLayer{Activation: Tanh}
	case LSTM:
		return &LSTMLayer{}
	case Softmax:
		return &SoftmaxLayer{}
	default:
		panic("neural: unknown layer type")
	}
}
