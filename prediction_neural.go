package xcsf

import (
	"io"

	"github.com/nguyensu/xcsf/neural"
)

// neuralPrediction delegates to a feed-forward neural.Network with y_dim
// linear outputs, trained online by one forward/backward/update step per
// Update call (spec §4.4).
type neuralPrediction struct {
	p       *Parameters
	net     *neural.Network
	lastOut []float64
}

func newNeuralPrediction(p *Parameters) *neuralPrediction {
	layers := make([]neural.Layer, 0, len(p.CondNeuralHidden)+1)
	for _, h := range p.CondNeuralHidden {
		layers = append(layers, neural.NewConnectedLayer(h, neural.ReLU))
	}
	layers = append(layers, neural.NewConnectedLayer(p.YDim, neural.Linear))
	return &neuralPrediction{p: p, net: neural.NewNetwork(p.XDim, p.RNG, layers...)}
}

func (pr *neuralPrediction) Compute(x []float64) {
	pr.lastOut = pr.net.Forward(x, false)
}

func (pr *neuralPrediction) Output() []float64 { return pr.lastOut }

func (pr *neuralPrediction) Update(x, yTrue []float64) {
	out := pr.net.Forward(x, true)
	grad := make([]float64, len(out))
	for i := range grad {
		grad[i] = out[i] - yTrue[i]
	}
	pr.net.Backward(grad)
	pr.net.Update(pr.p.PredNLMSEta)
	pr.lastOut = out
}

func (pr *neuralPrediction) Crossover(other Prediction) bool {
	o, ok := other.(*neuralPrediction)
	if !ok {
		return false
	}
	if pr.p.RNG.Float64() < 0.5 {
		pr.net, o.net = o.net, pr.net
		return true
	}
	return false
}

func (pr *neuralPrediction) Mutate() bool {
	pr.net.Mutate(pr.p.RNG)
	return true
}

func (pr *neuralPrediction) Copy() Prediction {
	return &neuralPrediction{p: pr.p, net: pr.net.Copy(), lastOut: append([]float64{}, pr.lastOut...)}
}

func (pr *neuralPrediction) Type() PredictionType { return PredNeural }

func (pr *neuralPrediction) WriteTo(w io.Writer) (int64, error) { return pr.net.WriteTo(w) }

func (pr *neuralPrediction) ReadFrom(r io.Reader) (int64, error) {
	pr.net = &neural.Network{}
	n, err := pr.net.ReadFrom(r)
	pr.lastOut = make([]float64, pr.p.YDim)
	return n, err
}
