package xcsf

import (
	"io"

	"github.com/nguyensu/xcsf/neural"
)

// neuralAction chooses its fixed action by feeding x through a small
// network with one output per allowed action and taking the argmax (spec
// §4.3); like integerAction the choice is made once, at Cover time, and
// held fixed thereafter.
type neuralAction struct {
	p     *Parameters
	net   *neural.Network
	value int
}

func newNeuralAction(p *Parameters) *neuralAction { return &neuralAction{p: p} }

func buildActionNetwork(p *Parameters, nOut int, rng RNG) *neural.Network {
	layers := make([]neural.Layer, 0, len(p.CondNeuralHidden)+2)
	for _, h := range p.CondNeuralHidden {
		layers = append(layers, neural.NewConnectedLayer(h, neural.ReLU))
	}
	layers = append(layers, neural.NewConnectedLayer(nOut, neural.Linear))
	layers = append(layers, &neural.SoftmaxLayer{})
	return neural.NewNetwork(p.XDim, rng, layers...)
}

func (a *neuralAction) Cover(x []float64, allowed []int) {
	a.net = buildActionNetwork(a.p, len(allowed), a.p.RNG)
	out := a.net.Forward(x, false)
	best := 0
	for i, v := range out {
		if v > out[best] {
			best = i
		}
	}
	a.value = allowed[best]
}

func (a *neuralAction) Value() int { return a.value }

func (a *neuralAction) Crossover(other Action) bool {
	o, ok := other.(*neuralAction)
	if !ok {
		return false
	}
	if a.p.RNG.Float64() < 0.5 {
		a.net, o.net = o.net, a.net
		a.value, o.value = o.value, a.value
		return true
	}
	return false
}

func (a *neuralAction) Mutate() bool {
	a.net.Mutate(a.p.RNG)
	return true
}

func (a *neuralAction) Copy() Action {
	return &neuralAction{p: a.p, net: a.net.Copy(), value: a.value}
}

func (a *neuralAction) Type() ActionType { return ActionNeural }

func (a *neuralAction) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeInt64(w, int64(a.value))
	total += n
	if err != nil {
		return total, err
	}
	n, err = a.net.WriteTo(w)
	total += n
	return total, err
}

func (a *neuralAction) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	v, n, err := readInt64(r)
	total += n
	if err != nil {
		return total, err
	}
	a.value = int(v)
	a.net = &neural.Network{}
	n, err = a.net.ReadFrom(r)
	total += n
	return total, err
}
