package xcsf

import (
	"io"

	"github.com/nguyensu/xcsf/neural"
)

// neuralCondition gates match by the output of a small feed-forward
// network: x matches iff the single output unit exceeds 0.5 (spec §4.2).
type neuralCondition struct {
	p   *Parameters
	net *neural.Network
}

func newNeuralCondition(p *Parameters) *neuralCondition {
	return &neuralCondition{p: p, net: buildScalarNetwork(p, p.RNG)}
}

// buildScalarNetwork builds an x_dim -> hidden layers -> 1 feed-forward
// network with sigmoid output, the shape the neural condition/action
// variants share.
func buildScalarNetwork(p *Parameters, rng RNG) *neural.Network {
	layers := make([]neural.Layer, 0, len(p.CondNeuralHidden)+1)
	for _, h := range p.CondNeuralHidden {
		layers = append(layers, neural.NewConnectedLayer(h, neural.ReLU))
	}
	layers = append(layers, neural.NewConnectedLayer(1, neural.Sigmoid))
	return neural.NewNetwork(p.XDim, rng, layers...)
}

// Cover rebuilds the network at random, then nudges the output bias so it
// matches x, satisfying Condition.Cover's contract.
func (c *neuralCondition) Cover(x []float64) {
	c.net = buildScalarNetwork(c.p, c.p.RNG)
	out := c.net.Forward(x, false)
	last := c.net.Layers[len(c.net.Layers)-1].(*neural.ConnectedLayer)
	for out[0] <= 0.5 {
		last.B[0] += 4 // raises the output pre-activation until the sigmoid passes 0.5.
		out = c.net.Forward(x, false)
	}
}

func (c *neuralCondition) Match(x []float64) bool {
	out := c.net.Forward(x, false)
	return out[0] > 0.5
}

func (c *neuralCondition) Crossover(other Condition) bool {
	o, ok := other.(*neuralCondition)
	if !ok {
		return false
	}
	if c.p.RNG.Float64() < 0.5 {
		c.net, o.net = o.net, c.net
		return true
	}
	return false
}

func (c *neuralCondition) Mutate() bool {
	c.net.Mutate(c.p.RNG)
	return true
}

// General is unsupported for an opaque network condition: no ordering over
// two arbitrary networks is computable, so EA/set subsumption involving
// this variant never fires.
func (c *neuralCondition) General(other Condition) bool { return false }

func (c *neuralCondition) Copy() Condition {
	return &neuralCondition{p: c.p, net: c.net.Copy()}
}

func (c *neuralCondition) Type() ConditionType { return CondNeural }

func (c *neuralCondition) WriteTo(w io.Writer) (int64, error) { return c.net.WriteTo(w) }

func (c *neuralCondition) ReadFrom(r io.Reader) (int64, error) {
	c.net = &neural.Network{}
	return c.net.ReadFrom(r)
}
