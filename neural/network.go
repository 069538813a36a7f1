package neural

import (
	"fmt"
	"io"
)

// Network is an ordered stack of layers, each reading the previous layer's
// output width rather than holding a back-pointer to it (spec §9's layout
// note). It is the substrate xcsf's neural condition/action/prediction
// variants delegate to.
type Network struct {
	Layers []Layer
	inW    int
}

// NewNetwork builds a network for the given input width. Each layer in
// layers is Init'd against the running output width, so the caller only
// needs to set each layer's own shape parameters (OutputWidth for
// ConnectedLayer/RecurrentLayer, Stride for pooling, etc.) before calling.
func NewNetwork(inputWidth int, rng RNG, layers ...Layer) *Network {
	n := &Network{Layers: layers, inW: inputWidth}
	w := inputWidth
	for _, l := range layers {
		l.Init(w, rng)
		w = l.OutputWidth()
	}
	return n
}

func (n *Network) InputWidth() int { return n.inW }

func (n *Network) OutputWidth() int {
	if len(n.Layers) == 0 {
		return n.inW
	}
	return n.Layers[len(n.Layers)-1].OutputWidth()
}

// Forward runs x through every layer in order.
func (n *Network) Forward(x []float64, train bool) []float64 {
	out := x
	for _, l := range n.Layers {
		out = l.Forward(out, train)
	}
	return out
}

// Backward propagates outGrad back through every layer in reverse, without
// calling Update — callers that want a gradient step call Update
// separately so multiple Backward passes can accumulate first.
func (n *Network) Backward(outGrad []float64) []float64 {
	grad := outGrad
	for i := len(n.Layers) - 1; i >= 0; i-- {
		grad = n.Layers[i].Backward(grad)
	}
	return grad
}

// Update applies one SGD step with lr to every layer.
func (n *Network) Update(lr float64) {
	for _, l := range n.Layers {
		l.Update(lr)
	}
}

// Mutate calls Mutate on every layer and, whenever a layer's output width
// changes, Resizes every downstream layer so its input width stays
// consistent (the one consumer of the "no back-pointers" layout: a changed
// layer's neighbour is simply the next slice element).
func (n *Network) Mutate(rng RNG) {
	w := n.inW
	for i, l := range n.Layers {
		changed := l.Mutate(rng)
		if changed || l.InputWidth() != w {
			l.Resize(w, rng)
		}
		newW := l.OutputWidth()
		if i+1 < len(n.Layers) && n.Layers[i+1].InputWidth() != newW {
			n.Layers[i+1].Resize(newW, rng)
		}
		w = newW
	}
}

// Copy returns a network with independent copies of every layer.
func (n *Network) Copy() *Network {
	layers := make([]Layer, len(n.Layers))
	for i, l := range n.Layers {
		layers[i] = l.Copy()
	}
	return &Network{Layers: layers, inW: n.inW}
}

func (n *Network) WriteTo(w io.Writer) (int64, error) {
	var total int64
	nn, err := writeInts(w, n.inW, len(n.Layers))
	total += nn
	if err != nil {
		return total, err
	}
	for _, l := range n.Layers {
		nn, err = writeInts(w, int(l.Type()))
		total += nn
		if err != nil {
			return total, err
		}
		nn2, err2 := l.WriteTo(w)
		total += nn2
		if err2 != nil {
			return total, err2
		}
	}
	return total, nil
}

func (n *Network) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	vals, nn, err := readInts(r, 2)
	total += nn
	if err != nil {
		return total, err
	}
	n.inW = vals[0]
	nLayers := vals[1]
	n.Layers = make([]Layer, nLayers)
	for i := 0; i < nLayers; i++ {
		tv, nn2, err2 := readInts(r, 1)
		total += nn2
		if err2 != nil {
			return total, err2
		}
		if tv[0] < 0 || tv[0] > int(Softmax) {
			return total, fmt.Errorf("neural: invalid layer type tag %d", tv[0])
		}
		l := NewLayer(LayerType(tv[0]))
		nn3, err3 := l.ReadFrom(r)
		total += nn3
		if err3 != nil {
			return total, err3
		}
		n.Layers[i] = l
	}
	return total, nil
}
