package neural

import "io"

// DropoutLayer drops each input with probability Prob at train time,
// scaling survivors by 1/(1-Prob); at inference it is the identity.
// Grounded verbatim on original_source/xcsf/neural_layer_dropout.c.
type DropoutLayer struct {
	Prob float64

	width int
	rng   RNG
	state []float64 // per-unit draw from the last Forward, for Backward's mask.
}

func (l *DropoutLayer) Init(inputWidth int, rng RNG) {
	l.width = inputWidth
	l.rng = rng
	l.state = make([]float64, inputWidth)
}

func (l *DropoutLayer) Forward(x []float64, train bool) []float64 {
	out := make([]float64, l.width)
	if !train {
		copy(out, x)
		return out
	}
	scale := 1 / (1 - l.Prob)
	for i := range x {
		l.state[i] = l.rng.Float64()
		if l.state[i] < l.Prob {
			out[i] = 0
		} else {
			out[i] = x[i] * scale
		}
	}
	return out
}

func (l *DropoutLayer) Backward(outGrad []float64) []float64 {
	scale := 1 / (1 - l.Prob)
	in := make([]float64, l.width)
	for i := range outGrad {
		if l.state[i] < l.Prob {
			in[i] = 0
		} else {
			in[i] = outGrad[i] * scale
		}
	}
	return in
}

func (l *DropoutLayer) Update(lr float64) {}

func (l *DropoutLayer) Mutate(rng RNG) bool {
	l.Prob = clamp01(l.Prob + (rng.Float64()*2-1)*0.05)
	return false
}

func (l *DropoutLayer) Resize(newInputWidth int, rng RNG) {
	l.width = newInputWidth
	l.rng = rng
	l.state = make([]float64, newInputWidth)
}

func (l *DropoutLayer) InputWidth() int  { return l.width }
func (l *DropoutLayer) OutputWidth() int { return l.width }

func (l *DropoutLayer) Copy() Layer {
	return &DropoutLayer{Prob: l.Prob, width: l.width, rng: l.rng, state: make([]float64, l.width)}
}

func (l *DropoutLayer) Type() LayerType { return Dropout }

func (l *DropoutLayer) WriteTo(w io.Writer) (int64, error) {
	n1, err := writeInts(w, l.width)
	if err != nil {
		return n1, err
	}
	n2, err := writeFloats(w, []float64{l.Prob})
	return n1 + n2, err
}

func (l *DropoutLayer) ReadFrom(r io.Reader) (int64, error) {
	vals, n1, err := readInts(r, 1)
	if err != nil {
		return n1, err
	}
	l.width = vals[0]
	probs, n2, err := readFloats(r)
	if err != nil {
		return n1 + n2, err
	}
	l.Prob = probs[0]
	l.state = make([]float64, l.width)
	return n1 + n2, nil
}

// SetRNG rewires the layer's random source after a Copy or ReadFrom, both
// of which cannot know which generator the network as a whole now uses.
func (l *DropoutLayer) SetRNG(rng RNG) { l.rng = rng }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
