package neural

import "io"

// NoiseLayer adds Gaussian noise to its input at train time and is the
// identity at inference, the simplest member of spec §4.11's catalog.
type NoiseLayer struct {
	Stdev float64

	width int
	rng   RNG
}

func (l *NoiseLayer) Init(inputWidth int, rng RNG) { l.width = inputWidth; l.rng = rng }

func (l *NoiseLayer) Forward(x []float64, train bool) []float64 {
	out := make([]float64, l.width)
	copy(out, x)
	if train {
		for i := range out {
			out[i] += l.rng.NormFloat64() * l.Stdev
		}
	}
	return out
}

func (l *NoiseLayer) Backward(outGrad []float64) []float64 {
	in := make([]float64, l.width)
	copy(in, outGrad)
	return in
}

func (l *NoiseLayer) Update(lr float64) {}

func (l *NoiseLayer) Mutate(rng RNG) bool {
	l.Stdev += (rng.Float64()*2 - 1) * 0.02
	if l.Stdev < 0 {
		l.Stdev = -l.Stdev
	}
	return false
}

func (l *NoiseLayer) Resize(newInputWidth int, rng RNG) { l.width = newInputWidth; l.rng = rng }
func (l *NoiseLayer) SetRNG(rng RNG)                    { l.rng = rng }

func (l *NoiseLayer) InputWidth() int  { return l.width }
func (l *NoiseLayer) OutputWidth() int { return l.width }

func (l *NoiseLayer) Copy() Layer { return &NoiseLayer{Stdev: l.Stdev, width: l.width, rng: l.rng} }

func (l *NoiseLayer) Type() LayerType { return Noise }

func (l *NoiseLayer) WriteTo(w io.Writer) (int64, error) {
	n1, err := writeInts(w, l.width)
	if err != nil {
		return n1, err
	}
	n2, err := writeFloats(w, []float64{l.Stdev})
	return n1 + n2, err
}

func (l *NoiseLayer) ReadFrom(r io.Reader) (int64, error) {
	vals, n1, err := readInts(r, 1)
	if err != nil {
		return n1, err
	}
	l.width = vals[0]
	sd, n2, err := readFloats(r)
	if err != nil {
		return n1 + n2, err
	}
	l.Stdev = sd[0]
	return n1 + n2, nil
}
