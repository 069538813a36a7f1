package neural

import (
	"io"
	"math"
)

// SoftmaxLayer is a numerically-stabilised softmax, used as an optional
// output layer for neural actions choosing among n_actions (spec §4.11).
type SoftmaxLayer struct {
	width     int
	lastOut   []float64
}

func (l *SoftmaxLayer) Init(inputWidth int, rng RNG) { l.width = inputWidth }

func (l *SoftmaxLayer) Forward(x []float64, train bool) []float64 {
	max := x[0]
	for _, v := range x[1:] {
		if v > max {
			max = v
		}
	}
	out := make([]float64, l.width)
	sum := 0.0
	for i, v := range x {
		out[i] = math.Exp(v - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	l.lastOut = out
	return out
}

// Backward applies the softmax Jacobian-vector product: dL/dx_i =
// sum_j dL/dy_j * y_i*(delta_ij - y_j).
func (l *SoftmaxLayer) Backward(outGrad []float64) []float64 {
	in := make([]float64, l.width)
	for i := range in {
		sum := 0.0
		for j := range outGrad {
			delta := 0.0
			if i == j {
				delta = 1
			}
			sum += outGrad[j] * l.lastOut[i] * (delta - l.lastOut[j])
		}
		in[i] = sum
	}
	return in
}

func (l *SoftmaxLayer) Update(lr float64)       {}
func (l *SoftmaxLayer) Mutate(rng RNG) bool     { return false }
func (l *SoftmaxLayer) Resize(w int, rng RNG)   { l.width = w }
func (l *SoftmaxLayer) InputWidth() int         { return l.width }
func (l *SoftmaxLayer) OutputWidth() int        { return l.width }
func (l *SoftmaxLayer) Copy() Layer             { return &SoftmaxLayer{width: l.width} }
func (l *SoftmaxLayer) Type() LayerType         { return Softmax }

func (l *SoftmaxLayer) WriteTo(w io.Writer) (int64, error) { return writeInts(w, l.width) }

func (l *SoftmaxLayer) ReadFrom(r io.Reader) (int64, error) {
	vals, n, err := readInts(r, 1)
	if err != nil {
		return n, err
	}
	l.width = vals[0]
	return n, nil
}
