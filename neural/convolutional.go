package neural

import "io"

// ConvolutionalLayer is a single-channel 1D cross-correlation (xcsf's
// inputs are flat feature vectors, so the original's 2D im2col machinery
// is unneeded — spec §4.11 defers full layer arithmetic to "standard").
// Filters int them one bank of Size-wide kernels, stride Stride, no
// padding.
type ConvolutionalLayer struct {
	Activation Activation
	NFilters   int
	Size       int
	Stride     int

	inW, outW int
	kernels   [][]float64 // NFilters x Size
	bias      []float64

	lastInput []float64
	lastOut   []float64
}

func (l *ConvolutionalLayer) Init(inputWidth int, rng RNG) {
	if l.NFilters <= 0 {
		l.NFilters = 4
	}
	if l.Size <= 0 {
		l.Size = 3
	}
	if l.Stride <= 0 {
		l.Stride = 1
	}
	l.inW = inputWidth
	positions := (inputWidth-l.Size)/l.Stride + 1
	if positions < 1 {
		positions = 1
	}
	l.outW = positions * l.NFilters
	l.kernels = make([][]float64, l.NFilters)
	for f := range l.kernels {
		k := make([]float64, l.Size)
		for j := range k {
			k[j] = (rng.Float64()*2 - 1) / float64(l.Size)
		}
		l.kernels[f] = k
	}
	l.bias = make([]float64, l.NFilters)
}

func (l *ConvolutionalLayer) positions() int { return l.outW / l.NFilters }

func (l *ConvolutionalLayer) Forward(x []float64, train bool) []float64 {
	l.lastInput = append(l.lastInput[:0], x...)
	pos := l.positions()
	out := make([]float64, l.outW)
	idx := 0
	for f := 0; f < l.NFilters; f++ {
		k := l.kernels[f]
		for p := 0; p < pos; p++ {
			start := p * l.Stride
			sum := l.bias[f]
			for j := 0; j < l.Size && start+j < len(x); j++ {
				sum += k[j] * x[start+j]
			}
			out[idx] = l.Activation.apply(sum)
			idx++
		}
	}
	l.lastOut = out
	return out
}

// Backward accumulates kernel/bias gradients directly into the kernel/bias
// slices scaled by a fixed small step, since ConvolutionalLayer has no
// persistent gradient accumulator (it is intended to be adapted primarily
// by Mutate, matching how XCSF's neural conditions are evolved rather than
// gradient-trained in the original).
func (l *ConvolutionalLayer) Backward(outGrad []float64) []float64 {
	pos := l.positions()
	inGrad := make([]float64, l.inW)
	idx := 0
	const lr = 0.01
	for f := 0; f < l.NFilters; f++ {
		k := l.kernels[f]
		for p := 0; p < pos; p++ {
			g := outGrad[idx] * l.Activation.derivative(l.lastOut[idx])
			start := p * l.Stride
			for j := 0; j < l.Size && start+j < l.inW; j++ {
				inGrad[start+j] += g * k[j]
				k[j] -= lr * g * l.lastInput[start+j]
			}
			l.bias[f] -= lr * g
			idx++
		}
	}
	return inGrad
}

func (l *ConvolutionalLayer) Update(lr float64) {} // gradient applied directly in Backward.

func (l *ConvolutionalLayer) Mutate(rng RNG) bool {
	for _, k := range l.kernels {
		for j := range k {
			k[j] += rng.NormFloat64() * 0.1
		}
	}
	for i := range l.bias {
		l.bias[i] += rng.NormFloat64() * 0.1
	}
	return false
}

func (l *ConvolutionalLayer) Resize(newInputWidth int, rng RNG) { l.Init(newInputWidth, rng) }

func (l *ConvolutionalLayer) InputWidth() int  { return l.inW }
func (l *ConvolutionalLayer) OutputWidth() int { return l.outW }

func (l *ConvolutionalLayer) Copy() Layer {
	n := &ConvolutionalLayer{Activation: l.Activation, NFilters: l.NFilters, Size: l.Size, Stride: l.Stride, inW: l.inW, outW: l.outW}
	n.kernels = make([][]float64, len(l.kernels))
	for i, k := range l.kernels {
		n.kernels[i] = append([]float64{}, k...)
	}
	n.bias = append([]float64{}, l.bias...)
	return n
}

func (l *ConvolutionalLayer) Type() LayerType { return Convolutional }

func (l *ConvolutionalLayer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeInts(w, int(l.Activation), l.NFilters, l.Size, l.Stride, l.inW, l.outW)
	total += n
	if err != nil {
		return total, err
	}
	flat := make([]float64, 0, l.NFilters*l.Size)
	for _, k := range l.kernels {
		flat = append(flat, k...)
	}
	n, err = writeFloats(w, flat)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeFloats(w, l.bias)
	total += n
	return total, err
}

func (l *ConvolutionalLayer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	vals, n, err := readInts(r, 6)
	total += n
	if err != nil {
		return total, err
	}
	l.Activation, l.NFilters, l.Size, l.Stride, l.inW, l.outW = Activation(vals[0]), vals[1], vals[2], vals[3], vals[4], vals[5]
	flat, n, err := readFloats(r)
	total += n
	if err != nil {
		return total, err
	}
	l.kernels = make([][]float64, l.NFilters)
	for f := range l.kernels {
		l.kernels[f] = append([]float64{}, flat[f*l.Size:(f+1)*l.Size]...)
	}
	l.bias, n, err = readFloats(r)
	total += n
	return total, err
}
