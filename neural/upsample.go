package neural

import "io"

// UpSampleLayer replicates each input Stride times (nearest-neighbour),
// the shape-inverse of PoolLayer (spec §4.11).
type UpSampleLayer struct {
	Stride int

	inW, outW int
}

func (l *UpSampleLayer) Init(inputWidth int, rng RNG) {
	if l.Stride <= 0 {
		l.Stride = 2
	}
	l.inW = inputWidth
	l.outW = inputWidth * l.Stride
}

func (l *UpSampleLayer) Forward(x []float64, train bool) []float64 {
	out := make([]float64, l.outW)
	for i, v := range x {
		for s := 0; s < l.Stride; s++ {
			out[i*l.Stride+s] = v
		}
	}
	return out
}

func (l *UpSampleLayer) Backward(outGrad []float64) []float64 {
	in := make([]float64, l.inW)
	for i := range in {
		sum := 0.0
		for s := 0; s < l.Stride; s++ {
			sum += outGrad[i*l.Stride+s]
		}
		in[i] = sum
	}
	return in
}

func (l *UpSampleLayer) Update(lr float64) {}

func (l *UpSampleLayer) Mutate(rng RNG) bool { return false }

func (l *UpSampleLayer) Resize(newInputWidth int, rng RNG) { l.Init(newInputWidth, rng) }

func (l *UpSampleLayer) InputWidth() int  { return l.inW }
func (l *UpSampleLayer) OutputWidth() int { return l.outW }

func (l *UpSampleLayer) Copy() Layer {
	return &UpSampleLayer{Stride: l.Stride, inW: l.inW, outW: l.outW}
}

func (l *UpSampleLayer) Type() LayerType { return UpSample }

func (l *UpSampleLayer) WriteTo(w io.Writer) (int64, error) {
	return writeInts(w, l.Stride, l.inW, l.outW)
}

func (l *UpSampleLayer) ReadFrom(r io.Reader) (int64, error) {
	vals, n, err := readInts(r, 3)
	if err != nil {
		return n, err
	}
	l.Stride, l.inW, l.outW = vals[0], vals[1], vals[2]
	return n, nil
}
