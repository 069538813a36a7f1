package neural

import "io"

type poolMode uint8

const (
	poolMax poolMode = iota
	poolAvg
)

// PoolLayer implements both MaxPool and AvgPool over a 1D window, grounded
// on original_source/xcsf/neural_layer_maxpool.c's size/stride windowing
// collapsed from 2D to 1D: xcsf's inputs here are flat feature vectors, not
// images, so the height dimension the original carries is fixed at 1.
type PoolLayer struct {
	mode   poolMode
	Size   int
	Stride int

	inW, outW int
	argmax    []int // per-output-unit index of the window max, MaxPool only.
	lastInput []float64
}

func (l *PoolLayer) Init(inputWidth int, rng RNG) {
	if l.Size <= 0 {
		l.Size = 2
	}
	if l.Stride <= 0 {
		l.Stride = l.Size
	}
	l.inW = inputWidth
	l.outW = (inputWidth-l.Size)/l.Stride + 1
	if l.outW < 1 {
		l.outW = 1
	}
	l.argmax = make([]int, l.outW)
}

func (l *PoolLayer) Forward(x []float64, train bool) []float64 {
	l.lastInput = append(l.lastInput[:0], x...)
	out := make([]float64, l.outW)
	for o := 0; o < l.outW; o++ {
		start := o * l.Stride
		end := start + l.Size
		if end > len(x) {
			end = len(x)
		}
		switch l.mode {
		case poolMax:
			best := start
			bestV := x[start]
			for i := start + 1; i < end; i++ {
				if x[i] > bestV {
					bestV = x[i]
					best = i
				}
			}
			out[o] = bestV
			l.argmax[o] = best
		case poolAvg:
			sum := 0.0
			for i := start; i < end; i++ {
				sum += x[i]
			}
			out[o] = sum / float64(end-start)
		}
	}
	return out
}

func (l *PoolLayer) Backward(outGrad []float64) []float64 {
	in := make([]float64, l.inW)
	for o, g := range outGrad {
		switch l.mode {
		case poolMax:
			in[l.argmax[o]] += g
		case poolAvg:
			start := o * l.Stride
			end := start + l.Size
			if end > l.inW {
				end = l.inW
			}
			share := g / float64(end-start)
			for i := start; i < end; i++ {
				in[i] += share
			}
		}
	}
	return in
}

func (l *PoolLayer) Update(lr float64) {}

func (l *PoolLayer) Mutate(rng RNG) bool { return false } // pooling has no weights to mutate.

func (l *PoolLayer) Resize(newInputWidth int, rng RNG) { l.Init(newInputWidth, rng) }

func (l *PoolLayer) InputWidth() int  { return l.inW }
func (l *PoolLayer) OutputWidth() int { return l.outW }

func (l *PoolLayer) Copy() Layer {
	n := &PoolLayer{mode: l.mode, Size: l.Size, Stride: l.Stride, inW: l.inW, outW: l.outW}
	n.argmax = append([]int{}, l.argmax...)
	return n
}

func (l *PoolLayer) Type() LayerType {
	if l.mode == poolMax {
		return MaxPool
	}
	return AvgPool
}

func (l *PoolLayer) WriteTo(w io.Writer) (int64, error) {
	return writeInts(w, int(l.mode), l.Size, l.Stride, l.inW, l.outW)
}

func (l *PoolLayer) ReadFrom(r io.Reader) (int64, error) {
	vals, n, err := readInts(r, 5)
	if err != nil {
		return n, err
	}
	l.mode, l.Size, l.Stride, l.inW, l.outW = poolMode(vals[0]), vals[1], vals[2], vals[3], vals[4]
	l.argmax = make([]int, l.outW)
	return n, nil
}
