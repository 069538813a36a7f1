package neural

import (
	"io"

	"gonum.org/v1/gonum/mat"
)

// ConnectedLayer is a dense layer: y = act(Wx + b). Grounded on spec
// §4.11's connected-layer entry; W is a gonum mat.Dense since the pack's
// only small-matrix algebra library is gonum (the teacher already depends
// on it for graph topology, and xcsf's RLS prediction for the same reason).
type ConnectedLayer struct {
	Activation Activation

	inW, outW int
	W         *mat.Dense // outW x inW
	B         []float64  // outW

	lastInput  []float64
	lastOutput []float64

	gradW *mat.Dense
	gradB []float64
}

// NewConnectedLayer returns a layer with outW outputs, ready for Init.
func NewConnectedLayer(outW int, act Activation) *ConnectedLayer {
	return &ConnectedLayer{Activation: act, outW: outW}
}

func (l *ConnectedLayer) Init(inputWidth int, rng RNG) {
	l.inW = inputWidth
	l.W = mat.NewDense(l.outW, l.inW, nil)
	l.B = make([]float64, l.outW)
	scale := 1.0
	if inputWidth > 0 {
		scale = 1.0 / float64(inputWidth)
	}
	for i := 0; i < l.outW; i++ {
		for j := 0; j < l.inW; j++ {
			l.W.Set(i, j, (rng.Float64()*2-1)*scale)
		}
	}
	l.gradW = mat.NewDense(l.outW, l.inW, nil)
	l.gradB = make([]float64, l.outW)
}

func (l *ConnectedLayer) Forward(x []float64, train bool) []float64 {
	l.lastInput = append(l.lastInput[:0], x...)
	xv := mat.NewVecDense(l.inW, x)
	var yv mat.VecDense
	yv.MulVec(l.W, xv)
	out := make([]float64, l.outW)
	for i := 0; i < l.outW; i++ {
		out[i] = l.Activation.apply(yv.AtVec(i) + l.B[i])
	}
	l.lastOutput = out
	return out
}

func (l *ConnectedLayer) Backward(outGrad []float64) []float64 {
	inGrad := make([]float64, l.inW)
	delta := make([]float64, l.outW)
	for i := 0; i < l.outW; i++ {
		delta[i] = outGrad[i] * l.Activation.derivative(l.lastOutput[i])
		l.gradB[i] += delta[i]
		for j := 0; j < l.inW; j++ {
			l.gradW.Set(i, j, l.gradW.At(i, j)+delta[i]*l.lastInput[j])
			inGrad[j] += delta[i] * l.W.At(i, j)
		}
	}
	return inGrad
}

func (l *ConnectedLayer) Update(lr float64) {
	for i := 0; i < l.outW; i++ {
		l.B[i] -= lr * l.gradB[i]
		l.gradB[i] = 0
		for j := 0; j < l.inW; j++ {
			l.W.Set(i, j, l.W.At(i, j)-lr*l.gradW.At(i, j))
			l.gradW.Set(i, j, 0)
		}
	}
}

// Mutate perturbs every weight with Gaussian noise and, with small
// probability, adds or removes one output unit (the width-changing
// mutation spec §4.11 names).
func (l *ConnectedLayer) Mutate(rng RNG) bool {
	for i := 0; i < l.outW; i++ {
		l.B[i] += rng.NormFloat64() * 0.1
		for j := 0; j < l.inW; j++ {
			l.W.Set(i, j, l.W.At(i, j)+rng.NormFloat64()*0.1)
		}
	}
	if rng.Float64() < 0.05 {
		l.addUnit(rng)
		return true
	}
	if l.outW > 1 && rng.Float64() < 0.05 {
		l.removeUnit(rng.Intn(l.outW))
		return true
	}
	return false
}

func (l *ConnectedLayer) addUnit(rng RNG) {
	row := make([]float64, l.inW)
	for j := range row {
		row[j] = (rng.Float64()*2 - 1) / float64(l.inW+1)
	}
	nw := mat.NewDense(l.outW+1, l.inW, nil)
	nw.Copy(l.W)
	for j, v := range row {
		nw.Set(l.outW, j, v)
	}
	l.W = nw
	l.B = append(l.B, 0)
	l.outW++
	l.gradW = mat.NewDense(l.outW, l.inW, nil)
	l.gradB = make([]float64, l.outW)
}

func (l *ConnectedLayer) removeUnit(idx int) {
	nw := mat.NewDense(l.outW-1, l.inW, nil)
	r := 0
	for i := 0; i < l.outW; i++ {
		if i == idx {
			continue
		}
		for j := 0; j < l.inW; j++ {
			nw.Set(r, j, l.W.At(i, j))
		}
		r++
	}
	l.B = append(l.B[:idx], l.B[idx+1:]...)
	l.W = nw
	l.outW--
	l.gradW = mat.NewDense(l.outW, l.inW, nil)
	l.gradB = make([]float64, l.outW)
}

// Resize rebuilds W's columns to match a new upstream output width,
// preserving existing columns and filling new ones with small random
// weights in (-1, 1)/(newInputWidth+1) (spec §9:
// downstream layers resize by reading the previous layer's output width).
func (l *ConnectedLayer) Resize(newInputWidth int, rng RNG) {
	if newInputWidth == l.inW {
		return
	}
	nw := mat.NewDense(l.outW, newInputWidth, nil)
	cols := l.inW
	if newInputWidth < cols {
		cols = newInputWidth
	}
	for i := 0; i < l.outW; i++ {
		for j := 0; j < cols; j++ {
			nw.Set(i, j, l.W.At(i, j))
		}
		for j := cols; j < newInputWidth; j++ {
			nw.Set(i, j, (rng.Float64()*2-1)/float64(newInputWidth+1))
		}
	}
	l.W = nw
	l.inW = newInputWidth
	l.gradW = mat.NewDense(l.outW, l.inW, nil)
}

func (l *ConnectedLayer) InputWidth() int  { return l.inW }
func (l *ConnectedLayer) OutputWidth() int { return l.outW }

func (l *ConnectedLayer) Copy() Layer {
	n := &ConnectedLayer{Activation: l.Activation, inW: l.inW, outW: l.outW}
	n.W = mat.NewDense(l.outW, l.inW, nil)
	n.W.Copy(l.W)
	n.B = append([]float64{}, l.B...)
	n.gradW = mat.NewDense(l.outW, l.inW, nil)
	n.gradB = make([]float64, l.outW)
	return n
}

func (l *ConnectedLayer) Type() LayerType { return Connected }

func (l *ConnectedLayer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeInts(w, l.inW, l.outW, int(l.Activation))
	total += n
	if err != nil {
		return total, err
	}
	flat := make([]float64, 0, l.inW*l.outW)
	for i := 0; i < l.outW; i++ {
		for j := 0; j < l.inW; j++ {
			flat = append(flat, l.W.At(i, j))
		}
	}
	n, err = writeFloats(w, flat)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeFloats(w, l.B)
	total += n
	return total, err
}

func (l *ConnectedLayer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	vals, n, err := readInts(r, 3)
	total += n
	if err != nil {
		return total, err
	}
	l.inW, l.outW, l.Activation = vals[0], vals[1], Activation(vals[2])
	flat, n, err := readFloats(r)
	total += n
	if err != nil {
		return total, err
	}
	l.W = mat.NewDense(l.outW, l.inW, nil)
	k := 0
	for i := 0; i < l.outW; i++ {
		for j := 0; j < l.inW; j++ {
			l.W.Set(i, j, flat[k])
			k++
		}
	}
	l.B, n, err = readFloats(r)
	total += n
	l.gradW = mat.NewDense(l.outW, l.inW, nil)
	l.gradB = make([]float64, l.outW)
	return total, err
}
