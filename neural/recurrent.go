package neural

import (
	"io"

	"gonum.org/v1/gonum/mat"
)

// RecurrentLayer is an Elman-style layer: h' = act(Wx*x + Wh*h + b), output
// = h'. The hidden state persists across Forward calls within one
// classifier's lifetime and is reset on Copy (spec §4.11).
type RecurrentLayer struct {
	Activation Activation

	inW, hidW int
	Wx, Wh    *mat.Dense
	B         []float64
	hidden    []float64

	lastInput, lastHiddenPrev, lastOut []float64
	gradWx, gradWh                    *mat.Dense
	gradB                             []float64
}

// NewRecurrentLayer returns a layer with hidW hidden/output units.
func NewRecurrentLayer(hidW int, act Activation) *RecurrentLayer {
	return &RecurrentLayer{Activation: act, hidW: hidW}
}

func (l *RecurrentLayer) Init(inputWidth int, rng RNG) {
	l.inW = inputWidth
	l.Wx = randDense(l.hidW, l.inW, rng)
	l.Wh = randDense(l.hidW, l.hidW, rng)
	l.B = make([]float64, l.hidW)
	l.hidden = make([]float64, l.hidW)
	l.gradWx = mat.NewDense(l.hidW, l.inW, nil)
	l.gradWh = mat.NewDense(l.hidW, l.hidW, nil)
	l.gradB = make([]float64, l.hidW)
}

func randDense(rows, cols int, rng RNG) *mat.Dense {
	d := mat.NewDense(rows, cols, nil)
	scale := 1.0
	if cols > 0 {
		scale = 1 / float64(cols)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			d.Set(i, j, (rng.Float64()*2-1)*scale)
		}
	}
	return d
}

func (l *RecurrentLayer) Forward(x []float64, train bool) []float64 {
	l.lastInput = append(l.lastInput[:0], x...)
	l.lastHiddenPrev = append(l.lastHiddenPrev[:0], l.hidden...)
	xv := mat.NewVecDense(l.inW, x)
	hv := mat.NewVecDense(l.hidW, l.hidden)
	var a, b mat.VecDense
	a.MulVec(l.Wx, xv)
	b.MulVec(l.Wh, hv)
	out := make([]float64, l.hidW)
	for i := 0; i < l.hidW; i++ {
		out[i] = l.Activation.apply(a.AtVec(i) + b.AtVec(i) + l.B[i])
	}
	l.hidden = out
	l.lastOut = out
	return out
}

func (l *RecurrentLayer) Backward(outGrad []float64) []float64 {
	inGrad := make([]float64, l.inW)
	delta := make([]float64, l.hidW)
	for i := 0; i < l.hidW; i++ {
		delta[i] = outGrad[i] * l.Activation.derivative(l.lastOut[i])
		l.gradB[i] += delta[i]
		for j := 0; j < l.inW; j++ {
			l.gradWx.Set(i, j, l.gradWx.At(i, j)+delta[i]*l.lastInput[j])
			inGrad[j] += delta[i] * l.Wx.At(i, j)
		}
		for j := 0; j < l.hidW; j++ {
			l.gradWh.Set(i, j, l.gradWh.At(i, j)+delta[i]*l.lastHiddenPrev[j])
		}
	}
	return inGrad
}

func (l *RecurrentLayer) Update(lr float64) {
	for i := 0; i < l.hidW; i++ {
		l.B[i] -= lr * l.gradB[i]
		l.gradB[i] = 0
		for j := 0; j < l.inW; j++ {
			l.Wx.Set(i, j, l.Wx.At(i, j)-lr*l.gradWx.At(i, j))
			l.gradWx.Set(i, j, 0)
		}
		for j := 0; j < l.hidW; j++ {
			l.Wh.Set(i, j, l.Wh.At(i, j)-lr*l.gradWh.At(i, j))
			l.gradWh.Set(i, j, 0)
		}
	}
}

func (l *RecurrentLayer) Mutate(rng RNG) bool {
	perturbDense(l.Wx, rng)
	perturbDense(l.Wh, rng)
	for i := range l.B {
		l.B[i] += rng.NormFloat64() * 0.1
	}
	return false
}

func perturbDense(d *mat.Dense, rng RNG) {
	r, c := d.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d.Set(i, j, d.At(i, j)+rng.NormFloat64()*0.1)
		}
	}
}

func (l *RecurrentLayer) Resize(newInputWidth int, rng RNG) {
	nwx := mat.NewDense(l.hidW, newInputWidth, nil)
	cols := l.inW
	if newInputWidth < cols {
		cols = newInputWidth
	}
	for i := 0; i < l.hidW; i++ {
		for j := 0; j < cols; j++ {
			nwx.Set(i, j, l.Wx.At(i, j))
		}
		for j := cols; j < newInputWidth; j++ {
			nwx.Set(i, j, (rng.Float64()*2-1)/float64(newInputWidth+1))
		}
	}
	l.Wx = nwx
	l.inW = newInputWidth
	l.gradWx = mat.NewDense(l.hidW, l.inW, nil)
}

func (l *RecurrentLayer) InputWidth() int  { return l.inW }
func (l *RecurrentLayer) OutputWidth() int { return l.hidW }

func (l *RecurrentLayer) Copy() Layer {
	n := &RecurrentLayer{Activation: l.Activation, inW: l.inW, hidW: l.hidW}
	n.Wx, n.Wh = mat.DenseCopyOf(l.Wx), mat.DenseCopyOf(l.Wh)
	n.B = append([]float64{}, l.B...)
	n.hidden = make([]float64, l.hidW) // fresh state, per spec §4.11.
	n.gradWx = mat.NewDense(l.hidW, l.inW, nil)
	n.gradWh = mat.NewDense(l.hidW, l.hidW, nil)
	n.gradB = make([]float64, l.hidW)
	return n
}

func (l *RecurrentLayer) Type() LayerType { return Recurrent }

func (l *RecurrentLayer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeInts(w, l.inW, l.hidW, int(l.Activation))
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeFloats(w, denseFlat(l.Wx))
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeFloats(w, denseFlat(l.Wh))
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeFloats(w, l.B)
	total += n
	return total, err
}

func (l *RecurrentLayer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	vals, n, err := readInts(r, 3)
	total += n
	if err != nil {
		return total, err
	}
	l.inW, l.hidW, l.Activation = vals[0], vals[1], Activation(vals[2])
	wx, n, err := readFloats(r)
	total += n
	if err != nil {
		return total, err
	}
	wh, n, err := readFloats(r)
	total += n
	if err != nil {
		return total, err
	}
	l.B, n, err = readFloats(r)
	total += n
	l.Wx = denseFromFlat(l.hidW, l.inW, wx)
	l.Wh = denseFromFlat(l.hidW, l.hidW, wh)
	l.hidden = make([]float64, l.hidW)
	l.gradWx = mat.NewDense(l.hidW, l.inW, nil)
	l.gradWh = mat.NewDense(l.hidW, l.hidW, nil)
	l.gradB = make([]float64, l.hidW)
	return total, err
}

func denseFlat(d *mat.Dense) []float64 {
	r, c := d.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, d.At(i, j))
		}
	}
	return out
}

func denseFromFlat(r, c int, flat []float64) *mat.Dense {
	d := mat.NewDense(r, c, nil)
	k := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d.Set(i, j, flat[k])
			k++
		}
	}
	return d
}
