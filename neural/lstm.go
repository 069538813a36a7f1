package neural

import (
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LSTMLayer is the four-gate recurrence over a persisted hidden/cell state
// (spec §4.11). Forward implements the standard equations; Backward is a
// per-timestep truncation (no backprop-through-time across trials), which
// suffices for the online, one-sample-at-a-time training the trial
// orchestrators perform.
type LSTMLayer struct {
	inW, hidW int

	Wf, Wi, Wc, Wo *mat.Dense // each hidW x (inW+hidW)
	Bf, Bi, Bc, Bo []float64

	hidden, cell []float64

	// cache from the last Forward, for Backward.
	lastZ                        []float64 // concat(x, hPrev)
	f, i, cbar, o, cNew, tanhC []float64
}

func (l *LSTMLayer) Init(inputWidth int, rng RNG) {
	l.inW = inputWidth
	n := inputWidth + l.hidW
	l.Wf, l.Wi, l.Wc, l.Wo = randDense(l.hidW, n, rng), randDense(l.hidW, n, rng), randDense(l.hidW, n, rng), randDense(l.hidW, n, rng)
	l.Bf, l.Bi, l.Bc, l.Bo = make([]float64, l.hidW), make([]float64, l.hidW), make([]float64, l.hidW), make([]float64, l.hidW)
	l.hidden = make([]float64, l.hidW)
	l.cell = make([]float64, l.hidW)
}

func sigmoidv(v float64) float64 { return 1 / (1 + math.Exp(-v)) }

func (l *LSTMLayer) Forward(x []float64, train bool) []float64 {
	n := l.inW + l.hidW
	z := make([]float64, n)
	copy(z, x)
	copy(z[l.inW:], l.hidden)
	l.lastZ = z

	zv := mat.NewVecDense(n, z)
	l.f = gateApply(l.Wf, zv, l.Bf, sigmoidv)
	l.i = gateApply(l.Wi, zv, l.Bi, sigmoidv)
	l.cbar = gateApply(l.Wc, zv, l.Bc, math.Tanh)
	l.o = gateApply(l.Wo, zv, l.Bo, sigmoidv)

	cNew := make([]float64, l.hidW)
	tanhC := make([]float64, l.hidW)
	out := make([]float64, l.hidW)
	for k := 0; k < l.hidW; k++ {
		cNew[k] = l.f[k]*l.cell[k] + l.i[k]*l.cbar[k]
		tanhC[k] = math.Tanh(cNew[k])
		out[k] = l.o[k] * tanhC[k]
	}
	l.cNew, l.tanhC = cNew, tanhC
	l.cell = cNew
	l.hidden = out
	return out
}

func gateApply(w *mat.Dense, z *mat.VecDense, b []float64, act func(float64) float64) []float64 {
	r, _ := w.Dims()
	var y mat.VecDense
	y.MulVec(w, z)
	out := make([]float64, r)
	for k := 0; k < r; k++ {
		out[k] = act(y.AtVec(k) + b[k])
	}
	return out
}

// Backward applies a single-timestep truncated gradient: it treats the
// carried hidden/cell state as constant with respect to this step's loss,
// which is exact for a layer trained one online sample at a time.
func (l *LSTMLayer) Backward(outGrad []float64) []float64 {
	n := l.inW + l.hidW
	inGrad := make([]float64, n)
	for k := 0; k < l.hidW; k++ {
		dOut := outGrad[k]
		dO := dOut * l.tanhC[k] * l.o[k] * (1 - l.o[k])
		dC := dOut * l.o[k] * (1 - l.tanhC[k]*l.tanhC[k])
		dF := dC * l.cell[k] * l.f[k] * (1 - l.f[k])
		dI := dC * l.cbar[k] * l.i[k] * (1 - l.i[k])
		dCbar := dC * l.i[k] * (1 - l.cbar[k]*l.cbar[k])
		for j := 0; j < n; j++ {
			inGrad[j] += dF*l.Wf.At(k, j) + dI*l.Wi.At(k, j) + dCbar*l.Wc.At(k, j) + dO*l.Wo.At(k, j)
		}
	}
	return inGrad[:l.inW]
}

func (l *LSTMLayer) Update(lr float64) {} // truncated gradient not accumulated; mutation drives adaptation.

func (l *LSTMLayer) Mutate(rng RNG) bool {
	for _, w := range []*mat.Dense{l.Wf, l.Wi, l.Wc, l.Wo} {
		perturbDense(w, rng)
	}
	return false
}

func (l *LSTMLayer) Resize(newInputWidth int, rng RNG) {
	l.inW = newInputWidth
	l.Init(newInputWidth, rng)
}

func (l *LSTMLayer) InputWidth() int  { return l.inW }
func (l *LSTMLayer) OutputWidth() int { return l.hidW }

func (l *LSTMLayer) Copy() Layer {
	n := &LSTMLayer{inW: l.inW, hidW: l.hidW}
	n.Wf, n.Wi, n.Wc, n.Wo = mat.DenseCopyOf(l.Wf), mat.DenseCopyOf(l.Wi), mat.DenseCopyOf(l.Wc), mat.DenseCopyOf(l.Wo)
	n.Bf, n.Bi, n.Bc, n.Bo = append([]float64{}, l.Bf...), append([]float64{}, l.Bi...), append([]float64{}, l.Bc...), append([]float64{}, l.Bo...)
	n.hidden = make([]float64, l.hidW)
	n.cell = make([]float64, l.hidW)
	return n
}

func (l *LSTMLayer) Type() LayerType { return LSTM }

func (l *LSTMLayer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeInts(w, l.inW, l.hidW)
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range []*mat.Dense{l.Wf, l.Wi, l.Wc, l.Wo} {
		n, err = writeFloats(w, denseFlat(d))
		total += n
		if err != nil {
			return total, err
		}
	}
	for _, b := range [][]float64{l.Bf, l.Bi, l.Bc, l.Bo} {
		n, err = writeFloats(w, b)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (l *LSTMLayer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	vals, n, err := readInts(r, 2)
	total += n
	if err != nil {
		return total, err
	}
	l.inW, l.hidW = vals[0], vals[1]
	dims := l.inW + l.hidW
	ws := make([]*mat.Dense, 4)
	for idx := range ws {
		flat, n2, err2 := readFloats(r)
		total += n2
		if err2 != nil {
			return total, err2
		}
		ws[idx] = denseFromFlat(l.hidW, dims, flat)
	}
	l.Wf, l.Wi, l.Wc, l.Wo = ws[0], ws[1], ws[2], ws[3]
	bs := make([][]float64, 4)
	for idx := range bs {
		b, n2, err2 := readFloats(r)
		total += n2
		if err2 != nil {
			return total, err2
		}
		bs[idx] = b
	}
	l.Bf, l.Bi, l.Bc, l.Bo = bs[0], bs[1], bs[2], bs[3]
	l.hidden = make([]float64, l.hidW)
	l.cell = make([]float64, l.hidW)
	return total, nil
}
