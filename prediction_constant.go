package xcsf

import "io"

// constantPrediction predicts a fixed y_dim vector, updated online toward
// yTrue by a blend that starts as a plain running mean and transitions to
// a fixed-rate exponential moving average once enough samples have been
// seen. Grounded verbatim on pred_constant.c's warm-up formula (spec
// §4.4).
type constantPrediction struct {
	p *Parameters
	W []float64
	n int64
}

func newConstantPrediction(p *Parameters) *constantPrediction {
	return &constantPrediction{p: p, W: make([]float64, p.YDim)}
}

func (pr *constantPrediction) Compute(x []float64) {}

func (pr *constantPrediction) Output() []float64 { return pr.W }

func (pr *constantPrediction) Update(x, yTrue []float64) {
	pr.n++
	eta := pr.p.Beta
	if inv := 1 / float64(pr.n); inv > eta {
		eta = inv
	}
	for i := range pr.W {
		pr.W[i] += eta * (yTrue[i] - pr.W[i])
	}
}

func (pr *constantPrediction) Crossover(other Prediction) bool {
	o, ok := other.(*constantPrediction)
	if !ok {
		return false
	}
	changed := false
	for i := range pr.W {
		if pr.p.RNG.Float64() < 0.5 {
			pr.W[i], o.W[i] = o.W[i], pr.W[i]
			changed = true
		}
	}
	return changed
}

func (pr *constantPrediction) Mutate() bool {
	changed := false
	for i := range pr.W {
		if pr.p.RNG.Float64() < 0.5 {
			pr.W[i] += gaussian(pr.p.RNG, 0, pr.p.PredNLMSEta)
			changed = true
		}
	}
	return changed
}

func (pr *constantPrediction) Copy() Prediction {
	n := newConstantPrediction(pr.p)
	copy(n.W, pr.W)
	n.n = pr.n
	return n
}

func (pr *constantPrediction) Type() PredictionType { return PredConstant }

func (pr *constantPrediction) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeFloat64Slice(w, pr.W)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeInt64(w, pr.n)
	total += n
	return total, err
}

func (pr *constantPrediction) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	ws, n, err := readFloat64Slice(r)
	total += n
	if err != nil {
		return total, err
	}
	pr.W = ws
	pr.n, n, err = readInt64(r)
	total += n
	return total, err
}
