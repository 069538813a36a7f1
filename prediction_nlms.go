package xcsf

import (
	"io"

	"gonum.org/v1/gonum/floats"
)

// nlmsPrediction is a linear model with an explicit bias term (the last
// weight column), trained online by normalised least mean squares (spec
// §4.4). `gonum.org/v1/gonum/floats` provides the input-norm dot product.
type nlmsPrediction struct {
	p       *Parameters
	W       [][]float64 // y_dim x (x_dim+1)
	lastOut []float64
}

func newNLMSPrediction(p *Parameters) *nlmsPrediction {
	w := make([][]float64, p.YDim)
	for i := range w {
		w[i] = make([]float64, p.XDim+1)
	}
	return &nlmsPrediction{p: p, W: w, lastOut: make([]float64, p.YDim)}
}

func (pr *nlmsPrediction) Compute(x []float64) {
	for i, row := range pr.W {
		sum := row[len(row)-1]
		for j, v := range x {
			sum += row[j] * v
		}
		pr.lastOut[i] = sum
	}
}

func (pr *nlmsPrediction) Output() []float64 { return pr.lastOut }

// Update applies one normalised-LMS step: the step size is scaled down by
// the squared input norm (plus the bias's implicit unit input) so a single
// update cannot overshoot regardless of x's magnitude.
func (pr *nlmsPrediction) Update(x, yTrue []float64) {
	pr.Compute(x)
	norm := floats.Dot(x, x) + 1
	if norm <= 0 {
		norm = 1
	}
	eta := pr.p.PredNLMSEta
	for i, row := range pr.W {
		e := yTrue[i] - pr.lastOut[i]
		step := eta * e / norm
		for j := range x {
			row[j] += step * x[j]
		}
		row[len(row)-1] += step
	}
}

func (pr *nlmsPrediction) Crossover(other Prediction) bool {
	o, ok := other.(*nlmsPrediction)
	if !ok {
		return false
	}
	changed := false
	for i := range pr.W {
		for j := range pr.W[i] {
			if pr.p.RNG.Float64() < 0.5 {
				pr.W[i][j], o.W[i][j] = o.W[i][j], pr.W[i][j]
				changed = true
			}
		}
	}
	return changed
}

func (pr *nlmsPrediction) Mutate() bool {
	changed := false
	for i := range pr.W {
		for j := range pr.W[i] {
			if pr.p.RNG.Float64() < 0.1 {
				pr.W[i][j] += gaussian(pr.p.RNG, 0, pr.p.PredNLMSEta)
				changed = true
			}
		}
	}
	return changed
}

func (pr *nlmsPrediction) Copy() Prediction {
	n := newNLMSPrediction(pr.p)
	for i := range pr.W {
		copy(n.W[i], pr.W[i])
	}
	return n
}

func (pr *nlmsPrediction) Type() PredictionType { return PredNLMS }

func (pr *nlmsPrediction) WriteTo(w io.Writer) (int64, error) {
	var total int64
	flat := make([]float64, 0, len(pr.W)*len(pr.W[0]))
	for _, row := range pr.W {
		flat = append(flat, row...)
	}
	n, err := writeFloat64Slice(w, flat)
	total += n
	return total, err
}

func (pr *nlmsPrediction) ReadFrom(r io.Reader) (int64, error) {
	flat, n, err := readFloat64Slice(r)
	if err != nil {
		return n, err
	}
	cols := pr.p.XDim + 1
	for i := range pr.W {
		pr.W[i] = append([]float64{}, flat[i*cols:(i+1)*cols]...)
	}
	return n, nil
}
