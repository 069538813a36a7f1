package xcsf

import (
	"io"

	"gonum.org/v1/gonum/mat"
)

// rlsPrediction is a linear model whose weights are trained online by
// recursive least squares: a Sherman-Morrison rank-1 update keeps the
// inverse covariance matrix current without ever inverting a matrix (spec
// §4.4). `gonum.org/v1/gonum/mat.Dense` is the only small-matrix library
// in the pack and the teacher already depends on it for graph topology.
type rlsPrediction struct {
	p       *Parameters
	W       [][]float64 // y_dim x (x_dim+1)
	P       *mat.Dense  // (x_dim+1) x (x_dim+1) inverse covariance, shared across outputs
	lastOut []float64
}

func newRLSPrediction(p *Parameters) *rlsPrediction {
	n := p.XDim + 1
	w := make([][]float64, p.YDim)
	for i := range w {
		w[i] = make([]float64, n)
	}
	pm := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		pm.Set(i, i, p.PredRLSEpsilonInit)
	}
	return &rlsPrediction{p: p, W: w, P: pm, lastOut: make([]float64, p.YDim)}
}

func (pr *rlsPrediction) augment(x []float64) []float64 {
	z := make([]float64, len(x)+1)
	copy(z, x)
	z[len(x)] = 1
	return z
}

func (pr *rlsPrediction) Compute(x []float64) {
	z := pr.augment(x)
	for i, row := range pr.W {
		sum := 0.0
		for j, v := range z {
			sum += row[j] * v
		}
		pr.lastOut[i] = sum
	}
}

func (pr *rlsPrediction) Update(x, yTrue []float64) {
	pr.Compute(x)
	n := len(x) + 1
	z := mat.NewVecDense(n, pr.augment(x))

	var pz mat.VecDense
	pz.MulVec(pr.P, z)
	denom := pr.p.PredRLSLambda + mat.Dot(z, &pz)
	if denom == 0 {
		denom = 1e-9
	}
	k := mat.NewVecDense(n, nil)
	k.ScaleVec(1/denom, &pz)

	for i, row := range pr.W {
		e := yTrue[i] - pr.lastOut[i]
		for j := 0; j < n; j++ {
			row[j] += k.AtVec(j) * e
		}
	}

	var outer mat.Dense
	outer.Outer(1, k, &pz) // P is symmetric, so z^T*P == (P*z)^T == pz^T.
	pr.P.Sub(pr.P, &outer)
	pr.P.Scale(1/pr.p.PredRLSLambda, pr.P)
}

func (pr *rlsPrediction) Output() []float64 { return pr.lastOut }

func (pr *rlsPrediction) Crossover(other Prediction) bool {
	o, ok := other.(*rlsPrediction)
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

func (pr *rlsPrediction) Mutate() bool {
	changed := false
	for i := range pr.W {
		for j := range pr.W[i] {
			if pr.p.RNG.Float64() < 0.1 {
				pr.W[i][j] += gaussian(pr.p.RNG, 0, 0.01)
				changed = true
			}
		}
	}
	return changed
}

func (pr *rlsPrediction) Copy() Prediction {
	n := newRLSPrediction(pr.p)
	for i := range pr.W {
		copy(n.W[i], pr.W[i])
	}
	n.P = mat.DenseCopyOf(pr.P)
	return n
}

func (pr *rlsPrediction) Type() PredictionType { return PredRLS }

func (pr *rlsPrediction) WriteTo(w io.Writer) (int64, error) {
	var total int64
	flat := make([]float64, 0, len(pr.W)*len(pr.W[0]))
	for _, row := range pr.W {
		flat = append(flat, row...)
	}
	n, err := writeFloat64Slice(w, flat)
	total += n
	if err != nil {
		return total, err
	}
	dim, _ := pr.P.Dims()
	pFlat := make([]float64, 0, dim*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			pFlat = append(pFlat, pr.P.At(i, j))
		}
	}
	n, err = writeFloat64Slice(w, pFlat)
	total += n
	return total, err
}

func (pr *rlsPrediction) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	flat, n, err := readFloat64Slice(r)
	total += n
	if err != nil {
		return total, err
	}
	cols := pr.p.XDim + 1
	for i := range pr.W {
		pr.W[i] = append([]float64{}, flat[i*cols:(i+1)*cols]...)
	}
	pFlat, n, err := readFloat64Slice(r)
	total += n
	if err != nil {
		return total, err
	}
	dim := pr.p.XDim + 1
	pr.P = mat.NewDense(dim, dim, nil)
	k := 0
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			pr.P.Set(i, j, pFlat[k])
			k++
		}
	}
	return total, nil
}
