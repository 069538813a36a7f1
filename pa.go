package xcsf

// PA is the prediction array built over a match set: for each action, the
// fitness-weighted average of every matching classifier's prediction
// output, plus the single best action by mean predicted payoff (spec §4.7).
type PA struct {
	Values  [][]float64 // n_actions x y_dim
	Present []bool      // n_actions
	Best    int
	Payoff  float64
}

// buildPA computes the prediction array for match set m over input x
// (spec §4.7).
func buildPA(p *Parameters, pop *Population, m *Set, x []float64) *PA {
	pa := &PA{
		Values:  make([][]float64, p.NActions),
		Present: make([]bool, p.NActions),
	}
	for a := range pa.Values {
		pa.Values[a] = make([]float64, p.YDim)
	}
	weight := make([]float64, p.NActions)

	for _, i := range m.Indices {
		c := pop.Members[i]
		a := c.Action.Value()
		if a < 0 || a >= p.NActions {
			continue
		}
		c.Prediction.Compute(x)
		out := c.Prediction.Output()
		pa.Present[a] = true
		for d := 0; d < p.YDim; d++ {
			pa.Values[a][d] += out[d] * c.Fit
		}
		weight[a] += c.Fit
	}

	for a := range pa.Values {
		if weight[a] > 0 {
			for d := range pa.Values[a] {
				pa.Values[a][d] /= weight[a]
			}
		}
	}

	pa.Best = -1
	for a := range pa.Values {
		if !pa.Present[a] {
			continue
		}
		mean := meanOf(pa.Values[a])
		if pa.Best == -1 || mean > pa.Payoff {
			pa.Best = a
			pa.Payoff = mean
		}
	}
	return pa
}

func meanOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// maxPresent returns the best present action's mean payoff, the RL backup
// target maxPA(s'); it is an engine invariant violation to call this when
// no action is present, since match() always covers at least one (spec
// §4.6, §4.10).
func (pa *PA) maxPresent() float64 {
	if pa.Best == -1 {
		invariantPanic("prediction array has no present action")
	}
	return pa.Payoff
}
