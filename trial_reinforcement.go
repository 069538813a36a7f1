package xcsf

// buildMatchAndPA runs match(state) and builds its prediction array, the
// first two steps shared by every reinforcement trial (spec §4.10).
func buildMatchAndPA(p *Parameters, pop *Population, state []float64, k *Set, t int64) (*Set, *PA) {
	m := newSet()
	m.match(p, pop, state, k, t)
	pa := buildPA(p, pop, m, state)
	return m, pa
}

// chooseAction picks the action to play from a prediction array: the
// argmax action when exploiting, or a uniform draw over populated actions
// when exploring (spec §4.10 step 3).
func chooseAction(p *Parameters, pa *PA) int {
	if !p.Explore {
		return pa.Best
	}
	populated := make([]int, 0, len(pa.Present))
	for a, present := range pa.Present {
		if present {
			populated = append(populated, a)
		}
	}
	if len(populated) == 0 {
		return pa.Best
	}
	return populated[p.RNG.Intn(len(populated))]
}

// reinforcementBackup computes the payoff P for one step: the raw reward
// when the episode has ended, else a one-step bootstrap off the best
// present action of the successor state's own prediction array (spec §4.10
// step 6).
func reinforcementBackup(p *Parameters, pop *Population, r float64, done bool, sNext []float64, t int64, k *Set) float64 {
	if done {
		return r
	}
	m2, pa2 := buildMatchAndPA(p, pop, sNext, k, t)
	m2.clear()
	return r + p.Gamma*pa2.maxPresent()
}

// updateActionSet applies payoff P to every classifier in the chosen
// action set, broadcast across all y_dim outputs, then runs the EA over
// that set (spec §4.10 step 7).
func updateActionSet(p *Parameters, pop *Population, a *Set, state []float64, payoff float64, t int64, k *Set) {
	y := make([]float64, p.YDim)
	for i := range y {
		y[i] = payoff
	}
	a.update(p, pop, state, y)
	ea(p, pop, a, t, k)
}
