package xcsf

// runSupervisedTrial executes one xcs_supervised_trial: match, build the
// prediction array, and, only if Explore, update the match set and run the
// EA. It returns the loss of the array's single present action against y
// (there is exactly one action in supervised mode, n_actions=1), mirroring
// xcs_supervised.c's xcs_supervised_trial plus its caller's immediate loss
// computation.
func runSupervisedTrial(p *Parameters, pop *Population, x, y []float64, t int64) float64 {
	m := newSet()
	k := newSet()

	m.match(p, pop, x, k, t)
	pa := buildPA(p, pop, m, x)

	if p.Explore {
		m.update(p, pop, x, y)
		ea(p, pop, m, t, k)
	}

	pop.validate(k)
	pop.killSweep(k)

	loss := predictionLoss(pa.Values[0], y)
	m.clear()
	return loss
}

// runSupervisedPredict runs a trial in exploit mode and returns the
// prediction array's single action output, for Predict/Score (xcs_
// supervised_predict's explore=false trial plus a memcpy of xcsf->pa).
func runSupervisedPredict(p *Parameters, pop *Population, x []float64, t int64) []float64 {
	wasExplore := p.Explore
	p.Explore = false
	defer func() { p.Explore = wasExplore }()

	m := newSet()
	k := newSet()
	m.match(p, pop, x, k, t)
	pa := buildPA(p, pop, m, x)
	pop.validate(k)
	pop.killSweep(k)
	m.clear()
	return pa.Values[0]
}
