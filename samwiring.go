package xcsf

// rebindCondition retargets cond's captured *Parameters pointer in place.
// Permissible because every concrete Condition variant lives in this
// package; it lets a classifier's self-adapted mutation rate scale a
// component's mutation behaviour for a single Mutate call without widening
// the public Condition interface (spec §4.8's self-adaptive-mutation note).
func rebindCondition(cond Condition, p *Parameters) {
	switch c := cond.(type) {
	case *dummyCondition:
		// stateless: no captured Parameters to retarget.
	case *hyperrectangleCondition:
		c.p = p
	case *ellipsoidCondition:
		c.p = p
	case *ternaryCondition:
		c.p = p
	case *neuralCondition:
		c.p = p
	case *dgpCondition:
		c.p = p
	case *gpTreeCondition:
		c.p = p
	}
}

func rebindAction(act Action, p *Parameters) {
	switch a := act.(type) {
	case *integerAction:
		a.p = p
	case *neuralAction:
		a.p = p
	}
}

func rebindPrediction(pred Prediction, p *Parameters) {
	switch pr := pred.(type) {
	case *constantPrediction:
		pr.p = p
	case *nlmsPrediction:
		pr.p = p
	case *rlsPrediction:
		pr.p = p
	case *neuralPrediction:
		pr.p = p
	}
}

// derivedParameters returns a shallow copy of base with every mutation-rate
// knob scaled by one of c's self-adapted rates, so a single classifier can
// mutate more or less aggressively than its siblings (spec §4.8).
func derivedParameters(base *Parameters, c *Cl) *Parameters {
	mp := *base
	if len(c.mu) >= 3 {
		mp.CondHyperrectMutation = clamp(base.CondHyperrectMutation*c.mu[0], samMuEpsilon, 1)
		mp.CondTernaryPHash = clamp(base.CondTernaryPHash*c.mu[0], samMuEpsilon, 1)
		mp.PMutation = clamp(base.PMutation*c.mu[1], samMuEpsilon, 1)
		mp.PredNLMSEta = clamp(base.PredNLMSEta*c.mu[2], samMuEpsilon, 1)
	}
	return &mp
}

// mutateWithRate self-adapts c's mutation rates, then mutates its condition,
// action and prediction components under the resulting derived rates,
// rebinding each component back onto base once done so every later
// operation sees the population's shared Parameters again (spec §4.8).
func (c *Cl) mutateWithRate(base *Parameters) bool {
	samAdapt(base.RNG, c.mu, samTypes)
	mp := derivedParameters(base, c)

	rebindCondition(c.Condition, mp)
	rebindAction(c.Action, mp)
	rebindPrediction(c.Prediction, mp)

	condChanged := c.Condition.Mutate()
	actChanged := c.Action.Mutate()
	predChanged := c.Prediction.Mutate()

	rebindCondition(c.Condition, base)
	rebindAction(c.Action, base)
	rebindPrediction(c.Prediction, base)

	return condChanged || actChanged || predChanged
}
