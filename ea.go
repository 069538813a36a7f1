package xcsf

// eaShouldTrigger reports whether the EA should fire against s: the mean
// time since the set's members' last EA event exceeds THETA_EA (spec §4.8).
func eaShouldTrigger(p *Parameters, pop *Population, s *Set, t int64) bool {
	if len(s.Indices) == 0 {
		return false
	}
	numSum, timeSum := 0, int64(0)
	for _, i := range s.Indices {
		c := pop.Members[i]
		numSum += c.Num
		timeSum += int64(c.Num) * c.Time
	}
	if numSum == 0 {
		return false
	}
	return float64(t)-float64(timeSum)/float64(numSum) > p.ThetaEA
}

// selectParent picks one member of s by roulette (fitness-proportional) or
// tournament, per EA_SELECT_TYPE (spec §4.8).
func selectParent(p *Parameters, pop *Population, s *Set) int {
	if p.EASelectType == SelectTournament {
		size := p.tournamentSize(len(s.Indices))
		best := -1
		for n := 0; n < size; n++ {
			cand := s.Indices[p.RNG.Intn(len(s.Indices))]
			if best == -1 || pop.Members[cand].Fit > pop.Members[best].Fit {
				best = cand
			}
		}
		return best
	}
	weights := make([]float64, len(s.Indices))
	for j, i := range s.Indices {
		weights[j] = pop.Members[i].Fit
	}
	return s.Indices[roulette(p.RNG, weights)]
}

// ea runs one steady-state evolutionary-algorithm pass over s, if triggered:
// it stamps the EA event time into every member of s, then repeatedly
// selects two parents, clones them, applies crossover and self-adaptive
// mutation, and inserts the offspring (spec §4.8).
func ea(p *Parameters, pop *Population, s *Set, t int64, k *Set) {
	if !eaShouldTrigger(p, pop, s, t) {
		return
	}
	for _, i := range s.Indices {
		pop.Members[i].Time = t
	}

	for n := 0; n < p.Lambda/2; n++ {
		p1 := pop.Members[selectParent(p, pop, s)]
		p2 := pop.Members[selectParent(p, pop, s)]

		c1 := p1.Copy()
		c2 := p2.Copy()
		for _, off := range []*Cl{c1, c2} {
			off.Num = 1
			off.Exp = 0
			off.Time = t
			off.Age = t
		}

		crossed := false
		if p.RNG.Float64() < p.PCrossover {
			crossed = c1.Condition.Crossover(c2.Condition)
			if c1.Prediction.Crossover(c2.Prediction) {
				crossed = true
			}
			if _, ok := c1.Action.(*neuralAction); ok {
				if c1.Action.Crossover(c2.Action) {
					crossed = true
				}
			}
		}

		m1 := c1.mutateWithRate(p)
		m2 := c2.mutateWithRate(p)

		if crossed || m1 {
			c1.Err = (p1.Err + p2.Err) / 2 * 0.1
			c1.Fit = (p1.Fit + p2.Fit) / 2 * 0.1
		}
		if crossed || m2 {
			c2.Err = (p1.Err + p2.Err) / 2 * 0.1
			c2.Fit = (p1.Fit + p2.Fit) / 2 * 0.1
		}

		insertOffspring(p, pop, s, c1, p1, p2, k, t)
		insertOffspring(p, pop, s, c2, p1, p2, k, t)
	}
}

// insertOffspring implements spec §4.8 step 5: if GA subsumption is enabled
// and one of off's parents subsumes it, the parent absorbs it by
// numerosity instead of the offspring entering the population; else, if an
// identical rule is already present in s, that classifier absorbs it
// instead; else off is physically inserted. POP_SIZE is enforced after
// every path.
func insertOffspring(p *Parameters, pop *Population, s *Set, off, p1, p2 *Cl, k *Set, t int64) {
	if p.DoGASubsumption {
		if p1.Subsumes(p, off) {
			p1.Num++
			pop.enforceCap(p, k, t)
			return
		}
		if p2.Subsumes(p, off) {
			p2.Num++
			pop.enforceCap(p, k, t)
			return
		}
	}

	for _, i := range s.Indices {
		c := pop.Members[i]
		if c.sameRule(off) {
			c.Num++
			pop.enforceCap(p, k, t)
			return
		}
	}

	idx := pop.insert(off)
	s.add(idx)
	pop.enforceCap(p, k, t)
}
