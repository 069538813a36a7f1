package xcsf

// Population is the capped multiset owning every live classifier; Set (M,
// A, K) holds non-owning indices into Members rather than pointers (spec
// §4.9, §9).
type Population struct {
	Members []*Cl
}

func newPopulation() *Population { return &Population{} }

// insert appends c and returns its index.
func (pop *Population) insert(c *Cl) int {
	pop.Members = append(pop.Members, c)
	return len(pop.Members) - 1
}

func (pop *Population) numSum() int {
	n := 0
	for _, c := range pop.Members {
		n += c.Num
	}
	return n
}

func (pop *Population) meanFitness() float64 {
	sumFit, sumNum := 0.0, 0
	for _, c := range pop.Members {
		sumFit += c.Fit
		sumNum += c.Num
	}
	if sumNum == 0 {
		return 0
	}
	return sumFit / float64(sumNum)
}

// deletionVote is the roulette weight spec §4.9 assigns to c.
func deletionVote(p *Parameters, c *Cl, fbar float64) float64 {
	vote := c.Size * float64(c.Num)
	if c.Num == 0 {
		return 0
	}
	if float64(c.Exp) > p.ThetaDel {
		perNum := c.Fit / float64(c.Num)
		if perNum > 0 && perNum < p.Delta*fbar {
			vote *= fbar / perNum
		}
	}
	return vote
}

// enforceCap deletes one numerosity unit at a time, chosen by
// deletion-vote roulette, until total numerosity is within POP_SIZE; a
// classifier whose numerosity reaches zero is recorded in k rather than
// removed immediately — physical removal is deferred to killSweep at end
// of trial (spec §4.9, §9).
func (pop *Population) enforceCap(p *Parameters, k *Set, t int64) {
	for pop.numSum() > p.PopSize {
		fbar := pop.meanFitness()
		votes := make([]float64, len(pop.Members))
		for i, c := range pop.Members {
			votes[i] = deletionVote(p, c, fbar)
		}
		idx := roulette(p.RNG, votes)
		c := pop.Members[idx]
		if c.Num > 0 {
			c.Num--
		}
		if c.Num == 0 {
			k.add(idx)
		}
	}
}

// killSweep physically removes every classifier referenced from k,
// compacting Members. Called once, at end of trial, after every set
// holding indices into the removed range has finished using them (spec
// §4.9, §9).
func (pop *Population) killSweep(k *Set) {
	if len(k.Indices) == 0 {
		return
	}
	dead := make(map[int]bool, len(k.Indices))
	for _, i := range k.Indices {
		dead[i] = true
	}
	kept := pop.Members[:0]
	for i, c := range pop.Members {
		if !dead[i] {
			kept = append(kept, c)
		}
	}
	pop.Members = kept
	k.clear()
}

// sizeMacro returns the number of macro-classifiers (distinct population
// slots, independent of numerosity).
func (pop *Population) sizeMacro() int { return len(pop.Members) }
