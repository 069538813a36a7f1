package xcsf

// Set is a non-owning reference into a Population's classifier slice:
// indices rather than pointers, so population mutation during a trial
// never invalidates an outstanding M/A/K handle (spec §9).
type Set struct {
	Indices []int
}

func newSet() *Set { return &Set{} }

func (s *Set) clear() { s.Indices = s.Indices[:0] }

func (s *Set) add(idx int) { s.Indices = append(s.Indices, idx) }

func (s *Set) numerosity(pop *Population) int {
	n := 0
	for _, i := range s.Indices {
		n += pop.Members[i].Num
	}
	return n
}

func presentActions(pop *Population, s *Set) map[int]bool {
	present := make(map[int]bool, len(s.Indices))
	for _, i := range s.Indices {
		present[pop.Members[i].Action.Value()] = true
	}
	return present
}

func missingActions(p *Parameters, present map[int]bool) []int {
	missing := make([]int, 0, p.NActions)
	for a := 0; a < p.NActions; a++ {
		if !present[a] {
			missing = append(missing, a)
		}
	}
	return missing
}

// match populates s with every population member whose condition matches
// x, then repeatedly covers a missing action — when s is empty, or (in
// reinforcement mode) when the set of represented actions is incomplete —
// performing deletion after each insertion to respect POP_SIZE (spec
// §4.6).
func (s *Set) match(p *Parameters, pop *Population, x []float64, k *Set, t int64) {
	s.clear()
	for i, c := range pop.Members {
		c.M = c.Condition.Match(x)
		if c.M {
			s.add(i)
		}
	}
	for {
		present := presentActions(pop, s)
		needCover := len(s.Indices) == 0
		if p.NActions > 1 && len(present) < p.NActions {
			needCover = true
		}
		if !needCover {
			return
		}
		a := 0
		if missing := missingActions(p, present); len(missing) > 0 {
			a = missing[p.RNG.Intn(len(missing))]
		}
		c := newClassifier(p, t)
		c.Cover(p, x, a, t)
		idx := pop.insert(c)
		s.add(idx)
		pop.enforceCap(p, k, t)
	}
}

// actionSet filters m into the subset whose action equals a (spec §4.6).
func (m *Set) actionSet(pop *Population, a int) *Set {
	s := newSet()
	for _, i := range m.Indices {
		if pop.Members[i].Action.Value() == a {
			s.add(i)
		}
	}
	return s
}

// update applies Cl.Update to every member with set_num = the set's total
// numerosity, then renormalises fitness by relative accuracy, then, if
// enabled, runs set subsumption (spec §4.6).
func (s *Set) update(p *Parameters, pop *Population, x, y []float64) {
	setNum := s.numerosity(pop)
	for _, i := range s.Indices {
		pop.Members[i].Update(p, x, y, setNum)
	}

	kappa := make([]float64, len(s.Indices))
	kappaSum := 0.0
	for j, i := range s.Indices {
		c := pop.Members[i]
		kappa[j] = c.Acc(p)
		kappaSum += kappa[j] * float64(c.Num)
	}
	if kappaSum <= 0 {
		return
	}
	for j, i := range s.Indices {
		c := pop.Members[i]
		target := kappa[j] * float64(c.Num) / kappaSum
		if float64(c.Exp)*p.Beta < 1 {
			c.Fit = target
		} else {
			c.Fit += p.Beta * (target - c.Fit)
		}
	}

	if p.DoSetSubsumption {
		s.subsume(p, pop)
	}
}

// subsume finds the most-general, sufficiently accurate and experienced
// member and absorbs every classifier it subsumes into its own numerosity
// (spec §4.6). Absorbed classifiers are left at Num=0 for validate/
// kill_sweep to reclaim.
func (s *Set) subsume(p *Parameters, pop *Population) {
	best := -1
	for _, i := range s.Indices {
		c := pop.Members[i]
		if float64(c.Exp) < p.ThetaSub || c.Err >= p.Eps0 {
			continue
		}
		if best == -1 || c.Condition.General(pop.Members[best].Condition) {
			best = i
		}
	}
	if best == -1 {
		return
	}
	subsumer := pop.Members[best]
	for _, i := range s.Indices {
		if i == best {
			continue
		}
		c := pop.Members[i]
		if c.Num == 0 {
			continue
		}
		if subsumer.Action.Value() == c.Action.Value() && subsumer.Condition.General(c.Condition) {
			subsumer.Num += c.Num
			c.Num = 0
		}
	}
}

// validate drops every macro-classifier with num=0 into the kill set k
// (spec §4.6). Needed because set subsumption zeroes numerosity directly,
// bypassing enforceCap's own kill-marking.
func (pop *Population) validate(k *Set) {
	for i, c := range pop.Members {
		if c.Num == 0 {
			k.add(i)
		}
	}
}
