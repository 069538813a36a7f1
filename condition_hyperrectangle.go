package xcsf

import "io"

// hyperrectangleCondition is an axis-aligned box: centre +/- spread per
// dimension. Match iff x lies inside the box (spec §4.2).
type hyperrectangleCondition struct {
	p       *Parameters
	Centre  []float64
	Spread  []float64
}

func newHyperrectangleCondition(p *Parameters) *hyperrectangleCondition {
	return &hyperrectangleCondition{
		p:      p,
		Centre: make([]float64, p.XDim),
		Spread: make([]float64, p.XDim),
	}
}

// Cover centres the box on x with a spread drawn uniformly in [0, mutation
// scale), so the classifier matches x and a small neighbourhood of it.
func (c *hyperrectangleCondition) Cover(x []float64) {
	for i := range c.Centre {
		c.Centre[i] = x[i]
		c.Spread[i] = uniform(c.p.RNG, 0, c.p.CondHyperrectMutation)
	}
}

func (c *hyperrectangleCondition) Match(x []float64) bool {
	for i, v := range x {
		if v < c.Centre[i]-c.Spread[i] || v > c.Centre[i]+c.Spread[i] {
			return false
		}
	}
	return true
}

// Crossover performs a uniform-per-dim swap of (centre, spread) pairs.
func (c *hyperrectangleCondition) Crossover(other Condition) bool {
	o, ok := other.(*hyperrectangleCondition)
	if !ok {
		return false
	}
	changed := false
	for i := range c.Centre {
		if c.p.RNG.Float64() < 0.5 {
			c.Centre[i], o.Centre[i] = o.Centre[i], c.Centre[i]
			c.Spread[i], o.Spread[i] = o.Spread[i], c.Spread[i]
			changed = true
		}
	}
	return changed
}

// Mutate Gaussian-perturbs centre and spread, scaled by the classifier's
// self-adapted mutation rate, which mutateWithRate supplies by rebinding
// c.p to a Parameters copy with CondHyperrectMutation scaled.
func (c *hyperrectangleCondition) Mutate() bool {
	changed := false
	rate := c.p.CondHyperrectMutation
	for i := range c.Centre {
		if c.p.RNG.Float64() < 0.5 {
			c.Centre[i] += gaussian(c.p.RNG, 0, rate)
			changed = true
		}
		if c.p.RNG.Float64() < 0.5 {
			c.Spread[i] += gaussian(c.p.RNG, 0, rate)
			if c.Spread[i] < 0 {
				c.Spread[i] = -c.Spread[i]
			}
			changed = true
		}
	}
	return changed
}

// General reports whether c's box contains other's box entirely.
func (c *hyperrectangleCondition) General(other Condition) bool {
	o, ok := other.(*hyperrectangleCondition)
	if !ok {
		return false
	}
	strictlyLarger := false
	for i := range c.Centre {
		cLo, cHi := c.Centre[i]-c.Spread[i], c.Centre[i]+c.Spread[i]
		oLo, oHi := o.Centre[i]-o.Spread[i], o.Centre[i]+o.Spread[i]
		if cLo > oLo || cHi < oHi {
			return false
		}
		if cLo < oLo || cHi > oHi {
			strictlyLarger = true
		}
	}
	return strictlyLarger
}

func (c *hyperrectangleCondition) Copy() Condition {
	n := newHyperrectangleCondition(c.p)
	copy(n.Centre, c.Centre)
	copy(n.Spread, c.Spread)
	return n
}

func (c *hyperrectangleCondition) Type() ConditionType { return CondHyperrectangle }

func (c *hyperrectangleCondition) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeFloat64Slice(w, c.Centre)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeFloat64Slice(w, c.Spread)
	total += n
	return total, err
}

func (c *hyperrectangleCondition) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	centre, n, err := readFloat64Slice(r)
	total += n
	if err != nil {
		return total, err
	}
	spread, n, err := readFloat64Slice(r)
	total += n
	if err != nil {
		return total, err
	}
	c.Centre, c.Spread = centre, spread
	return total, nil
}
