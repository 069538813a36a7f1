package xcsf

import (
	"io"
	"math"
)

// ellipsoidCondition is a centre plus axis-aligned spreads; match by
// weighted L2 distance <= 1 (spec §4.2).
type ellipsoidCondition struct {
	p      *Parameters
	Centre []float64
	Spread []float64
}

func newEllipsoidCondition(p *Parameters) *ellipsoidCondition {
	return &ellipsoidCondition{p: p, Centre: make([]float64, p.XDim), Spread: make([]float64, p.XDim)}
}

func (c *ellipsoidCondition) Cover(x []float64) {
	for i := range c.Centre {
		c.Centre[i] = x[i]
		c.Spread[i] = uniform(c.p.RNG, 0.1, 1) * (c.p.CondHyperrectMutation + 1e-6)
	}
}

func (c *ellipsoidCondition) dist2(x []float64) float64 {
	sum := 0.0
	for i, v := range x {
		if c.Spread[i] <= 0 {
			continue
		}
		d := (v - c.Centre[i]) / c.Spread[i]
		sum += d * d
	}
	return sum
}

func (c *ellipsoidCondition) Match(x []float64) bool { return c.dist2(x) <= 1 }

func (c *ellipsoidCondition) Crossover(other Condition) bool {
	o, ok := other.(*ellipsoidCondition)
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

func (c *ellipsoidCondition) Mutate() bool {
	changed := false
	rate := c.p.CondHyperrectMutation
	for i := range c.Centre {
		if c.p.RNG.Float64() < 0.5 {
			c.Centre[i] += gaussian(c.p.RNG, 0, rate)
			changed = true
		}
		if c.p.RNG.Float64() < 0.5 {
			c.Spread[i] = math.Abs(c.Spread[i] + gaussian(c.p.RNG, 0, rate))
			changed = true
		}
	}
	return changed
}

// General approximates containment by comparing the scaled radii along
// each axis: self is more general when its spread dominates other's in
// every dimension and other's centre lies within self's ellipsoid.
func (c *ellipsoidCondition) General(other Condition) bool {
	o, ok := other.(*ellipsoidCondition)
	if !ok {
		return false
	}
	strictlyLarger := false
	for i := range c.Centre {
		if c.Spread[i] < o.Spread[i] {
			return false
		}
		if c.Spread[i] > o.Spread[i] {
			strictlyLarger = true
		}
	}
	return strictlyLarger && c.dist2(o.Centre) <= 1
}

func (c *ellipsoidCondition) Copy() Condition {
	n := newEllipsoidCondition(c.p)
	copy(n.Centre, c.Centre)
	copy(n.Spread, c.Spread)
	return n
}

func (c *ellipsoidCondition) Type() ConditionType { return CondEllipsoid }

func (c *ellipsoidCondition) WriteTo(w io.Writer) (int64, error) {
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

func (c *ellipsoidCondition) ReadFrom(r io.Reader) (int64, error) {
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
