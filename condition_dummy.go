package xcsf

import "io"

// dummyCondition always matches; it has no genetics (spec §4.2).
type dummyCondition struct{}

func newDummyCondition() *dummyCondition { return &dummyCondition{} }

func (c *dummyCondition) Cover(x []float64)            {}
func (c *dummyCondition) Match(x []float64) bool       { return true }
func (c *dummyCondition) Crossover(o Condition) bool   { return false }
func (c *dummyCondition) Mutate() bool                 { return false }
func (c *dummyCondition) General(o Condition) bool     { _, ok := o.(*dummyCondition); return ok }
func (c *dummyCondition) Copy() Condition              { return &dummyCondition{} }
func (c *dummyCondition) Type() ConditionType          { return CondDummy }
func (c *dummyCondition) WriteTo(w io.Writer) (int64, error) { return 0, nil }
func (c *dummyCondition) ReadFrom(r io.Reader) (int64, error) { return 0, nil }
