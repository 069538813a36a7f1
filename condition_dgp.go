package xcsf

import (
	"io"
	"math"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// dgpCondition evaluates a dynamical graph program: XDim input nodes feed
// forward into numNodes internal nodes, each a weighted-sum sigmoid over a
// subset of strictly-lower-numbered nodes, with match decided by the last
// internal node's value (spec §4.2). Grounded on the teacher's
// topologically-sorted traversal of a phenotype graph
// (`naneat.go:4317-4384`'s `Sort`/`TraverseForward` pattern).
type dgpCondition struct {
	p *Parameters

	numNodes int
	from     [][]int     // from[i]: predecessor global node IDs of internal node i
	weight   [][]float64 // matching per-edge weights
	bias     []float64

	order []int // cached topological node order (global IDs)
}

func dgpNumNodes(p *Parameters) int {
	n := 4
	for _, h := range p.CondNeuralHidden {
		n += h
	}
	return n
}

func newDGPCondition(p *Parameters) *dgpCondition {
	return &dgpCondition{p: p, numNodes: dgpNumNodes(p)}
}

func (c *dgpCondition) nodeCount() int { return c.p.XDim + c.numNodes }

// Cover builds a random DAG: internal node i draws each predecessor from
// nodes with strictly lower global ID, which by construction rules out
// cycles without needing a repair step.
func (c *dgpCondition) Cover(x []float64) {
	c.from = make([][]int, c.numNodes)
	c.weight = make([][]float64, c.numNodes)
	c.bias = make([]float64, c.numNodes)
	for i := 0; i < c.numNodes; i++ {
		global := c.p.XDim + i
		nIn := 1 + c.p.RNG.Intn(3)
		for k := 0; k < nIn; k++ {
			from := c.p.RNG.Intn(global)
			c.from[i] = append(c.from[i], from)
			c.weight[i] = append(c.weight[i], uniform(c.p.RNG, -1, 1))
		}
		c.bias[i] = uniform(c.p.RNG, -1, 1)
	}
	c.rebuildOrder()
	if c.eval(x) < 0.5 {
		c.bias[c.numNodes-1] += 4 // pushes the output node's sigmoid past 0.5.
	}
}

// rebuildOrder derives the evaluation order via gonum/graph's topological
// sort. Construction already guarantees a DAG; the sort is still the
// source of truth for traversal order rather than assuming node-ID order,
// so a future predecessor selection scheme need not preserve that
// invariant.
func (c *dgpCondition) rebuildOrder() {
	g := simple.NewDirectedGraph()
	for id := 0; id < c.nodeCount(); id++ {
		g.AddNode(simple.Node(id))
	}
	for i, preds := range c.from {
		to := c.p.XDim + i
		for _, from := range preds {
			g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
		}
	}
	sorted, err := topo.Sort(g)
	if err != nil {
		order := make([]int, c.nodeCount())
		for i := range order {
			order[i] = i
		}
		c.order = order
		return
	}
	order := make([]int, 0, len(sorted))
	for _, n := range sorted {
		order = append(order, int(n.ID()))
	}
	c.order = order
}

func (c *dgpCondition) eval(x []float64) float64 {
	values := make([]float64, c.nodeCount())
	copy(values, x)
	for _, id := range c.order {
		if id < c.p.XDim {
			continue
		}
		i := id - c.p.XDim
		sum := c.bias[i]
		for k, from := range c.from[i] {
			sum += c.weight[i][k] * values[from]
		}
		values[id] = 1 / (1 + math.Exp(-sum))
	}
	return values[c.nodeCount()-1]
}

func (c *dgpCondition) Match(x []float64) bool { return c.eval(x) >= 0.5 }

// Crossover swaps the two graphs wholesale: the coarsest recombination
// workable for a structure whose nodes have no positional correspondence
// across individuals.
func (c *dgpCondition) Crossover(other Condition) bool {
	o, ok := other.(*dgpCondition)
	if !ok {
		return false
	}
	if c.p.RNG.Float64() < 0.5 {
		c.from, o.from = o.from, c.from
		c.weight, o.weight = o.weight, c.weight
		c.bias, o.bias = o.bias, c.bias
		c.order, o.order = o.order, c.order
		return true
	}
	return false
}

// Mutate perturbs edge weights/bias and occasionally rewires one edge to a
// different (still strictly-lower) predecessor.
func (c *dgpCondition) Mutate() bool {
	changed := false
	for i := range c.weight {
		for k := range c.weight[i] {
			if c.p.RNG.Float64() < 0.2 {
				c.weight[i][k] += gaussian(c.p.RNG, 0, 0.1)
				changed = true
			}
		}
		if c.p.RNG.Float64() < 0.1 {
			c.bias[i] += gaussian(c.p.RNG, 0, 0.1)
			changed = true
		}
		if c.p.RNG.Float64() < 0.05 && len(c.from[i]) > 0 {
			global := c.p.XDim + i
			k := c.p.RNG.Intn(len(c.from[i]))
			c.from[i][k] = c.p.RNG.Intn(global)
			changed = true
		}
	}
	if changed {
		c.rebuildOrder()
	}
	return changed
}

// General is unsupported: an opaque graph program admits no syntactic
// generality order, so EA/set subsumption involving this variant never
// fires.
func (c *dgpCondition) General(other Condition) bool { return false }

func (c *dgpCondition) Copy() Condition {
	n := &dgpCondition{p: c.p, numNodes: c.numNodes}
	n.from = make([][]int, len(c.from))
	n.weight = make([][]float64, len(c.weight))
	for i := range c.from {
		n.from[i] = append([]int{}, c.from[i]...)
		n.weight[i] = append([]float64{}, c.weight[i]...)
	}
	n.bias = append([]float64{}, c.bias...)
	n.order = append([]int{}, c.order...)
	return n
}

func (c *dgpCondition) Type() ConditionType { return CondDGP }

func (c *dgpCondition) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeUint32(w, uint32(c.numNodes))
	total += n
	if err != nil {
		return total, err
	}
	for i := 0; i < c.numNodes; i++ {
		n, err = writeUint32(w, uint32(len(c.from[i])))
		total += n
		if err != nil {
			return total, err
		}
		for _, f := range c.from[i] {
			n, err = writeUint32(w, uint32(f))
			total += n
			if err != nil {
				return total, err
			}
		}
		n, err = writeFloat64Slice(w, c.weight[i])
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = writeFloat64Slice(w, c.bias)
	total += n
	return total, err
}

func (c *dgpCondition) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	nn, n, err := readUint32(r)
	total += n
	if err != nil {
		return total, err
	}
	c.numNodes = int(nn)
	c.from = make([][]int, c.numNodes)
	c.weight = make([][]float64, c.numNodes)
	for i := 0; i < c.numNodes; i++ {
		cnt, n2, err2 := readUint32(r)
		total += n2
		if err2 != nil {
			return total, err2
		}
		preds := make([]int, cnt)
		for k := range preds {
			v, n3, err3 := readUint32(r)
			total += n3
			if err3 != nil {
				return total, err3
			}
			preds[k] = int(v)
		}
		c.from[i] = preds
		weights, n4, err4 := readFloat64Slice(r)
		total += n4
		if err4 != nil {
			return total, err4
		}
		c.weight[i] = weights
	}
	bias, n5, err5 := readFloat64Slice(r)
	total += n5
	if err5 != nil {
		return total, err5
	}
	c.bias = bias
	c.rebuildOrder()
	return total, nil
}
