package xcsf

import (
	"io"
	"math"
)

// gpOp tags a GP-tree node's operator; terminals have arity 0.
type gpOp uint8

const (
	gpConst gpOp = iota // terminal: a fixed constant
	gpInput             // terminal: reads x[Idx]
	gpAdd
	gpSub
	gpMul
	gpDiv
	gpSin
)

func (op gpOp) arity() int {
	switch op {
	case gpConst, gpInput:
		return 0
	case gpSin:
		return 1
	default:
		return 2
	}
}

type gpNode struct {
	Op    gpOp
	Const float64 // used when Op == gpConst
	Idx   int     // used when Op == gpInput
}

const gpMaxDepth = 4

// gpTreeCondition is a preorder expression-tree arena: the tree is a flat
// node slice with no child pointers, walked by a recursive cursor (spec
// §9's node-slice-arena design note). Match iff the tree evaluates to a
// non-negative scalar (spec §4.2).
type gpTreeCondition struct {
	p     *Parameters
	Nodes []gpNode
}

func newGPTreeCondition(p *Parameters) *gpTreeCondition {
	return &gpTreeCondition{p: p}
}

// appendRandomNode grows a random subtree onto c.Nodes in preorder.
func (c *gpTreeCondition) appendRandomNode(depth int) {
	if depth <= 0 || c.p.RNG.Float64() < 0.3 {
		if c.p.RNG.Float64() < 0.5 {
			c.Nodes = append(c.Nodes, gpNode{Op: gpInput, Idx: c.p.RNG.Intn(c.p.XDim)})
		} else {
			c.Nodes = append(c.Nodes, gpNode{Op: gpConst, Const: uniform(c.p.RNG, -1, 1)})
		}
		return
	}
	ops := [...]gpOp{gpAdd, gpSub, gpMul, gpDiv, gpSin}
	op := ops[c.p.RNG.Intn(len(ops))]
	c.Nodes = append(c.Nodes, gpNode{Op: op})
	c.appendRandomNode(depth - 1)
	if op.arity() == 2 {
		c.appendRandomNode(depth - 1)
	}
}

// subtreeEnd returns the index just past the subtree rooted at idx.
func (c *gpTreeCondition) subtreeEnd(idx int) int {
	node := c.Nodes[idx]
	next := idx + 1
	for a := 0; a < node.Op.arity(); a++ {
		next = c.subtreeEnd(next)
	}
	return next
}

// evalFrom evaluates the subtree at idx and returns its value plus the
// index just past the subtree.
func (c *gpTreeCondition) evalFrom(idx int, x []float64) (float64, int) {
	node := c.Nodes[idx]
	switch node.Op {
	case gpConst:
		return node.Const, idx + 1
	case gpInput:
		return x[node.Idx], idx + 1
	case gpSin:
		v, next := c.evalFrom(idx+1, x)
		return math.Sin(v), next
	default:
		l, next := c.evalFrom(idx+1, x)
		r, next2 := c.evalFrom(next, x)
		switch node.Op {
		case gpAdd:
			return l + r, next2
		case gpSub:
			return l - r, next2
		case gpMul:
			return l * r, next2
		case gpDiv:
			if r == 0 {
				return 0, next2
			}
			return l / r, next2
		default:
			return 0, next2
		}
	}
}

func (c *gpTreeCondition) eval(x []float64) float64 {
	v, _ := c.evalFrom(0, x)
	return v
}

// Cover grows a fresh random tree, then wraps it in a unary negation if
// needed so that it evaluates non-negative on x (Condition.Cover's
// contract).
func (c *gpTreeCondition) Cover(x []float64) {
	c.Nodes = nil
	c.appendRandomNode(gpMaxDepth)
	if c.eval(x) < 0 {
		old := c.Nodes
		c.Nodes = append([]gpNode{{Op: gpSub}, {Op: gpConst, Const: 0}}, old...)
	}
}

func (c *gpTreeCondition) Match(x []float64) bool { return c.eval(x) >= 0 }

// Crossover swaps a random subtree of self with a random subtree of other,
// classic GP subtree crossover over the flat node-slice representation.
func (c *gpTreeCondition) Crossover(other Condition) bool {
	o, ok := other.(*gpTreeCondition)
	if !ok {
		return false
	}
	i1 := c.p.RNG.Intn(len(c.Nodes))
	i2 := o.p.RNG.Intn(len(o.Nodes))
	e1 := c.subtreeEnd(i1)
	e2 := o.subtreeEnd(i2)
	sub1 := append([]gpNode{}, c.Nodes[i1:e1]...)
	sub2 := append([]gpNode{}, o.Nodes[i2:e2]...)

	newC := append([]gpNode{}, c.Nodes[:i1]...)
	newC = append(newC, sub2...)
	newC = append(newC, c.Nodes[e1:]...)

	newO := append([]gpNode{}, o.Nodes[:i2]...)
	newO = append(newO, sub1...)
	newO = append(newO, o.Nodes[e2:]...)

	c.Nodes = newC
	o.Nodes = newO
	return true
}

// Mutate replaces a randomly chosen subtree with a freshly grown one.
func (c *gpTreeCondition) Mutate() bool {
	if c.p.RNG.Float64() >= c.p.PMutation {
		return false
	}
	idx := c.p.RNG.Intn(len(c.Nodes))
	end := c.subtreeEnd(idx)
	before := append([]gpNode{}, c.Nodes[:idx]...)
	after := append([]gpNode{}, c.Nodes[end:]...)
	c.Nodes = nil
	c.appendRandomNode(2)
	fresh := c.Nodes
	c.Nodes = append(before, append(fresh, after...)...)
	return true
}

// General is unsupported: GP-tree structures have no syntactic generality
// order, so EA/set subsumption involving this variant never fires.
func (c *gpTreeCondition) General(other Condition) bool { return false }

func (c *gpTreeCondition) Copy() Condition {
	n := &gpTreeCondition{p: c.p}
	n.Nodes = append([]gpNode{}, c.Nodes...)
	return n
}

func (c *gpTreeCondition) Type() ConditionType { return CondGPTree }

func (c *gpTreeCondition) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeUint32(w, uint32(len(c.Nodes)))
	total += n
	if err != nil {
		return total, err
	}
	for _, nd := range c.Nodes {
		n, err = writeUint8(w, uint8(nd.Op))
		total += n
		if err != nil {
			return total, err
		}
		n, err = writeFloat64(w, nd.Const)
		total += n
		if err != nil {
			return total, err
		}
		n, err = writeUint32(w, uint32(nd.Idx))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (c *gpTreeCondition) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	cnt, n, err := readUint32(r)
	total += n
	if err != nil {
		return total, err
	}
	c.Nodes = make([]gpNode, cnt)
	for i := range c.Nodes {
		op, n2, err2 := readUint8(r)
		total += n2
		if err2 != nil {
			return total, err2
		}
		cst, n3, err3 := readFloat64(r)
		total += n3
		if err3 != nil {
			return total, err3
		}
		idx, n4, err4 := readUint32(r)
		total += n4
		if err4 != nil {
			return total, err4
		}
		c.Nodes[i] = gpNode{Op: gpOp(op), Const: cst, Idx: int(idx)}
	}
	return total, nil
}
