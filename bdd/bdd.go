package bdd

import "math"

// leafVar sorts after every real variable, so cofactoring always picks a
// real variable over a terminal when one is present.
const leafVar = math.MaxInt32

// Engine evaluates Boolean operations over a shared NodeTable. Binary
// operations are computed by structural recursion with a memoisation table
// keyed by (op, lhs, rhs); the tables are session-long (they live as long as
// the Engine does), per §4.2.
type Engine struct {
	Nodes *NodeTable

	andMemo      map[pairKey]NodeID
	orMemo       map[pairKey]NodeID
	xorMemo      map[pairKey]NodeID
	notMemo      map[NodeID]NodeID
	restrictMemo map[restrictKey]NodeID
}

type pairKey struct {
	lo, hi NodeID
}

type restrictKey struct {
	f     NodeID
	v     int
	value bool
}

// NewEngine creates an Engine over a fresh NodeTable.
func NewEngine() *Engine {
	return &Engine{
		Nodes:        NewNodeTable(),
		andMemo:      make(map[pairKey]NodeID),
		orMemo:       make(map[pairKey]NodeID),
		xorMemo:      make(map[pairKey]NodeID),
		notMemo:      make(map[NodeID]NodeID),
		restrictMemo: make(map[restrictKey]NodeID),
	}
}

// True returns the constant-true leaf.
func (e *Engine) True() NodeID { return TrueNode }

// False returns the constant-false leaf.
func (e *Engine) False() NodeID { return FalseNode }

// PositiveBranch returns the node representing variable v in its positive
// (asserted) form: v itself.
func (e *Engine) PositiveBranch(v int) NodeID {
	return e.Nodes.AddNode(v, FalseNode, TrueNode)
}

// NegativeBranch returns the node representing the negation of variable v.
func (e *Engine) NegativeBranch(v int) NodeID {
	return e.Nodes.AddNode(v, TrueNode, FalseNode)
}

func (e *Engine) varOf(id NodeID) int {
	if id == FalseNode || id == TrueNode {
		return leafVar
	}
	n, err := e.Nodes.GetNode(id)
	if err != nil {
		return leafVar
	}
	return n.Var
}

// cofactor returns the (lo, hi) cofactors of f with respect to variable v.
// If f does not depend on v (its own variable is strictly greater than v,
// or f is a terminal), f is its own cofactor in both directions.
func (e *Engine) cofactor(f NodeID, v int) (lo, hi NodeID) {
	if f == FalseNode || f == TrueNode {
		return f, f
	}
	n, err := e.Nodes.GetNode(f)
	if err != nil || n.Var != v {
		return f, f
	}
	return n.Lo, n.Hi
}

// And computes the conjunction of f and g.
func (e *Engine) And(f, g NodeID) NodeID {
	if f == FalseNode || g == FalseNode {
		return FalseNode
	}
	if f == TrueNode {
		return g
	}
	if g == TrueNode {
		return f
	}
	if f == g {
		return f
	}

	key := canonicalPair(f, g)
	if cached, ok := e.andMemo[key]; ok {
		return cached
	}

	v := e.minVar(f, g)
	fLo, fHi := e.cofactor(f, v)
	gLo, gHi := e.cofactor(g, v)

	lo := e.And(fLo, gLo)
	hi := e.And(fHi, gHi)
	result := e.Nodes.AddNode(v, lo, hi)

	e.andMemo[key] = result
	return result
}

// Or computes the disjunction of f and g.
func (e *Engine) Or(f, g NodeID) NodeID {
	if f == TrueNode || g == TrueNode {
		return TrueNode
	}
	if f == FalseNode {
		return g
	}
	if g == FalseNode {
		return f
	}
	if f == g {
		return f
	}

	key := canonicalPair(f, g)
	if cached, ok := e.orMemo[key]; ok {
		return cached
	}

	v := e.minVar(f, g)
	fLo, fHi := e.cofactor(f, v)
	gLo, gHi := e.cofactor(g, v)

	lo := e.Or(fLo, gLo)
	hi := e.Or(fHi, gHi)
	result := e.Nodes.AddNode(v, lo, hi)

	e.orMemo[key] = result
	return result
}

// Xor computes the symmetric difference of f and g.
func (e *Engine) Xor(f, g NodeID) NodeID {
	if f == g {
		return FalseNode
	}
	if f == FalseNode {
		return g
	}
	if g == FalseNode {
		return f
	}
	if f == TrueNode {
		return e.Not(g)
	}
	if g == TrueNode {
		return e.Not(f)
	}

	key := canonicalPair(f, g)
	if cached, ok := e.xorMemo[key]; ok {
		return cached
	}

	v := e.minVar(f, g)
	fLo, fHi := e.cofactor(f, v)
	gLo, gHi := e.cofactor(g, v)

	lo := e.Xor(fLo, gLo)
	hi := e.Xor(fHi, gHi)
	result := e.Nodes.AddNode(v, lo, hi)

	e.xorMemo[key] = result
	return result
}

// Not computes the negation of f by swapping leaves.
func (e *Engine) Not(f NodeID) NodeID {
	if f == FalseNode {
		return TrueNode
	}
	if f == TrueNode {
		return FalseNode
	}

	if cached, ok := e.notMemo[f]; ok {
		return cached
	}

	n, err := e.Nodes.GetNode(f)
	if err != nil {
		return FalseNode
	}

	lo := e.Not(n.Lo)
	hi := e.Not(n.Hi)
	result := e.Nodes.AddNode(n.Var, lo, hi)

	e.notMemo[f] = result
	return result
}

// Restrict returns the cofactor of f with variable v fixed to value: for
// every branch on v, replace it with the corresponding child; branches on
// other variables, and leaves, recurse structurally unchanged. This is the
// primitive behind select_item/exclude_item (§4.3).
func (e *Engine) Restrict(f NodeID, v int, value bool) NodeID {
	if f == FalseNode || f == TrueNode {
		return f
	}

	key := restrictKey{f: f, v: v, value: value}
	if cached, ok := e.restrictMemo[key]; ok {
		return cached
	}

	n, err := e.Nodes.GetNode(f)
	if err != nil {
		return f
	}

	var result NodeID
	switch {
	case n.Var > v:
		// f cannot depend on v (variables only increase going down).
		result = f
	case n.Var == v:
		if value {
			result = n.Hi
		} else {
			result = n.Lo
		}
	default:
		lo := e.Restrict(n.Lo, v, value)
		hi := e.Restrict(n.Hi, v, value)
		result = e.Nodes.AddNode(n.Var, lo, hi)
	}

	e.restrictMemo[key] = result
	return result
}

func (e *Engine) minVar(f, g NodeID) int {
	vf, vg := e.varOf(f), e.varOf(g)
	if vf < vg {
		return vf
	}
	return vg
}

func canonicalPair(f, g NodeID) pairKey {
	if f <= g {
		return pairKey{lo: f, hi: g}
	}
	return pairKey{lo: g, hi: f}
}
