package zdd

import "math"

// leafVar sorts after every real element, so cofactoring always prefers a
// real element over a terminal.
const leafVar = math.MaxInt32

// Engine evaluates ZDD set-algebra operations over a shared NodeTable.
// Binary operations are computed by structural recursion with a
// memoisation table keyed by (op, lhs, rhs), session-long per §4.2.
type Engine struct {
	Nodes *NodeTable

	unionMemo     map[pairKey]NodeID
	intersectMemo map[pairKey]NodeID
	productMemo   map[pairKey]NodeID
	subsetMemo    map[elementKey]NodeID
	subsetNotMemo map[elementKey]NodeID
	onsetMemo     map[elementKey]NodeID
}

type pairKey struct {
	lo, hi NodeID
}

type elementKey struct {
	f NodeID
	v int
}

// NewEngine creates an Engine over a fresh NodeTable.
func NewEngine() *Engine {
	return &Engine{
		Nodes:         NewNodeTable(),
		unionMemo:     make(map[pairKey]NodeID),
		intersectMemo: make(map[pairKey]NodeID),
		productMemo:   make(map[pairKey]NodeID),
		subsetMemo:    make(map[elementKey]NodeID),
		subsetNotMemo: make(map[elementKey]NodeID),
		onsetMemo:     make(map[elementKey]NodeID),
	}
}

// Always returns the family containing exactly the empty set.
func (e *Engine) Always() NodeID { return AlwaysNode }

// Never returns the empty family.
func (e *Engine) Never() NodeID { return NeverNode }

// Singleton returns the family { {v} }.
func (e *Engine) Singleton(v int) NodeID {
	return e.Nodes.AddNode(v, NeverNode, AlwaysNode)
}

func (e *Engine) varOf(id NodeID) int {
	if id == NeverNode || id == AlwaysNode {
		return leafVar
	}
	n, err := e.Nodes.GetNode(id)
	if err != nil {
		return leafVar
	}
	return n.Var
}

// cofactor returns (lo, hi): the subfamily of f not containing v, and the
// subfamily of f containing v with v stripped from each member set (the raw
// internal high-arc convention; Subset reconstructs v into the result).
func (e *Engine) cofactor(f NodeID, v int) (lo, hi NodeID) {
	if f == NeverNode || f == AlwaysNode {
		return f, NeverNode
	}
	n, err := e.Nodes.GetNode(f)
	if err != nil || n.Var != v {
		return f, NeverNode
	}
	return n.Lo, n.Hi
}

func canonicalPair(f, g NodeID) pairKey {
	if f <= g {
		return pairKey{lo: f, hi: g}
	}
	return pairKey{lo: g, hi: f}
}

func (e *Engine) minVar(f, g NodeID) int {
	vf, vg := e.varOf(f), e.varOf(g)
	if vf < vg {
		return vf
	}
	return vg
}

// Union computes F ∪ G.
func (e *Engine) Union(f, g NodeID) NodeID {
	if f == g {
		return f
	}
	if f == NeverNode {
		return g
	}
	if g == NeverNode {
		return f
	}

	key := canonicalPair(f, g)
	if cached, ok := e.unionMemo[key]; ok {
		return cached
	}

	v := e.minVar(f, g)
	fLo, fHi := e.cofactor(f, v)
	gLo, gHi := e.cofactor(g, v)

	lo := e.Union(fLo, gLo)
	hi := e.Union(fHi, gHi)
	result := e.Nodes.AddNode(v, lo, hi)

	e.unionMemo[key] = result
	return result
}

// Intersect computes F ∩ G.
func (e *Engine) Intersect(f, g NodeID) NodeID {
	if f == g {
		return f
	}
	if f == NeverNode || g == NeverNode {
		return NeverNode
	}

	key := canonicalPair(f, g)
	if cached, ok := e.intersectMemo[key]; ok {
		return cached
	}

	v := e.minVar(f, g)
	fLo, fHi := e.cofactor(f, v)
	gLo, gHi := e.cofactor(g, v)

	lo := e.Intersect(fLo, gLo)
	hi := e.Intersect(fHi, gHi)
	result := e.Nodes.AddNode(v, lo, hi)

	e.intersectMemo[key] = result
	return result
}

// Product computes { s ∪ t : s ∈ F, t ∈ G }.
func (e *Engine) Product(f, g NodeID) NodeID {
	if f == NeverNode || g == NeverNode {
		return NeverNode
	}
	if f == AlwaysNode {
		return g
	}
	if g == AlwaysNode {
		return f
	}

	key := canonicalPair(f, g)
	if cached, ok := e.productMemo[key]; ok {
		return cached
	}

	v := e.minVar(f, g)
	fLo, fHi := e.cofactor(f, v)
	gLo, gHi := e.cofactor(g, v)

	lo := e.Product(fLo, gLo)
	hi := e.Union(e.Product(fLo, gHi), e.Union(e.Product(fHi, gLo), e.Product(fHi, gHi)))
	result := e.Nodes.AddNode(v, lo, hi)

	e.productMemo[key] = result
	return result
}

// Subset returns { s ∈ F : v ∈ s }. Grounded on weave's
// zdd2/forest/node/subset.rs::subset_inner: a branch whose own variable is v
// is rewound to require the high arc (Lo forced to Never, Hi kept as-is); a
// branch on a variable above v in the order must still be walked into on
// both arms, since v may occur in either child's subtree, and is rebuilt on
// its own variable once both children have been filtered. A branch whose own
// variable already sorts after v cannot have v anywhere below it (variables
// strictly increase descending), so that whole subtree is dropped.
func (e *Engine) Subset(f NodeID, v int) NodeID {
	if f == NeverNode || f == AlwaysNode {
		return NeverNode
	}

	key := elementKey{f: f, v: v}
	if cached, ok := e.subsetMemo[key]; ok {
		return cached
	}

	n, err := e.Nodes.GetNode(f)
	if err != nil {
		return NeverNode
	}

	var result NodeID
	switch {
	case n.Var == v:
		result = e.Nodes.AddNode(v, NeverNode, n.Hi)
	case n.Var > v:
		result = NeverNode
	default:
		lo := e.Subset(n.Lo, v)
		hi := e.Subset(n.Hi, v)
		result = e.Nodes.AddNode(n.Var, lo, hi)
	}

	e.subsetMemo[key] = result
	return result
}

// SubsetNot returns { s ∈ F : v ∉ s }, the dual walk of Subset: a branch on v
// itself keeps only its low arc (no further recursion needed there, since the
// ordering invariant guarantees v cannot reoccur beneath it); a branch above v
// in the order is walked into on both arms and rebuilt; a branch that already
// sorts after v can never contain v below it, so every set in that subtree
// trivially satisfies "v not in s" and the subtree is returned unchanged.
func (e *Engine) SubsetNot(f NodeID, v int) NodeID {
	if f == NeverNode || f == AlwaysNode {
		return f
	}

	key := elementKey{f: f, v: v}
	if cached, ok := e.subsetNotMemo[key]; ok {
		return cached
	}

	n, err := e.Nodes.GetNode(f)
	if err != nil {
		return f
	}

	var result NodeID
	switch {
	case n.Var == v:
		result = n.Lo
	case n.Var > v:
		result = f
	default:
		lo := e.SubsetNot(n.Lo, v)
		hi := e.SubsetNot(n.Hi, v)
		result = e.Nodes.AddNode(n.Var, lo, hi)
	}

	e.subsetNotMemo[key] = result
	return result
}

// SubsetAll returns the intersection, over every v in vars, of Subset(F,v):
// the member sets of F that contain every element of vars.
func (e *Engine) SubsetAll(f NodeID, vars []int) NodeID {
	result := f
	for _, v := range vars {
		result = e.Intersect(result, e.Subset(f, v))
	}
	if len(vars) == 0 {
		return f
	}
	return result
}

// SubsetNone returns the intersection, over every v in vars, of
// SubsetNot(F,v): the member sets of F that contain none of vars. This is
// the same operation as Offset.
func (e *Engine) SubsetNone(f NodeID, vars []int) NodeID {
	result := f
	for _, v := range vars {
		result = e.Intersect(result, e.SubsetNot(f, v))
	}
	return result
}

// Offset returns the member sets of F that do not intersect vars.
func (e *Engine) Offset(f NodeID, vars []int) NodeID {
	return e.SubsetNone(f, vars)
}

// Onset returns the member sets of F that contain every element of vars,
// with those elements removed. Folds onsetStep over vars one at a time.
func (e *Engine) Onset(f NodeID, vars []int) NodeID {
	acc := f
	for _, v := range vars {
		acc = e.onsetStep(acc, v)
	}
	return acc
}

// onsetStep walks the same shape as Subset, but at the branch matching v it
// strips v from the output by returning Hi directly instead of rebuilding a
// branch on v, which is the "remove v from the surviving sets" half of Onset.
func (e *Engine) onsetStep(f NodeID, v int) NodeID {
	if f == NeverNode || f == AlwaysNode {
		return NeverNode
	}

	key := elementKey{f: f, v: v}
	if cached, ok := e.onsetMemo[key]; ok {
		return cached
	}

	n, err := e.Nodes.GetNode(f)
	if err != nil {
		return NeverNode
	}

	var result NodeID
	switch {
	case n.Var == v:
		result = n.Hi
	case n.Var > v:
		result = NeverNode
	default:
		lo := e.onsetStep(n.Lo, v)
		hi := e.onsetStep(n.Hi, v)
		result = e.Nodes.AddNode(n.Var, lo, hi)
	}

	e.onsetMemo[key] = result
	return result
}

// Combinations enumerates the member sets of f by recursive DFS. It is the
// test oracle's slow twin to CombinationsIter: both must produce identical
// output, and this form exists to catch regressions that only an
// independent, naively-recursive implementation would notice.
func (e *Engine) Combinations(f NodeID) [][]int {
	if f == NeverNode {
		return nil
	}
	if f == AlwaysNode {
		return [][]int{{}}
	}
	n, err := e.Nodes.GetNode(f)
	if err != nil {
		return nil
	}

	var result [][]int
	result = append(result, e.Combinations(n.Lo)...)
	for _, s := range e.Combinations(n.Hi) {
		set := make([]int, 0, len(s)+1)
		set = append(set, n.Var)
		set = append(set, s...)
		result = append(result, set)
	}
	return result
}

// CombinationsIter enumerates the member sets of f iteratively, using an
// explicit work stack instead of the call stack, so it does not overflow on
// deep diagrams. Its output must equal Combinations' output for any f
// (§9 "Enumeration form").
func (e *Engine) CombinationsIter(root NodeID) [][]int {
	if root == NeverNode {
		return nil
	}
	if root == AlwaysNode {
		return [][]int{{}}
	}

	computed := map[NodeID]bool{NeverNode: true, AlwaysNode: true}
	results := map[NodeID][][]int{NeverNode: nil, AlwaysNode: {{}}}

	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		if computed[id] {
			stack = stack[:len(stack)-1]
			continue
		}

		n, err := e.Nodes.GetNode(id)
		if err != nil {
			computed[id] = true
			results[id] = nil
			stack = stack[:len(stack)-1]
			continue
		}

		if !computed[n.Lo] {
			stack = append(stack, n.Lo)
			continue
		}
		if !computed[n.Hi] {
			stack = append(stack, n.Hi)
			continue
		}

		var combined [][]int
		combined = append(combined, results[n.Lo]...)
		for _, s := range results[n.Hi] {
			set := make([]int, 0, len(s)+1)
			set = append(set, n.Var)
			set = append(set, s...)
			combined = append(combined, set)
		}
		results[id] = combined
		computed[id] = true
		stack = stack[:len(stack)-1]
	}

	return results[root]
}

// CombinationsWith filters Combinations(f) to sets containing every element
// of inclusions and none of exclusions.
func (e *Engine) CombinationsWith(f NodeID, inclusions, exclusions []int) [][]int {
	inclSet := toSet(inclusions)
	exclSet := toSet(exclusions)

	var result [][]int
	for _, set := range e.CombinationsIter(f) {
		present := toSet(set)
		ok := true
		for v := range inclSet {
			if !present[v] {
				ok = false
				break
			}
		}
		if ok {
			for v := range exclSet {
				if present[v] {
					ok = false
					break
				}
			}
		}
		if ok {
			result = append(result, set)
		}
	}
	return result
}

// Status classifies an element with respect to a partial selection, per
// §4.4's Summarize operation.
type Status int

const (
	// Excluded: the element appears in zero surviving combinations.
	Excluded Status = iota
	// Selected: the element is one of the inclusions.
	Selected
	// Required: the element appears in every surviving combination.
	Required
	// Available: the element appears in at least one, but not all,
	// surviving combinations.
	Available
)

// Summarize classifies every element of vars against f restricted to
// CombinationsWith(inclusions, exclusions).
func (e *Engine) Summarize(f NodeID, vars []int, inclusions, exclusions []int) map[int]Status {
	combos := e.CombinationsWith(f, inclusions, exclusions)
	total := len(combos)

	counts := make(map[int]int)
	for _, set := range combos {
		for _, v := range set {
			counts[v]++
		}
	}

	inclSet := toSet(inclusions)
	result := make(map[int]Status, len(vars))
	for _, v := range vars {
		switch count := counts[v]; {
		case inclSet[v]:
			result[v] = Selected
		case count == 0:
			result[v] = Excluded
		case count == total:
			result[v] = Required
		default:
			result[v] = Available
		}
	}
	return result
}

// Occurrences counts, across every member set of f (unfiltered), how many
// member sets contain each element.
func (e *Engine) Occurrences(f NodeID) map[int]int {
	counts := make(map[int]int)
	for _, set := range e.CombinationsIter(f) {
		for _, v := range set {
			counts[v]++
		}
	}
	return counts
}

func toSet(vs []int) map[int]bool {
	set := make(map[int]bool, len(vs))
	for _, v := range vs {
		set[v] = true
	}
	return set
}
