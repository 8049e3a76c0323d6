package bdd

import "testing"

func TestAndOrTerminalRules(t *testing.T) {
	e := NewEngine()
	v1 := e.PositiveBranch(1)

	if got := e.And(e.False(), v1); got != e.False() {
		t.Errorf("and(0,f) = %v, want False", got)
	}
	if got := e.And(e.True(), v1); got != v1 {
		t.Errorf("and(1,f) = %v, want f", got)
	}
	if got := e.Or(e.True(), v1); got != e.True() {
		t.Errorf("or(1,f) = %v, want True", got)
	}
	if got := e.Or(e.False(), v1); got != v1 {
		t.Errorf("or(0,f) = %v, want f", got)
	}
}

func TestXorTerminalRules(t *testing.T) {
	e := NewEngine()
	v1 := e.PositiveBranch(1)

	if got := e.Xor(v1, e.False()); got != v1 {
		t.Errorf("xor(f,0) = %v, want f", got)
	}
	if got := e.Xor(v1, v1); got != e.False() {
		t.Errorf("xor(f,f) = %v, want False", got)
	}
}

func TestNotSwapsLeaves(t *testing.T) {
	e := NewEngine()
	v1 := e.PositiveBranch(1)
	nv1 := e.NegativeBranch(1)

	if got := e.Not(v1); got != nv1 {
		t.Errorf("not(v1) = %v, want negative branch", got)
	}
	if got := e.Not(e.True()); got != e.False() {
		t.Errorf("not(True) = %v, want False", got)
	}
}

// TestSiblingTwoItems mirrors bowtie-core's
// one_families_with_two_items (original_source/bowtie-core/src/bdd/closet_builder/mod.rs):
// a two-item family produces a branch on the first-declared (lowest-priority)
// item whose low child asserts the other item and whose high child negates it.
func TestSiblingTwoItems(t *testing.T) {
	e := NewEngine()
	// red = var 1 (declared first), blue = var 2 (declared second):
	// root = branch(red, positive(blue), negative(blue))
	red := 1
	blue := 2

	sibling := e.Xor(e.PositiveBranch(red), e.PositiveBranch(blue))

	expectedLow := e.PositiveBranch(blue)
	expectedHigh := e.NegativeBranch(blue)
	expected := e.Nodes.AddNode(red, expectedLow, expectedHigh)

	if sibling != expected {
		t.Errorf("sibling xor = %v, want %v", sibling, expected)
	}
}

// TestExclusionRemovesBothSelected mirrors bowtie-core's
// selecting_red_disallows_selecting_jeans.
func TestExclusionRemovesBothSelected(t *testing.T) {
	e := NewEngine()
	red, jeans := 1, 2

	exclusion := e.Or(e.NegativeBranch(red), e.NegativeBranch(jeans))
	bothSelected := e.And(e.PositiveBranch(red), e.PositiveBranch(jeans))

	if got := e.And(exclusion, bothSelected); got != e.False() {
		t.Errorf("exclusion & (red & jeans) = %v, want False", got)
	}
}

// TestInclusionIsDirectional mirrors bowtie-core's inclusion tests:
// selecting the "other" item never forces the "selection" item.
func TestInclusionIsDirectional(t *testing.T) {
	e := NewEngine()
	red, jeans := 1, 2

	inclusion := e.Or(e.NegativeBranch(red), e.PositiveBranch(jeans))

	// red selected -> jeans forced.
	withRed := e.Restrict(inclusion, red, true)
	if got := e.Restrict(withRed, jeans, false); got != e.False() {
		t.Errorf("red & inclusion & !jeans = %v, want False (jeans forced)", got)
	}

	// jeans selected -> red not forced.
	withJeans := e.Restrict(inclusion, jeans, true)
	if got := e.Restrict(withJeans, red, false); got != e.True() {
		t.Errorf("jeans & inclusion & !red = %v, want True (red not forced)", got)
	}
}

func TestRestrictSelectExcludeDuality(t *testing.T) {
	e := NewEngine()
	f := e.Xor(e.PositiveBranch(1), e.PositiveBranch(2))

	selected := e.Restrict(f, 1, true)
	excluded := e.Restrict(f, 1, false)

	// select(x) and exclude(x), each guarded by its own value of x,
	// recombine into exactly the admissible set of f (property 2, §8).
	union := e.Or(e.And(e.PositiveBranch(1), selected), e.And(e.NegativeBranch(1), excluded))
	full := f
	if union != full {
		t.Errorf("select|exclude mismatch: %v != %v", union, full)
	}
}

func TestRestrictIdempotent(t *testing.T) {
	e := NewEngine()
	f := e.Xor(e.PositiveBranch(1), e.PositiveBranch(2))

	once := e.Restrict(f, 1, true)
	twice := e.Restrict(once, 1, true)
	if once != twice {
		t.Errorf("restrict not idempotent: %v != %v", once, twice)
	}
}

func TestCommutativityOfFixing(t *testing.T) {
	e := NewEngine()
	f := e.Xor(e.PositiveBranch(1), e.PositiveBranch(2))
	f = e.And(f, e.Xor(e.PositiveBranch(3), e.PositiveBranch(4)))

	ab := e.Restrict(e.Restrict(f, 1, true), 3, true)
	ba := e.Restrict(e.Restrict(f, 3, true), 1, true)
	if ab != ba {
		t.Errorf("restrict order matters: %v != %v", ab, ba)
	}
}

func TestHashConsingIdempotent(t *testing.T) {
	e := NewEngine()
	a := e.Nodes.AddNode(1, FalseNode, TrueNode)
	b := e.Nodes.AddNode(1, FalseNode, TrueNode)
	if a != b {
		t.Errorf("AddNode not idempotent: %v != %v", a, b)
	}
}

func TestReductionCollapsesEqualChildren(t *testing.T) {
	e := NewEngine()
	if got := e.Nodes.AddNode(1, TrueNode, TrueNode); got != TrueNode {
		t.Errorf("AddNode(v,True,True) = %v, want True (BDD reduction)", got)
	}
}
