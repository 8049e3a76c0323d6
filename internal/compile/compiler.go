// Package compile builds BDD and ZDD roots from a catalog of families and a
// set of exclusion/inclusion rules (§4.1). It is deliberately decoupled from
// the closetdd package's Item/Family types — it speaks only the plain
// strings and variable numbers the engines themselves understand — so it
// can be unit tested without pulling in catalog validation, matching the
// boundary drawn by bowtie-core's closet_builder module, which builds
// diagrams from already-validated contents.
package compile

import (
	"github.com/closetkit/closetdd/bdd"
	"github.com/closetkit/closetdd/zdd"
)

// Item and Family mirror the root package's string-based identifiers.
// Kept distinct to avoid an import cycle (closetdd imports compile, not the
// other way around).
type Item string
type Family string

// FamilySpec lists a family's items in declaration order — the order that
// fixes both variable priority and complete_outfit's tie-break (§4.5).
type FamilySpec struct {
	Family Family
	Items  []Item
}

// ExclusionRule forbids selecting both A and B together. Symmetric in
// meaning (§3): the caller is expected to have already canonicalised
// storage, but the constraint built here treats A and B interchangeably.
type ExclusionRule struct {
	A, B Item
}

// InclusionRule means selecting Selection forces selecting Other. One-way.
type InclusionRule struct {
	Selection, Other Item
}

// Input is everything the compiler needs: families in declaration order,
// both rule lists, and the variable number assigned to each item (expected
// to be Priority+1, since node store variable 0 is reserved for terminals).
type Input struct {
	Families   []FamilySpec
	Exclusions []ExclusionRule
	Inclusions []InclusionRule
	VarOf      map[Item]int
}

// Result holds the compiled roots. A caller that only needs one engine may
// ignore the other field; both are always computed since the compiler's
// cost is dominated by the catalog size, not by building twice.
type Result struct {
	BDDRoot bdd.NodeID
	ZDDRoot zdd.NodeID
}

// Compile builds both roots against the given engines, which must already
// be associated with the Node Stores the caller intends to query against.
func Compile(b *bdd.Engine, z *zdd.Engine, in Input) Result {
	return Result{
		BDDRoot: compileBDD(b, in),
		ZDDRoot: compileZDD(z, in),
	}
}

// compileBDD builds the conjunction of every family's sibling constraint
// with every rule constraint, in that order (§4.1). The final reduced
// diagram does not depend on the order — conjunction is commutative and
// associative under the node store's interning — but building in this
// order mirrors the source's declared sequence.
func compileBDD(b *bdd.Engine, in Input) bdd.NodeID {
	root := b.True()

	for _, fam := range in.Families {
		root = b.And(root, siblingConstraint(b, fam.Items, in.VarOf))
	}
	for _, rule := range in.Exclusions {
		root = b.And(root, exclusionConstraint(b, rule, in.VarOf))
	}
	for _, rule := range in.Inclusions {
		root = b.And(root, inclusionConstraint(b, rule, in.VarOf))
	}

	return root
}

// siblingConstraint builds the "exactly one of items" disjunction of
// conjunctions (§4.1): for each item, it being selected and every sibling
// being deselected.
func siblingConstraint(b *bdd.Engine, items []Item, varOf map[Item]int) bdd.NodeID {
	result := b.False()
	for _, chosen := range items {
		term := b.PositiveBranch(varOf[chosen])
		for _, other := range items {
			if other == chosen {
				continue
			}
			term = b.And(term, b.NegativeBranch(varOf[other]))
		}
		result = b.Or(result, term)
	}
	return result
}

// exclusionConstraint builds ¬a ∨ ¬b.
func exclusionConstraint(b *bdd.Engine, rule ExclusionRule, varOf map[Item]int) bdd.NodeID {
	return b.Or(b.NegativeBranch(varOf[rule.A]), b.NegativeBranch(varOf[rule.B]))
}

// inclusionConstraint builds ¬selection ∨ other.
func inclusionConstraint(b *bdd.Engine, rule InclusionRule, varOf map[Item]int) bdd.NodeID {
	return b.Or(b.NegativeBranch(varOf[rule.Selection]), b.PositiveBranch(varOf[rule.Other]))
}

// compileZDD builds the family-of-singletons per family, products them
// across families, then restricts by every rule (§4.1).
func compileZDD(z *zdd.Engine, in Input) zdd.NodeID {
	root := z.Always()

	for _, fam := range in.Families {
		root = z.Product(root, familySingletons(z, fam.Items, in.VarOf))
	}
	for _, rule := range in.Exclusions {
		root = applyZDDExclusion(z, root, in.VarOf[rule.A], in.VarOf[rule.B])
	}
	for _, rule := range in.Inclusions {
		root = applyZDDInclusion(z, root, in.VarOf[rule.Selection], in.VarOf[rule.Other])
	}

	return root
}

// familySingletons builds { {i1}, {i2}, ..., {ik} }: the disjoint union of
// singleton sub-diagrams (§4.1's "xor of singletons" — since the singletons
// are pairwise disjoint, union and symmetric difference coincide, and union
// is the operation the ZDD Engine actually exposes).
func familySingletons(z *zdd.Engine, items []Item, varOf map[Item]int) zdd.NodeID {
	family := z.Never()
	for _, item := range items {
		family = z.Union(family, z.Singleton(varOf[item]))
	}
	return family
}

// applyZDDExclusion keeps exactly the member sets that do not contain both
// a and b: (sets lacking a) ∪ (sets lacking b).
func applyZDDExclusion(z *zdd.Engine, root zdd.NodeID, a, b int) zdd.NodeID {
	return z.Union(z.SubsetNot(root, a), z.SubsetNot(root, b))
}

// applyZDDInclusion keeps exactly the member sets that do not contain a
// without also containing b: (sets lacking a) ∪ (sets containing b).
func applyZDDInclusion(z *zdd.Engine, root zdd.NodeID, selection, other int) zdd.NodeID {
	return z.Union(z.SubsetNot(root, selection), z.Subset(root, other))
}
