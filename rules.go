package closetdd

// ruleSet accumulates exclusion and inclusion rules as they are declared.
// Exclusion is stored undirected (as a canonical ordered pair) because
// spec.md §9 mandates symmetric *semantics* regardless of storage shape, and
// storing it once avoids emitting the same constraint twice. Inclusion is
// directional and stored as declared.
type ruleSet struct {
	exclusions []exclusionRule
	inclusions []inclusionRule
	seenExcl   map[[2]Item]bool
	seenIncl   map[[2]Item]bool
}

type exclusionRule struct {
	A, B Item
}

type inclusionRule struct {
	Selection, Other Item
}

func newRuleSet() *ruleSet {
	return &ruleSet{
		seenExcl: make(map[[2]Item]bool),
		seenIncl: make(map[[2]Item]bool),
	}
}

func canonicalPair(a, b Item) [2]Item {
	if a <= b {
		return [2]Item{a, b}
	}
	return [2]Item{b, a}
}

// addExclusion records that a and b cannot both be chosen. Duplicates
// (in either order) collapse.
func (r *ruleSet) addExclusion(a, b Item) {
	key := canonicalPair(a, b)
	if r.seenExcl[key] {
		return
	}
	r.seenExcl[key] = true
	r.exclusions = append(r.exclusions, exclusionRule{A: key[0], B: key[1]})
}

// addInclusion records that choosing selection forces choosing other.
// Duplicates collapse; unlike exclusion, direction matters.
func (r *ruleSet) addInclusion(selection, other Item) {
	key := [2]Item{selection, other}
	if r.seenIncl[key] {
		return
	}
	r.seenIncl[key] = true
	r.inclusions = append(r.inclusions, inclusionRule{Selection: selection, Other: other})
}

// findIllegalRules implements §4.1 checks 2 and 3: rules whose two items
// share a home family are illegal. Conflicts are deduplicated by sorted
// item pair, following the original's conflicts.dedup_by approach
// (weave-lib's closet_builder.rs).
func findIllegalRules(pairs [][2]Item, homes map[Item]Family) []RuleConflict {
	type key struct {
		family Family
		a, b   Item
	}
	var order []key
	seen := make(map[key]bool)

	for _, pair := range pairs {
		fa, aok := homes[pair[0]]
		fb, bok := homes[pair[1]]
		if !aok || !bok || fa != fb {
			continue
		}
		sorted := canonicalPair(pair[0], pair[1])
		k := key{family: fa, a: sorted[0], b: sorted[1]}
		if seen[k] {
			continue
		}
		seen[k] = true
		order = append(order, k)
	}

	var conflicts []RuleConflict
	for _, k := range order {
		conflicts = append(conflicts, RuleConflict{Family: k.family, Items: [2]Item{k.a, k.b}})
	}
	return conflicts
}
