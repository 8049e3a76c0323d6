package closetdd

// Outfit is a complete admissible selection: exactly one item per family,
// satisfying every rule (§3).
type Outfit struct {
	Items []Item
}

// Has reports whether item is part of the outfit.
func (o *Outfit) Has(item Item) bool {
	for _, it := range o.Items {
		if it == item {
			return true
		}
	}
	return false
}

// CompleteOutfit extends selections into a full Outfit, one item per
// family, compatible with every rule (§4.5). Validation runs in the order
// documented there: unknown items, then multiple-per-family, then joint
// admissibility. Families left unfixed by selections are completed in
// catalog declaration order, each picking its first (lowest-priority)
// compatible item — the deterministic tie-break resolved in SPEC_FULL.md.
// Requires a BDD root (Backend BDDOnly or Both); the admissibility test
// co-factors the BDD directly rather than re-deriving it from enumerated
// combinations.
func (c *Closet) CompleteOutfit(selections []Item) (*Outfit, error) {
	var unknown []Item
	for _, item := range selections {
		if !c.universe.Contains(item) {
			unknown = append(unknown, item)
		}
	}
	if len(unknown) > 0 {
		return nil, newUnknownItemsError(unknown)
	}

	byFamily := make(map[Family][]Item)
	for _, item := range selections {
		home, _ := c.catalog.HomeFamily(item)
		byFamily[home] = append(byFamily[home], item)
	}
	multi := make(map[Family][]Item)
	for family, items := range byFamily {
		if len(items) > 1 {
			multi[family] = items
		}
	}
	if len(multi) > 0 {
		return nil, newMultipleItemsPerFamilyError(multi)
	}

	fixed := toBoolMap(selections)
	if !c.admissible(fixed) {
		return nil, newIncompatibleSelectionsError(c.minimalConflict(selections))
	}

	fixedFamilies := make(map[Family]bool, len(byFamily))
	for family := range byFamily {
		fixedFamilies[family] = true
	}

	outfit := append([]Item(nil), selections...)
	current := fixed

	for _, family := range c.catalog.Families() {
		if fixedFamilies[family] {
			continue
		}
		for _, item := range c.catalog.ItemsIn(family) {
			trial := cloneBoolMap(current)
			trial[item] = true
			if c.admissible(trial) {
				current = trial
				outfit = append(outfit, item)
				break
			}
		}
	}

	return &Outfit{Items: outfit}, nil
}

// admissible reports whether fixing every item of fixed to its given value
// still leaves at least one satisfying assignment. Restrict order never
// changes the result (invariant 4, §8), so map iteration order is safe.
func (c *Closet) admissible(fixed map[Item]bool) bool {
	f := c.bddRoot
	for item, value := range fixed {
		f = c.session.bdd.Restrict(f, c.varOf(item), value)
	}
	return f != c.session.bdd.False()
}

// minimalConflict greedily drops items from selections while the remainder
// stays inadmissible, returning a locally-minimal conflicting subset in
// selection order (§4.5 "the minimal conflicting subset").
func (c *Closet) minimalConflict(selections []Item) []Item {
	candidate := append([]Item(nil), selections...)
	for {
		reducedAny := false
		for i := range candidate {
			reduced := removeAt(candidate, i)
			if len(reduced) == 0 {
				continue
			}
			if !c.admissible(toBoolMap(reduced)) {
				candidate = reduced
				reducedAny = true
				break
			}
		}
		if !reducedAny {
			return candidate
		}
	}
}

func toBoolMap(items []Item) map[Item]bool {
	m := make(map[Item]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

func cloneBoolMap(m map[Item]bool) map[Item]bool {
	cp := make(map[Item]bool, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

func removeAt(items []Item, i int) []Item {
	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:i]...)
	out = append(out, items[i+1:]...)
	return out
}
