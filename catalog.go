package closetdd

// Catalog is a mapping from Family to a sequence of Items, together with the
// inverse mapping Item -> Family. It is built incrementally by
// ClosetBuilder and validated once, at Build time (§4.1 check 1).
type Catalog struct {
	// order preserves family declaration order; Go maps are unordered and
	// the variable order (and hence tie-break order, §4.5) depends on it.
	order    []Family
	families map[Family][]Item
	homes    map[Item]Family
}

func newCatalog() *Catalog {
	return &Catalog{
		families: make(map[Family][]Item),
		homes:    make(map[Item]Family),
	}
}

// addItem records item under family. Duplicate (family, item) pairs
// collapse; an item added under a second, different family is recorded as
// ill-formed and reported at Build time rather than rejected here, matching
// §6 ("a second item under a different family ... surfaces at build() as
// ConflictingFamilies").
func (c *Catalog) addItem(family Family, item Item) {
	if _, seen := c.families[family]; !seen {
		c.order = append(c.order, family)
	}
	for _, existing := range c.families[family] {
		if existing == item {
			return
		}
	}
	c.families[family] = append(c.families[family], item)
	if _, ok := c.homes[item]; !ok {
		c.homes[item] = family
	}
}

// Families returns the catalog's families in declaration order.
func (c *Catalog) Families() []Family {
	return append([]Family(nil), c.order...)
}

// ItemsIn returns the items declared under family, in declaration order.
func (c *Catalog) ItemsIn(family Family) []Item {
	return append([]Item(nil), c.families[family]...)
}

// HomeFamily returns the family an item was first declared under, and
// whether the item is known at all.
func (c *Catalog) HomeFamily(item Item) (Family, bool) {
	f, ok := c.homes[item]
	return f, ok
}

// AllItems returns every item across every family, in canonical
// (family-then-declaration) order.
func (c *Catalog) AllItems() []Item {
	var items []Item
	for _, family := range c.order {
		items = append(items, c.families[family]...)
	}
	return items
}

// findConflictingFamilies implements §4.1 check 1: an item whose entry in
// the per-family lists disagrees with its home in the inverse index. This
// can only happen via addItem recording the *first* family seen for an item
// while a later add_item call puts that same item in a different family's
// list.
func (c *Catalog) findConflictingFamilies() []FamilyConflict {
	seen := make(map[Item][]Family)
	var order []Item
	for _, family := range c.order {
		for _, item := range c.families[family] {
			if _, ok := seen[item]; !ok {
				order = append(order, item)
			}
			seen[item] = append(seen[item], family)
		}
	}

	var conflicts []FamilyConflict
	for _, item := range order {
		families := seen[item]
		if len(families) <= 1 {
			continue
		}
		home := c.homes[item]
		distinct := []Family{home}
		for _, f := range families {
			if f != home {
				distinct = append(distinct, f)
			}
		}
		if len(distinct) > 1 {
			conflicts = append(conflicts, FamilyConflict{Item: item, Families: distinct})
		}
	}
	return conflicts
}
