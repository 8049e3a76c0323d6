package closetdd

// Item is an opaque identifier naming a selectable thing. Equality is
// plain string equality; the total order used by diagrams comes from the
// Priority assigned by a Universe, not from Item's own lexical order.
type Item string

// Family is an opaque identifier naming a partition cell of items. Every
// item belongs to exactly one family, its home family.
type Family string

// Priority is the position of a variable (item) in the global order shared
// by every diagram built against a Universe. Lower priorities sit closer to
// the root.
type Priority int

// Universe assigns a stable total order to every item known to a Catalog.
// All diagrams derived from the same Catalog share this order, which is why
// two builds of the same (catalog, rules) pair always yield the same node
// ids: the order of co-factoring never changes.
//
// The order is fixed at construction time from the catalog's family and
// item declaration order (families first, then items within a family, both
// in the order they were first added to the ClosetBuilder). There is no
// reordering heuristic: spec.md §1 rules that out as a non-goal.
type Universe struct {
	items      []Item
	priorities map[Item]Priority
}

// newUniverse builds a Universe from items in declaration order. The first
// item gets Priority 0.
func newUniverse(items []Item) *Universe {
	u := &Universe{
		items:      append([]Item(nil), items...),
		priorities: make(map[Item]Priority, len(items)),
	}
	for i, item := range u.items {
		u.priorities[item] = Priority(i)
	}
	return u
}

// Priority returns the item's position in the universe's total order and
// whether the item is known.
func (u *Universe) Priority(item Item) (Priority, bool) {
	p, ok := u.priorities[item]
	return p, ok
}

// Items returns the universe's items in canonical (priority) order.
func (u *Universe) Items() []Item {
	return append([]Item(nil), u.items...)
}

// Len returns the number of items in the universe.
func (u *Universe) Len() int {
	return len(u.items)
}

// Contains reports whether item is known to the universe.
func (u *Universe) Contains(item Item) bool {
	_, ok := u.priorities[item]
	return ok
}
