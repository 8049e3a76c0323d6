package closetdd

import (
	"sort"

	"github.com/closetkit/closetdd/bdd"
	"github.com/closetkit/closetdd/zdd"
)

// Closet pairs a Universe and Catalog with the compiled BDD and/or ZDD
// roots built against them (§3 "Diagram": a pair (universe_snapshot,
// root_node_id), immutable after construction). A Closet with only one
// backend compiled (see Backend) has a zero root on the other side; callers
// that built with Both never observe a zero root.
type Closet struct {
	session  *Session
	universe *Universe
	catalog  *Catalog
	bddRoot  bdd.NodeID
	zddRoot  zdd.NodeID
}

// BDDRoot returns the observable BDD root id (§6 "root() accessor").
func (c *Closet) BDDRoot() bdd.NodeID { return c.bddRoot }

// ZDDRoot returns the observable ZDD root id (§6 "root() accessor").
func (c *Closet) ZDDRoot() zdd.NodeID { return c.zddRoot }

// Universe exposes the variable order this Closet was compiled against.
func (c *Closet) Universe() *Universe { return c.universe }

// Catalog exposes the families and items this Closet was compiled against.
func (c *Closet) Catalog() *Catalog { return c.catalog }

func (c *Closet) varOf(item Item) int {
	p, _ := c.universe.Priority(item)
	return int(p) + 1
}

func (c *Closet) itemOf(v int) Item {
	return c.universe.items[v-1]
}

func (c *Closet) itemsToVars(items []Item) []int {
	vars := make([]int, len(items))
	for i, item := range items {
		vars[i] = c.varOf(item)
	}
	return vars
}

func (c *Closet) varsToItems(vars []int) []Item {
	items := make([]Item, len(vars))
	for i, v := range vars {
		items[i] = c.itemOf(v)
	}
	sort.Slice(items, func(i, j int) bool {
		pi, _ := c.universe.Priority(items[i])
		pj, _ := c.universe.Priority(items[j])
		return pi < pj
	})
	return items
}

// clone returns a shallow copy sharing the same session (and hence the same
// Node Store): restriction may add nodes to the store but never changes
// existing ones, so the copy differs from c only in which roots it points at.
func (c *Closet) clone() *Closet {
	cp := *c
	return &cp
}

// SelectItem returns a new Closet whose admissible assignments are those of
// c conditioned on item being chosen (§4.5).
func (c *Closet) SelectItem(item Item) *Closet {
	v := c.varOf(item)
	next := c.clone()
	if c.bddRoot != 0 {
		next.bddRoot = c.session.bdd.Restrict(c.bddRoot, v, true)
	}
	if c.zddRoot != 0 {
		next.zddRoot = c.session.zdd.Subset(c.zddRoot, v)
	}
	return next
}

// ExcludeItem returns a new Closet whose admissible assignments are those of
// c conditioned on item being excluded (§4.5). Dual of SelectItem.
func (c *Closet) ExcludeItem(item Item) *Closet {
	v := c.varOf(item)
	next := c.clone()
	if c.bddRoot != 0 {
		next.bddRoot = c.session.bdd.Restrict(c.bddRoot, v, false)
	}
	if c.zddRoot != 0 {
		next.zddRoot = c.session.zdd.SubsetNot(c.zddRoot, v)
	}
	return next
}

// Combinations enumerates every outfit admitted by the ZDD root, in no
// particular order. Requires a ZDD root (Backend ZDDOnly or Both).
func (c *Closet) Combinations() [][]Item {
	sets := c.session.zdd.CombinationsIter(c.zddRoot)
	result := make([][]Item, len(sets))
	for i, set := range sets {
		result[i] = c.varsToItems(set)
	}
	return result
}

// CombinationsWith filters Combinations to outfits containing every item of
// inclusions and none of exclusions.
func (c *Closet) CombinationsWith(inclusions, exclusions []Item) [][]Item {
	sets := c.session.zdd.CombinationsWith(c.zddRoot, c.itemsToVars(inclusions), c.itemsToVars(exclusions))
	result := make([][]Item, len(sets))
	for i, set := range sets {
		result[i] = c.varsToItems(set)
	}
	return result
}

// ItemStatus classifies an item with respect to a partial selection, per
// §4.4.
type ItemStatus int

const (
	// StatusExcluded: the item appears in zero surviving combinations.
	StatusExcluded ItemStatus = iota
	// StatusSelected: the item is one of the inclusions.
	StatusSelected
	// StatusRequired: the item appears in every surviving combination.
	StatusRequired
	// StatusAvailable: the item appears in some, but not all, surviving
	// combinations.
	StatusAvailable
)

func fromZDDStatus(s zdd.Status) ItemStatus {
	switch s {
	case zdd.Selected:
		return StatusSelected
	case zdd.Required:
		return StatusRequired
	case zdd.Available:
		return StatusAvailable
	default:
		return StatusExcluded
	}
}

// Summarize classifies every item in the universe against
// CombinationsWith(inclusions, exclusions) (§4.4). The result is a map keyed
// by item, so it carries no order of its own; the universe's canonical order
// is available from Universe().Items().
func (c *Closet) Summarize(inclusions, exclusions []Item) map[Item]ItemStatus {
	allVars := make([]int, c.universe.Len())
	for i := range allVars {
		allVars[i] = i + 1
	}

	raw := c.session.zdd.Summarize(c.zddRoot, allVars, c.itemsToVars(inclusions), c.itemsToVars(exclusions))

	result := make(map[Item]ItemStatus, len(raw))
	for v, status := range raw {
		result[c.itemOf(v)] = fromZDDStatus(status)
	}
	return result
}

// Occurrences counts, across every admitted outfit, how many contain each
// item. Supplements §4.4 with the "occurrences" view original_source's
// Forest trait exposes alongside combinations.
func (c *Closet) Occurrences() map[Item]int {
	raw := c.session.zdd.Occurrences(c.zddRoot)
	result := make(map[Item]int, len(raw))
	for v, count := range raw {
		result[c.itemOf(v)] = count
	}
	return result
}
