package closetdd

import (
	"github.com/closetkit/closetdd/internal/compile"
)

// Backend selects which diagram root(s) a built Closet keeps. Build always
// compiles both roots; both are cheap to build relative to catalog size
// (§2), so the default is Both; narrowing is mostly useful for tests that
// only want to assert against one engine's shape.
type Backend int

const (
	// Both keeps both the BDD and ZDD roots (the default).
	Both Backend = iota
	// BDDOnly keeps only the BDD root; Closet.ZDDRoot will be zero.
	BDDOnly
	// ZDDOnly keeps only the ZDD root; Closet.BDDRoot will be zero.
	ZDDOnly
)

// BuilderOption configures a ClosetBuilder at creation time.
type BuilderOption func(*builderConfig)

type builderConfig struct {
	backend Backend
}

// WithBackend selects which root(s) Build keeps on the Closet.
func WithBackend(backend Backend) BuilderOption {
	return func(c *builderConfig) {
		c.backend = backend
	}
}

// ClosetBuilder accumulates a catalog and rule set, then compiles them into
// a Closet. Per §6, add_item/add_exclusion_rule/add_inclusion_rule are
// idempotent and never themselves fail — malformed input surfaces only at
// Build.
type ClosetBuilder struct {
	session *Session
	cfg     builderConfig
	catalog *Catalog
	rules   *ruleSet
}

func newClosetBuilder(session *Session, opts ...BuilderOption) *ClosetBuilder {
	cfg := builderConfig{backend: Both}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ClosetBuilder{
		session: session,
		cfg:     cfg,
		catalog: newCatalog(),
		rules:   newRuleSet(),
	}
}

// AddItem records item under family. Duplicate (family, item) pairs
// collapse; see Catalog.addItem for the conflicting-family surfacing rule.
func (b *ClosetBuilder) AddItem(family Family, item Item) *ClosetBuilder {
	b.catalog.addItem(family, item)
	return b
}

// AddItems records every item of items under family.
func (b *ClosetBuilder) AddItems(family Family, items ...Item) *ClosetBuilder {
	for _, item := range items {
		b.catalog.addItem(family, item)
	}
	return b
}

// AddExclusionRule records that a and b cannot both be chosen. Symmetric;
// duplicates (in either order) collapse.
func (b *ClosetBuilder) AddExclusionRule(a, b2 Item) *ClosetBuilder {
	b.rules.addExclusion(a, b2)
	return b
}

// AddExclusionRules records multiple exclusion rules at once.
func (b *ClosetBuilder) AddExclusionRules(rules ...[2]Item) *ClosetBuilder {
	for _, r := range rules {
		b.rules.addExclusion(r[0], r[1])
	}
	return b
}

// AddInclusionRule records that choosing selection forces choosing other.
// Directional; duplicates collapse.
func (b *ClosetBuilder) AddInclusionRule(selection, other Item) *ClosetBuilder {
	b.rules.addInclusion(selection, other)
	return b
}

// AddInclusionRules records multiple inclusion rules at once.
func (b *ClosetBuilder) AddInclusionRules(rules ...[2]Item) *ClosetBuilder {
	for _, r := range rules {
		b.rules.addInclusion(r[0], r[1])
	}
	return b
}

// Build validates the catalog and rules (§4.1, checks run in order) and
// compiles the requested backend(s) into a Closet.
func (b *ClosetBuilder) Build() (*Closet, error) {
	if conflicts := b.catalog.findConflictingFamilies(); len(conflicts) > 0 {
		return nil, newConflictingFamiliesError(conflicts)
	}

	homes := make(map[Item]Family)
	for _, item := range b.catalog.AllItems() {
		home, _ := b.catalog.HomeFamily(item)
		homes[item] = home
	}

	inclusionPairs := make([][2]Item, len(b.rules.inclusions))
	for i, r := range b.rules.inclusions {
		inclusionPairs[i] = [2]Item{r.Selection, r.Other}
	}
	if conflicts := findIllegalRules(inclusionPairs, homes); len(conflicts) > 0 {
		return nil, newIllegalInclusionRuleError(conflicts)
	}

	exclusionPairs := make([][2]Item, len(b.rules.exclusions))
	for i, r := range b.rules.exclusions {
		exclusionPairs[i] = [2]Item{r.A, r.B}
	}
	if conflicts := findIllegalRules(exclusionPairs, homes); len(conflicts) > 0 {
		return nil, newIllegalExclusionRuleError(conflicts)
	}

	universe := newUniverse(b.catalog.AllItems())

	varOf := make(map[compile.Item]int, universe.Len())
	for _, item := range universe.Items() {
		priority, _ := universe.Priority(item)
		varOf[compile.Item(item)] = int(priority) + 1
	}

	families := make([]compile.FamilySpec, 0, len(b.catalog.Families()))
	for _, family := range b.catalog.Families() {
		items := b.catalog.ItemsIn(family)
		compiledItems := make([]compile.Item, len(items))
		for i, item := range items {
			compiledItems[i] = compile.Item(item)
		}
		families = append(families, compile.FamilySpec{Family: compile.Family(family), Items: compiledItems})
	}

	exclusions := make([]compile.ExclusionRule, len(b.rules.exclusions))
	for i, r := range b.rules.exclusions {
		exclusions[i] = compile.ExclusionRule{A: compile.Item(r.A), B: compile.Item(r.B)}
	}
	inclusions := make([]compile.InclusionRule, len(b.rules.inclusions))
	for i, r := range b.rules.inclusions {
		inclusions[i] = compile.InclusionRule{Selection: compile.Item(r.Selection), Other: compile.Item(r.Other)}
	}

	input := compile.Input{
		Families:   families,
		Exclusions: exclusions,
		Inclusions: inclusions,
		VarOf:      varOf,
	}

	result := compile.Compile(b.session.bdd, b.session.zdd, input)
	closet := &Closet{
		session:  b.session,
		universe: universe,
		catalog:  b.catalog,
		bddRoot:  result.BDDRoot,
		zddRoot:  result.ZDDRoot,
	}
	switch b.cfg.backend {
	case BDDOnly:
		closet.zddRoot = 0
	case ZDDOnly:
		closet.bddRoot = 0
	}

	b.session.log.WithFields(map[string]interface{}{
		"families": len(families),
		"items":    universe.Len(),
	}).Debug("closetdd: closet built")

	return closet, nil
}

// MustBuild is like Build but panics on error. It exists for tests and
// fixture setup (§6), never for production error handling.
func (b *ClosetBuilder) MustBuild() *Closet {
	closet, err := b.Build()
	if err != nil {
		panic(err)
	}
	return closet
}
