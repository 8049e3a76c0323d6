package closetdd

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setKey gives a combination a canonical string form so set-of-sets
// equality reduces to sorted-slice-of-strings equality.
func setKey(items []Item) string {
	sorted := sortedItems(items)
	strs := make([]string, len(sorted))
	for i, item := range sorted {
		strs[i] = string(item)
	}
	return strings.Join(strs, ",")
}

func setOfKeys(sets [][]Item) []string {
	keys := make([]string, len(sets))
	for i, s := range sets {
		keys[i] = setKey(s)
	}
	sort.Strings(keys)
	return keys
}

func sortedItems(items []Item) []Item {
	cp := append([]Item(nil), items...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	return cp
}

// TestScenarioS1TwoSingletonFamilies mirrors §8 S1.
func TestScenarioS1TwoSingletonFamilies(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().
		AddItem("shirts", "blue").
		AddItem("pants", "jeans").
		MustBuild()

	outfit, err := closet.CompleteOutfit(nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Item{"jeans", "blue"}, outfit.Items)
}

// TestScenarioS2SiblingExclusivity mirrors §8 S2.
func TestScenarioS2SiblingExclusivity(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().
		AddItems("shirts", "red", "blue").
		MustBuild()

	_, err := closet.CompleteOutfit([]Item{"red", "blue"})
	require.Error(t, err)

	var multiErr *MultipleItemsPerFamilyError
	require.ErrorAs(t, err, &multiErr)
	assert.Equal(t, []Item{"red", "blue"}, multiErr.ByFamily["shirts"])
}

// TestScenarioS3ExclusionRule mirrors §8 S3.
func TestScenarioS3ExclusionRule(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().
		AddItems("shirts", "blue", "red").
		AddItems("pants", "jeans", "slacks").
		AddExclusionRule("blue", "jeans").
		MustBuild()

	outfit, err := closet.CompleteOutfit([]Item{"blue"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []Item{"slacks", "blue"}, outfit.Items)

	outfit, err = closet.CompleteOutfit([]Item{"jeans"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []Item{"jeans", "red"}, outfit.Items)

	_, err = closet.CompleteOutfit([]Item{"blue", "jeans"})
	require.Error(t, err)
	var incompatible *IncompatibleSelectionsError
	require.ErrorAs(t, err, &incompatible)
	assert.ElementsMatch(t, []Item{"blue", "jeans"}, incompatible.Selections)
}

// TestScenarioS4ImpossibleSelection mirrors §8 S4.
func TestScenarioS4ImpossibleSelection(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().
		AddItems("shirts", "blue", "red").
		AddItems("pants", "jeans", "slacks").
		AddExclusionRule("blue", "jeans").
		AddExclusionRule("blue", "slacks").
		MustBuild()

	_, err := closet.CompleteOutfit([]Item{"blue"})
	require.Error(t, err)
	var incompatible *IncompatibleSelectionsError
	require.ErrorAs(t, err, &incompatible)
	assert.Equal(t, []Item{"blue"}, incompatible.Selections)
}

// TestScenarioS5InclusionIsOneWay mirrors §8 S5.
func TestScenarioS5InclusionIsOneWay(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().
		AddItems("shirts", "blue", "red").
		AddItems("pants", "jeans", "slacks").
		AddInclusionRule("red", "slacks").
		MustBuild()

	outfit, err := closet.CompleteOutfit([]Item{"slacks"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []Item{"slacks", "blue"}, outfit.Items)

	outfit, err = closet.CompleteOutfit([]Item{"red"})
	require.NoError(t, err)
	assert.Contains(t, outfit.Items, Item("slacks"))
}

// TestScenarioS6ThreeFamilies mirrors §8 S6: tie-break is lowest-priority
// (first declared) item per family.
func TestScenarioS6ThreeFamilies(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().
		AddItems("shirts", "blue", "red", "grey").
		AddItems("pants", "jeans", "slacks").
		AddItems("shoes", "birkenstocks", "sneakers", "topsiders").
		MustBuild()

	outfit, err := closet.CompleteOutfit(nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Item{"jeans", "blue", "birkenstocks"}, outfit.Items)
}

// TestScenarioS7ZDDEnumeration mirrors §8 S7.
func TestScenarioS7ZDDEnumeration(t *testing.T) {
	session := NewSession()
	defer session.Close()

	one, two, three := 1, 2, 3
	z := session.zdd
	tree := z.Union(z.Product(z.Singleton(one), z.Singleton(two)), z.Product(z.Singleton(two), z.Singleton(three)))

	combos := z.Combinations(tree)
	assert.Len(t, combos, 2)

	offset := z.Combinations(z.Offset(tree, []int{one}))
	assert.ElementsMatch(t, [][]int{{two, three}}, offset)

	onset := z.Combinations(z.Onset(tree, []int{one}))
	assert.ElementsMatch(t, [][]int{{two}}, onset)

	offsetTwo := z.Combinations(z.Offset(tree, []int{two}))
	assert.Empty(t, offsetTwo)
}

// TestInvariantReductionCanonicality covers §8 invariant 1: building the
// same catalog and rules twice yields identical node ids.
func TestInvariantReductionCanonicality(t *testing.T) {
	session := NewSession()
	defer session.Close()

	build := func() *Closet {
		return session.NewBuilder().
			AddItems("shirts", "blue", "red").
			AddItems("pants", "jeans", "slacks").
			AddExclusionRule("blue", "jeans").
			MustBuild()
	}

	a := build()
	b := build()
	assert.Equal(t, a.BDDRoot(), b.BDDRoot())
	assert.Equal(t, a.ZDDRoot(), b.ZDDRoot())
}

// TestInvariantSelectExcludeDuality covers §8 invariant 2.
func TestInvariantSelectExcludeDuality(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().
		AddItems("shirts", "blue", "red").
		AddItems("pants", "jeans", "slacks").
		MustBuild()

	selected := closet.SelectItem("blue").Combinations()
	excluded := closet.ExcludeItem("blue").Combinations()

	var union [][]Item
	union = append(union, selected...)
	union = append(union, excluded...)

	all := closet.Combinations()

	if diff := cmp.Diff(setOfKeys(all), setOfKeys(union)); diff != "" {
		t.Errorf("select(x) ∪ exclude(x) != original (-original +union):\n%s", diff)
	}
}

// TestInvariantIdempotence covers §8 invariant 3.
func TestInvariantIdempotence(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().
		AddItems("shirts", "blue", "red").
		MustBuild()

	once := closet.SelectItem("blue")
	twice := once.SelectItem("blue")
	assert.Equal(t, once.BDDRoot(), twice.BDDRoot())
	assert.Equal(t, once.ZDDRoot(), twice.ZDDRoot())
}

// TestInvariantCommutativityOfFixing covers §8 invariant 4.
func TestInvariantCommutativityOfFixing(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().
		AddItems("shirts", "blue", "red").
		AddItems("pants", "jeans", "slacks").
		MustBuild()

	ab := closet.SelectItem("blue").SelectItem("jeans")
	ba := closet.SelectItem("jeans").SelectItem("blue")
	assert.Equal(t, ab.BDDRoot(), ba.BDDRoot())
}

// TestSummarizePartition covers §8 invariant 9: every item classified
// exactly once.
func TestSummarizePartition(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().
		AddItems("shirts", "blue", "red").
		AddItems("pants", "jeans", "slacks").
		AddExclusionRule("blue", "jeans").
		MustBuild()

	status := closet.Summarize(nil, nil)
	assert.Len(t, status, closet.Universe().Len())
}

// TestBuildConflictingFamilies exercises §4.1 check 1 and §7's
// ConflictingFamilies error shape.
func TestBuildConflictingFamilies(t *testing.T) {
	session := NewSession()
	defer session.Close()

	_, err := session.NewBuilder().
		AddItem("shirts", "blue").
		AddItem("pants", "blue").
		Build()

	require.Error(t, err)
	var conflictErr *ConflictingFamiliesError
	require.ErrorAs(t, err, &conflictErr)
}

// TestBuildIllegalInclusionRule exercises §4.1 check 2.
func TestBuildIllegalInclusionRule(t *testing.T) {
	session := NewSession()
	defer session.Close()

	_, err := session.NewBuilder().
		AddItems("shirts", "blue", "red").
		AddInclusionRule("blue", "red").
		Build()

	require.Error(t, err)
	var inclErr *IllegalInclusionRuleError
	require.ErrorAs(t, err, &inclErr)
}

// TestBuildIllegalExclusionRule exercises §4.1 check 3.
func TestBuildIllegalExclusionRule(t *testing.T) {
	session := NewSession()
	defer session.Close()

	_, err := session.NewBuilder().
		AddItems("shirts", "blue", "red").
		AddExclusionRule("blue", "red").
		Build()

	require.Error(t, err)
	var exclErr *IllegalExclusionRuleError
	require.ErrorAs(t, err, &exclErr)
}

// TestCompleteOutfitUnknownItem exercises §4.5's UnknownItems error.
func TestCompleteOutfitUnknownItem(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().AddItem("shirts", "blue").MustBuild()

	_, err := closet.CompleteOutfit([]Item{"green"})
	require.Error(t, err)
	var unknownErr *UnknownItemsError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, []Item{"green"}, unknownErr.Items)
}

// TestCompleteOutfitDeterminism covers §8 invariant 8.
func TestCompleteOutfitDeterminism(t *testing.T) {
	session := NewSession()
	defer session.Close()

	closet := session.NewBuilder().
		AddItems("shirts", "blue", "red", "grey").
		AddItems("pants", "jeans", "slacks").
		MustBuild()

	first, err := closet.CompleteOutfit([]Item{"red"})
	require.NoError(t, err)
	second, err := closet.CompleteOutfit([]Item{"red"})
	require.NoError(t, err)
	assert.ElementsMatch(t, first.Items, second.Items)
}
