package closetdd

import (
	"fmt"

	"github.com/pkg/errors"
)

// Core sentinel errors. These can be matched with errors.Is after a
// structured error (below) has been wrapped by a collaborator.
var (
	// ErrUnknownItem indicates a selection referenced an item absent from
	// the catalog.
	ErrUnknownItem = errors.New("closetdd: unknown item")

	// ErrMultipleItemsPerFamily indicates more than one item from the same
	// family was selected.
	ErrMultipleItemsPerFamily = errors.New("closetdd: multiple items selected in one family")

	// ErrIncompatibleSelections indicates the selections are not jointly
	// admissible under the diagram's rules.
	ErrIncompatibleSelections = errors.New("closetdd: incompatible selections")

	// ErrConflictingFamilies indicates an item was declared under two
	// different families.
	ErrConflictingFamilies = errors.New("closetdd: conflicting families")

	// ErrIllegalInclusionRule indicates an inclusion rule pairs two items
	// from the same family.
	ErrIllegalInclusionRule = errors.New("closetdd: illegal inclusion rule")

	// ErrIllegalExclusionRule indicates an exclusion rule pairs two items
	// from the same family.
	ErrIllegalExclusionRule = errors.New("closetdd: illegal exclusion rule")
)

// FamilyConflict names an item whose declared family disagrees with the
// family under which it was indexed.
type FamilyConflict struct {
	Item     Item
	Families []Family
}

// ConflictingFamiliesError is returned by Build when one or more items were
// added under conflicting families (§4.1 check 1).
type ConflictingFamiliesError struct {
	Conflicts []FamilyConflict
}

func (e *ConflictingFamiliesError) Error() string {
	return fmt.Sprintf("%v: %d item(s) with conflicting families", ErrConflictingFamilies, len(e.Conflicts))
}

func (e *ConflictingFamiliesError) Unwrap() error { return ErrConflictingFamilies }

// RuleConflict names a same-family pair of items that makes a rule illegal.
type RuleConflict struct {
	Family Family
	Items  [2]Item
}

// IllegalInclusionRuleError is returned by Build when an inclusion rule pairs
// items from the same family (§4.1 check 2).
type IllegalInclusionRuleError struct {
	Conflicts []RuleConflict
}

func (e *IllegalInclusionRuleError) Error() string {
	return fmt.Sprintf("%v: %d illegal inclusion pair(s)", ErrIllegalInclusionRule, len(e.Conflicts))
}

func (e *IllegalInclusionRuleError) Unwrap() error { return ErrIllegalInclusionRule }

// IllegalExclusionRuleError is returned by Build when an exclusion rule pairs
// items from the same family (§4.1 check 3).
type IllegalExclusionRuleError struct {
	Conflicts []RuleConflict
}

func (e *IllegalExclusionRuleError) Error() string {
	return fmt.Sprintf("%v: %d illegal exclusion pair(s)", ErrIllegalExclusionRule, len(e.Conflicts))
}

func (e *IllegalExclusionRuleError) Unwrap() error { return ErrIllegalExclusionRule }

// UnknownItemsError is returned by CompleteOutfit when a selection names an
// item absent from the catalog.
type UnknownItemsError struct {
	Items []Item
}

func (e *UnknownItemsError) Error() string {
	return fmt.Sprintf("%v: %v", ErrUnknownItem, e.Items)
}

func (e *UnknownItemsError) Unwrap() error { return ErrUnknownItem }

// MultipleItemsPerFamilyError is returned by CompleteOutfit when two or more
// selections fall in the same family.
type MultipleItemsPerFamilyError struct {
	// ByFamily maps each offending family to the items selected within it.
	ByFamily map[Family][]Item
}

func (e *MultipleItemsPerFamilyError) Error() string {
	return fmt.Sprintf("%v: %v", ErrMultipleItemsPerFamily, e.ByFamily)
}

func (e *MultipleItemsPerFamilyError) Unwrap() error { return ErrMultipleItemsPerFamily }

// IncompatibleSelectionsError is returned by CompleteOutfit when the
// selections, taken together, admit no completion at all.
type IncompatibleSelectionsError struct {
	// Selections is the minimal conflicting subset, in selection order.
	Selections []Item
}

func (e *IncompatibleSelectionsError) Error() string {
	return fmt.Sprintf("%v: %v", ErrIncompatibleSelections, e.Selections)
}

func (e *IncompatibleSelectionsError) Unwrap() error { return ErrIncompatibleSelections }

func newConflictingFamiliesError(conflicts []FamilyConflict) error {
	return errors.WithStack(&ConflictingFamiliesError{Conflicts: conflicts})
}

func newIllegalInclusionRuleError(conflicts []RuleConflict) error {
	return errors.WithStack(&IllegalInclusionRuleError{Conflicts: conflicts})
}

func newIllegalExclusionRuleError(conflicts []RuleConflict) error {
	return errors.WithStack(&IllegalExclusionRuleError{Conflicts: conflicts})
}

func newUnknownItemsError(items []Item) error {
	return errors.WithStack(&UnknownItemsError{Items: items})
}

func newMultipleItemsPerFamilyError(byFamily map[Family][]Item) error {
	return errors.WithStack(&MultipleItemsPerFamilyError{ByFamily: byFamily})
}

func newIncompatibleSelectionsError(selections []Item) error {
	return errors.WithStack(&IncompatibleSelectionsError{Selections: selections})
}
