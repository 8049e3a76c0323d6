// Package closetdd provides a Go-native combinatorial configuration engine
// built around two families of decision diagrams: a Binary Decision Diagram
// (BDD) engine in the bdd subpackage and a Zero-suppressed Decision Diagram
// (ZDD) engine in the zdd subpackage.
//
// # Overview
//
// closetdd answers questions about which combinations of items from
// partitioned catalogs ("families") are legal under a set of exclusion and
// inclusion rules, and supports completing a partial selection into a single
// complete, legal combination (an Outfit).
//
// # Basic Usage
//
//	session := closetdd.NewSession()
//	defer session.Close()
//
//	closet, err := session.NewBuilder().
//		AddItems("shirts", "blue", "red").
//		AddItem("pants", "jeans").
//		AddExclusionRule("blue", "jeans").
//		Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outfit, err := closet.CompleteOutfit(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(outfit)
//
// # Diagram engines
//
// Both engines are pure, memoised, hash-consed DAGs: identical inputs always
// produce the identical node id (structural equality via interning). A
// Closet built from a catalog and rule set carries both a BDD root and a ZDD
// root by default; Select/Exclude/CompleteOutfit/Summarize are defined
// against whichever backend(s) a BuilderOption selected.
package closetdd
