// Package kin is the genealogy query engine.
//
// An [Engine] wraps a [family.Tree] and its [family.Directory] and answers
// the two questions kintree exists for:
//
//   - [Engine.CommonAncestors]: who do two people descend from? The result
//     is the full intersection of both ancestor sets, across all
//     generations. [Engine.ClosestCommonAncestors] narrows it to the most
//     recent ones.
//   - [Engine.Descendants]: a depth-first, pre-order walk down the child
//     edges, starting with the person themselves.
//
// Lookups by display name go through the directory; an unknown name, like an
// unknown ID, returns an empty result rather than an error.
//
//	eng := kin.New(tree, family.NewDirectory(tree))
//	for _, p := range eng.DescendantsByName("Abraham") {
//	    fmt.Println(p.Name)
//	}
package kin
