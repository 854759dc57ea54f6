package kin

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/observability"
)

// Engine answers ancestry queries over an immutable family tree.
//
// All methods are pure reads and safe for concurrent use once the tree is
// no longer modified. Unknown identifiers and names yield empty results,
// never errors.
type Engine struct {
	tree *family.Tree
	dir  *family.Directory
}

// New creates an engine over t. If dir is nil, a directory is built from t.
func New(t *family.Tree, dir *family.Directory) *Engine {
	if dir == nil {
		dir = family.NewDirectory(t)
	}
	return &Engine{tree: t, dir: dir}
}

// Tree returns the underlying tree.
func (e *Engine) Tree() *family.Tree { return e.tree }

// Directory returns the name lookup table.
func (e *Engine) Directory() *family.Directory { return e.dir }

// =============================================================================
// ID-based queries
// =============================================================================

// Ancestors returns every ancestor of id at any generation, nearest
// generation first and by ID within a generation.
func (e *Engine) Ancestors(id string) []family.Person {
	start := time.Now()
	dist := e.tree.Graph().Ancestors(id)
	out := e.sortByDistance(dist, keys(dist))
	report(observability.QueryAncestors, []string{id}, len(out), start)
	return out
}

// CommonAncestors returns the intersection of the ancestor sets of idA and
// idB: every shared ancestor at any generation, not only the most recent.
// When idA == idB the result is the full ancestor set. People with no
// shared ancestry, or unknown IDs, produce an empty result.
//
// The result is ordered by generation distance from idA, then by ID.
func (e *Engine) CommonAncestors(idA, idB string) []family.Person {
	start := time.Now()
	distA, common := e.common(idA, idB)
	out := e.sortByDistance(distA, common)
	report(observability.QueryCommonAncestors, []string{idA, idB}, len(out), start)
	return out
}

// ClosestCommonAncestors returns the members of CommonAncestors(idA, idB)
// that have no descendant inside the common set, i.e. the most recent
// common ancestors. Full siblings get both parents back; first cousins get
// the two shared grandparents.
func (e *Engine) ClosestCommonAncestors(idA, idB string) []family.Person {
	start := time.Now()
	distA, common := e.common(idA, idB)

	inCommon := make(map[string]bool, len(common))
	for _, id := range common {
		inCommon[id] = true
	}
	// An ancestor of any common member is not closest.
	superseded := make(map[string]bool)
	for _, id := range common {
		for anc := range e.tree.Graph().Ancestors(id) {
			if inCommon[anc] {
				superseded[anc] = true
			}
		}
	}
	closest := slices.DeleteFunc(slices.Clone(common), func(id string) bool { return superseded[id] })

	out := e.sortByDistance(distA, closest)
	report(observability.QueryClosestCommon, []string{idA, idB}, len(out), start)
	return out
}

// Descendants returns id followed by everyone reachable through child
// edges, in depth-first pre-order. Children are visited in the order their
// parentage edges were added, and nobody appears twice even when reachable
// through both parents. Unknown IDs produce an empty result.
func (e *Engine) Descendants(id string) []family.Person {
	start := time.Now()
	out := e.tree.Lookup(e.tree.Graph().PreOrder(id))
	report(observability.QueryDescendants, []string{id}, len(out), start)
	return out
}

// =============================================================================
// Name-based queries
// =============================================================================

// ResolveName looks a display name up in the directory.
func (e *Engine) ResolveName(name string) (family.Person, bool) {
	id, ok := e.dir.Lookup(name)
	if !ok {
		return family.Person{}, false
	}
	return e.tree.Person(id)
}

// CommonAncestorsByName is CommonAncestors keyed by display names. An
// unknown name yields an empty result.
func (e *Engine) CommonAncestorsByName(nameA, nameB string) []family.Person {
	a, okA := e.dir.Lookup(nameA)
	b, okB := e.dir.Lookup(nameB)
	if !okA || !okB {
		return nil
	}
	return e.CommonAncestors(a, b)
}

// ClosestCommonAncestorsByName is ClosestCommonAncestors keyed by display
// names.
func (e *Engine) ClosestCommonAncestorsByName(nameA, nameB string) []family.Person {
	a, okA := e.dir.Lookup(nameA)
	b, okB := e.dir.Lookup(nameB)
	if !okA || !okB {
		return nil
	}
	return e.ClosestCommonAncestors(a, b)
}

// DescendantsByName is Descendants keyed by display name.
func (e *Engine) DescendantsByName(name string) []family.Person {
	id, ok := e.dir.Lookup(name)
	if !ok {
		return nil
	}
	return e.Descendants(id)
}

// DisplayNames maps people to their directory display names, falling back
// to the person's own name.
func (e *Engine) DisplayNames(people []family.Person) []string {
	names := make([]string, len(people))
	for i, p := range people {
		if n, ok := e.dir.Name(p.ID); ok {
			names[i] = n
		} else {
			names[i] = p.Name
		}
	}
	return names
}

// =============================================================================
// Helpers
// =============================================================================

// common returns idA's ancestor distances and the IDs shared with idB.
func (e *Engine) common(idA, idB string) (map[string]int, []string) {
	g := e.tree.Graph()
	distA := g.Ancestors(idA)
	if idA == idB {
		return distA, keys(distA)
	}
	distB := g.Ancestors(idB)
	var shared []string
	for id := range distA {
		if _, ok := distB[id]; ok {
			shared = append(shared, id)
		}
	}
	return distA, shared
}

func (e *Engine) sortByDistance(dist map[string]int, ids []string) []family.Person {
	slices.SortFunc(ids, func(a, b string) int {
		if c := cmp.Compare(dist[a], dist[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return e.tree.Lookup(ids)
}

func keys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func report(kind string, subjects []string, size int, start time.Time) {
	observability.Query().OnQuery(context.Background(), kind, subjects, size, time.Since(start))
}
